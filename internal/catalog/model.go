package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tektai/ar-viewer/internal/transform"
)

var (
	// ErrModelNotFound is returned when no model has the requested id.
	ErrModelNotFound = errors.New("model not found")
	// ErrInvalidPatch wraps every patch validation failure.
	ErrInvalidPatch = errors.New("invalid model patch")
)

// Format is the asset file format of a model.
type Format string

const (
	FormatGLB Format = "glb"
	FormatOBJ Format = "obj"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f == FormatGLB || f == FormatOBJ
}

// Model describes one entry of the model gallery.
type Model struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Format      Format          `json:"type"`
	URL         string          `json:"url"`
	Scale       *float64        `json:"scale,omitempty"`
	Position    *transform.Vec3 `json:"position,omitempty"`
	Rotation    *transform.Vec3 `json:"rotation,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Description string          `json:"description,omitempty"`
	IsLocal     bool            `json:"is_local"`
}

// Patch holds the fields to overwrite on update. Nil fields are left alone.
type Patch struct {
	Name        *string         `json:"name,omitempty"`
	Format      *Format         `json:"type,omitempty"`
	URL         *string         `json:"url,omitempty"`
	Scale       *float64        `json:"scale,omitempty"`
	Position    *transform.Vec3 `json:"position,omitempty"`
	Rotation    *transform.Vec3 `json:"rotation,omitempty"`
	Thumbnail   *string         `json:"thumbnail,omitempty"`
	Description *string         `json:"description,omitempty"`
	IsLocal     *bool           `json:"is_local,omitempty"`
}

// Validate rejects patches that would leave a model unusable.
func (p Patch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidPatch)
	}
	if p.URL != nil && *p.URL == "" {
		return fmt.Errorf("%w: url must not be empty", ErrInvalidPatch)
	}
	if p.Format != nil && !p.Format.Valid() {
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidPatch, *p.Format)
	}
	if p.Scale != nil && !(*p.Scale > 0) {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidPatch)
	}
	return nil
}

// Apply returns a copy of m with the patch merged in.
func (m Model) Apply(p Patch) Model {
	out := m.clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Format != nil {
		out.Format = *p.Format
	}
	if p.URL != nil {
		out.URL = *p.URL
	}
	if p.Scale != nil {
		v := *p.Scale
		out.Scale = &v
	}
	if p.Position != nil {
		v := *p.Position
		out.Position = &v
	}
	if p.Rotation != nil {
		v := *p.Rotation
		out.Rotation = &v
	}
	if p.Thumbnail != nil {
		out.Thumbnail = *p.Thumbnail
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.IsLocal != nil {
		out.IsLocal = *p.IsLocal
	}
	return out
}

// clone deep-copies the pointer fields so callers cannot alias store data.
func (m Model) clone() Model {
	out := m
	if m.Scale != nil {
		v := *m.Scale
		out.Scale = &v
	}
	if m.Position != nil {
		v := *m.Position
		out.Position = &v
	}
	if m.Rotation != nil {
		v := *m.Rotation
		out.Rotation = &v
	}
	return out
}

// Store is the model catalog.
type Store interface {
	List(ctx context.Context) ([]Model, error)
	Get(ctx context.Context, id string) (Model, error)
	Update(ctx context.Context, id string, patch Patch) (Model, error)
	Remove(ctx context.Context, id string) error
}

// Defaults returns the built-in gallery.
func Defaults() []Model {
	return []Model{
		{ID: "1", Name: "Cubo", Format: FormatOBJ, URL: "/models/cube.obj", Description: "Um cubo."},
		{ID: "2", Name: "Datacenter", Format: FormatGLB, URL: "/models/data_center_low-poly.glb", Description: "Servidores de um datacenter."},
		{ID: "3", Name: "Xícara de Café", Format: FormatGLB, URL: "/models/bakedModel.glb", Description: "Uma xícara de café."},
		{ID: "4", Name: "Planta", Format: FormatGLB, URL: "/models/eb_house_plant_01.glb", Description: "Uma planta."},
		{ID: "5", Name: "Esqueleto", Format: FormatOBJ, URL: "/models/skeleton.obj", Description: "Um esqueleto."},
		{ID: "6", Name: "Esfera", Format: FormatOBJ, URL: "/models/sphere.obj", Description: "Uma esfera."},
	}
}
