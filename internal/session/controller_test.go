package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/chat"
	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/transform"
)

func newReadyController(t *testing.T, supported bool, model *catalog.Model) *Controller {
	t.Helper()
	c := NewController("test-session", model, StaticProbe(supported))
	t.Cleanup(c.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.WaitReady(ctx))
	return c
}

func snapshot(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func TestController_CapabilityProbe(t *testing.T) {
	t.Run("checking until the probe resolves", func(t *testing.T) {
		release := make(chan struct{})
		c := NewController("s", nil, func(ctx context.Context) (bool, error) {
			<-release
			return true, nil
		})
		defer c.Close()
		ctx := context.Background()

		snap := snapshot(t, c)
		assert.Equal(t, ARChecking, snap.ARStatus)
		assert.Nil(t, snap.Scene)
		assert.ErrorIs(t, c.BeginDrag(ctx), ErrCapabilityPending)
		assert.ErrorIs(t, c.EnterAR(ctx), ErrCapabilityPending)

		close(release)
		require.NoError(t, c.WaitReady(ctx))

		snap = snapshot(t, c)
		assert.Equal(t, ARSupported, snap.ARStatus)
		require.NotNil(t, snap.Scene)
		assert.Equal(t, scene.Desktop, snap.Scene.Variant)
		assert.Equal(t, scene.PhaseAttached, snap.Scene.Phase)
	})

	t.Run("probe error means unsupported", func(t *testing.T) {
		c := NewController("s", nil, func(ctx context.Context) (bool, error) {
			return true, errors.New("xr unavailable")
		})
		defer c.Close()
		require.NoError(t, c.WaitReady(context.Background()))

		assert.Equal(t, ARUnsupported, snapshot(t, c).ARStatus)
		assert.ErrorIs(t, c.EnterAR(context.Background()), ErrARUnsupported)
	})

	t.Run("close aborts a pending probe", func(t *testing.T) {
		c := NewController("s", nil, func(ctx context.Context) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})
		c.Close()
		assert.ErrorIs(t, c.WaitReady(context.Background()), ErrClosed)
	})
}

func TestController_ResetThenRecenter(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
	}{
		{name: "desktop only", supported: false},
		{name: "ar capable", supported: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newReadyController(t, tt.supported, nil)
			ctx := context.Background()

			require.NoError(t, c.ApplyChatActions(ctx, []transform.Action{transform.Move{Axis: transform.AxisX, Distance: 4}}))
			require.NoError(t, c.Reset(ctx))
			require.NoError(t, c.Recenter(ctx))

			snap := snapshot(t, c)
			assert.Equal(t, transform.Default(), snap.State)
			assert.Equal(t, transform.Default(), snap.Initial)
			assert.False(t, snap.HasPlaced)
			assert.Equal(t, uint64(1), snap.ResetCount)
		})
	}
}

func TestController_ResetBeforeProbeResolves(t *testing.T) {
	release := make(chan struct{})
	c := NewController("s", nil, func(ctx context.Context) (bool, error) {
		<-release
		return false, nil
	})
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Reset(ctx))
	require.NoError(t, c.Recenter(ctx))
	assert.Equal(t, transform.Default(), snapshot(t, c).State)

	close(release)
	require.NoError(t, c.WaitReady(ctx))
	snap := snapshot(t, c)
	require.NotNil(t, snap.Scene)
	assert.Equal(t, transform.Default(), *snap.Scene.Object)
}

func TestController_ChatScenarios(t *testing.T) {
	tests := []struct {
		name     string
		actions  []transform.Action
		expected transform.State
	}{
		{
			name:    "double its size",
			actions: []transform.Action{transform.Scale{Factor: 2}},
			expected: transform.State{
				Scale: transform.Vec3{2, 2, 2},
			},
		},
		{
			name: "move it 3 meters right and rotate 45 degrees around y",
			actions: []transform.Action{
				transform.Move{Axis: transform.AxisX, Distance: 3},
				transform.Rotate{Axis: transform.AxisY, Degrees: 45},
			},
			expected: transform.State{
				Position: transform.Vec3{3, 0, 0},
				Rotation: transform.Vec3{0, 0.7854, 0},
				Scale:    transform.Vec3{1, 1, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newReadyController(t, false, nil)
			require.NoError(t, c.ApplyChatActions(context.Background(), tt.actions))

			snap := snapshot(t, c)
			assert.True(t, snap.State.Equal(tt.expected, 1e-9), "got %+v", snap.State)
			require.NotNil(t, snap.Scene.Object)
			assert.Equal(t, snap.State, *snap.Scene.Object, "canonical state is pushed to the scene")
			assert.Equal(t, transform.Default(), snap.Initial, "chat never touches the placement snapshot")
		})
	}
}

func TestController_EmptyChatListIsNoop(t *testing.T) {
	c := newReadyController(t, false, nil)
	updates, cancel, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel()
	<-updates

	require.NoError(t, c.ApplyChatActions(context.Background(), nil))

	select {
	case <-updates:
		t.Fatal("empty action list must not publish a change")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestController_DragSuppressesExternalUpdates(t *testing.T) {
	c := newReadyController(t, false, nil)
	ctx := context.Background()

	require.NoError(t, c.BeginDrag(ctx))
	require.NoError(t, c.ApplyChatActions(ctx, []transform.Action{transform.Scale{Factor: 3}}))

	snap := snapshot(t, c)
	assert.Equal(t, transform.Vec3{3, 3, 3}, snap.State.Scale)
	assert.Equal(t, transform.Vec3{1, 1, 1}, snap.Scene.Object.Scale, "engine object must not move during a drag")
	assert.Equal(t, scene.PhaseDragging, snap.Scene.Phase)

	target := transform.Default()
	target.Position = transform.Vec3{0, 0, -2}
	require.NoError(t, c.Drag(ctx, target))
	require.NoError(t, c.EndDrag(ctx))

	snap = snapshot(t, c)
	assert.Equal(t, scene.PhaseAttached, snap.Scene.Phase)
	assert.Equal(t, target, snap.State, "drag end commits the engine transform")
	assert.Equal(t, target, *snap.Scene.Object)
}

func TestController_NudgeFlushes(t *testing.T) {
	c := newReadyController(t, false, nil)
	target := transform.Default()
	target.Rotation = transform.Vec3{0.5, 0, 0}

	require.NoError(t, c.Nudge(context.Background(), target))
	assert.Equal(t, target, snapshot(t, c).State)
}

func TestController_ARPlacementAndRecenter(t *testing.T) {
	scale := 0.5
	model := &catalog.Model{ID: "3", Name: "Xícara de Café", Position: &transform.Vec3{0, 0.1, 0}, Scale: &scale}
	c := newReadyController(t, true, model)
	ctx := context.Background()

	snap := snapshot(t, c)
	assert.False(t, snap.RecenterEnabled, "nothing placed yet on an AR capable device")

	require.NoError(t, c.EnterAR(ctx))
	snap = snapshot(t, c)
	assert.True(t, snap.Presenting)
	assert.Equal(t, scene.AR, snap.Scene.Variant)
	assert.Equal(t, scene.PhaseSearching, snap.Scene.Phase)

	_, err := c.Select(ctx)
	assert.ErrorIs(t, err, scene.ErrNoHitTest)

	require.NoError(t, c.HitTest(ctx, &transform.Vec3{1, 0, -2}))
	placed, err := c.Select(ctx)
	require.NoError(t, err)

	expected := transform.State{
		Position: transform.Vec3{1, 0.1, -2},
		Scale:    transform.Vec3{0.5, 0.5, 0.5},
	}
	assert.Equal(t, expected, placed)

	snap = snapshot(t, c)
	assert.True(t, snap.HasPlaced)
	assert.True(t, snap.RecenterEnabled)
	assert.Equal(t, expected, snap.State)
	assert.Equal(t, expected, snap.Initial)

	require.NoError(t, c.ApplyChatActions(ctx, []transform.Action{transform.Move{Axis: transform.AxisY, Distance: 1}}))
	assert.InDelta(t, 1.1, snapshot(t, c).State.Position[1], 1e-9)

	require.NoError(t, c.Recenter(ctx))
	assert.Equal(t, expected, snapshot(t, c).State)

	require.NoError(t, c.Reset(ctx))
	snap = snapshot(t, c)
	assert.Equal(t, scene.PhaseSearching, snap.Scene.Phase)
	assert.Nil(t, snap.Scene.Object)
	assert.False(t, snap.RecenterEnabled)

	require.NoError(t, c.ExitAR(ctx))
	snap = snapshot(t, c)
	assert.False(t, snap.Presenting)
	assert.Equal(t, scene.Desktop, snap.Scene.Variant)
	assert.Equal(t, scene.PhaseAttached, snap.Scene.Phase)
}

func TestController_ModeAndInfo(t *testing.T) {
	c := newReadyController(t, true, nil)
	ctx := context.Background()

	require.NoError(t, c.SetMode(ctx, scene.ModeScale))
	snap := snapshot(t, c)
	assert.Equal(t, scene.ModeScale, snap.Mode)
	assert.True(t, snap.Scene.GizmoShowsY, "desktop scale gizmo shows every axis")

	require.NoError(t, c.EnterAR(ctx))
	require.NoError(t, c.HitTest(ctx, &transform.Vec3{0, 0, 0}))
	_, err := c.Select(ctx)
	require.NoError(t, err)
	assert.False(t, snapshot(t, c).Scene.GizmoShowsY, "AR scale gizmo hides the Y handle")

	open, err := c.ToggleInfo(ctx)
	require.NoError(t, err)
	assert.True(t, open)
	require.NoError(t, c.SetInfoOpen(ctx, false))
	assert.False(t, snapshot(t, c).InfoOpen)
}

func TestController_ChatResolvingAfterResetLandsOnDefault(t *testing.T) {
	c := newReadyController(t, false, nil)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	interpreter := interpreterFunc(func(ctx context.Context, message string) (*models.CommandResponse, error) {
		close(started)
		<-release
		return &models.CommandResponse{Reply: "ok", Actions: transform.Actions{transform.Move{Axis: transform.AxisX, Distance: 1}}}, nil
	})
	pipeline := chat.NewPipeline(interpreter, c)
	defer pipeline.Close()

	require.NoError(t, c.ApplyChatActions(ctx, []transform.Action{transform.Move{Axis: transform.AxisX, Distance: 5}}))

	done := make(chan error, 1)
	go func() {
		_, err := pipeline.Submit(ctx, "move it right")
		done <- err
	}()
	<-started

	require.NoError(t, c.Reset(ctx))
	close(release)
	require.NoError(t, <-done)

	snap := snapshot(t, c)
	assert.Equal(t, transform.Vec3{1, 0, 0}, snap.State.Position, "applied on top of the post-reset default")
	assert.Equal(t, transform.Default(), snap.Initial)
}

func TestController_Subscribe(t *testing.T) {
	c := newReadyController(t, false, nil)
	ctx := context.Background()

	updates, cancel, err := c.Subscribe(ctx)
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, transform.Default(), first.State)

	require.NoError(t, c.ApplyChatActions(ctx, []transform.Action{transform.Scale{Factor: 2}}))
	next := <-updates
	assert.Equal(t, transform.Vec3{2, 2, 2}, next.State.Scale)

	cancel()
	_, ok := <-updates
	assert.False(t, ok)
}

func TestController_Close(t *testing.T) {
	c := NewController("s", nil, StaticProbe(false))
	updates, _, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	<-updates

	c.Close()
	c.Close()

	for range updates {
	}
	assert.ErrorIs(t, c.Reset(context.Background()), ErrClosed)
	_, err = c.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

type interpreterFunc func(ctx context.Context, message string) (*models.CommandResponse, error)

func (f interpreterFunc) Interpret(ctx context.Context, message string) (*models.CommandResponse, error) {
	return f(ctx, message)
}
