package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("share-manager")

const (
	issuer = "ar-viewer"

	// DefaultShareTTL is the lifetime of a share token.
	DefaultShareTTL = 7 * 24 * time.Hour
)

var (
	// ErrMissingSecret is returned when no signing secret is configured.
	ErrMissingSecret = errors.New("share secret is required")
	// ErrInvalidShareToken is returned for malformed, expired or forged tokens.
	ErrInvalidShareToken = errors.New("invalid share token")
)

// ShareManager issues and validates signed share links for models.
type ShareManager struct {
	signingKey []byte
	algorithm  string
	keyID      string
	publicURL  string
	ttl        time.Duration
	now        func() time.Time
	tracer     trace.Tracer
}

// ShareClaims are the JWT claims of a share token.
type ShareClaims struct {
	ModelID string `json:"model_id"`
	jwt.RegisteredClaims
}

// Share is an issued share link.
type Share struct {
	ModelID   string    `json:"model_id"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewShareManager creates a share manager. publicURL is the origin the
// viewer is served from; ttl <= 0 means DefaultShareTTL.
func NewShareManager(secret, publicURL string, ttl time.Duration) (*ShareManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultShareTTL
	}

	return &ShareManager{
		signingKey: []byte(secret),
		algorithm:  jwt.SigningMethodHS256.Alg(),
		keyID:      "default",
		publicURL:  strings.TrimRight(publicURL, "/"),
		ttl:        ttl,
		now:        time.Now,
		tracer:     tracer,
	}, nil
}

// Issue signs a share token for modelID and builds its link.
func (sm *ShareManager) Issue(ctx context.Context, modelID string) (*Share, error) {
	_, span := sm.tracer.Start(ctx, "share.issue")
	defer span.End()

	span.SetAttributes(attribute.String("model.id", modelID))

	now := sm.now()
	claims := &ShareClaims{
		ModelID: modelID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   modelID,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(sm.algorithm), claims)
	token.Header["kid"] = sm.keyID

	tokenString, err := token.SignedString(sm.signingKey)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to sign share token: %w", err)
	}

	span.SetAttributes(attribute.String("jwt.id", claims.ID))

	return &Share{
		ModelID:   modelID,
		Token:     tokenString,
		URL:       sm.URL(modelID, tokenString),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// URL builds {public_url}/render/{modelId}?share={token}.
func (sm *ShareManager) URL(modelID, token string) string {
	return fmt.Sprintf("%s/render/%s?share=%s", sm.publicURL, url.PathEscape(modelID), url.QueryEscape(token))
}

// Validate checks a share token and returns its claims.
func (sm *ShareManager) Validate(ctx context.Context, tokenString string) (*ShareClaims, error) {
	_, span := sm.tracer.Start(ctx, "share.validate")
	defer span.End()

	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != sm.algorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if kid, ok := token.Header["kid"].(string); ok && kid != sm.keyID {
			span.SetAttributes(attribute.String("jwt.kid_mismatch", kid))
		}
		return sm.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(sm.now),
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidShareToken, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid || claims.ModelID == "" {
		return nil, ErrInvalidShareToken
	}

	span.SetAttributes(
		attribute.String("model.id", claims.ModelID),
		attribute.String("jwt.id", claims.ID),
	)
	return claims, nil
}
