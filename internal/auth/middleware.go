package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/models"
)

var middlewareTracer = otel.Tracer("share-middleware")

const (
	// ShareQueryParam carries the share token on viewer and model URLs.
	ShareQueryParam = "share"
	// ShareClaimsKey is the gin context key of validated share claims.
	ShareClaimsKey = "share_claims"
)

// OptionalShare validates a share token when the request carries one. A
// request without a token passes through untouched. An invalid token is
// rejected with 401, and a token for a different model than the :param
// path segment with 403.
func OptionalShare(sm *ShareManager, param string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query(ShareQueryParam)
		if token == "" {
			c.Next()
			return
		}

		ctx, span := middlewareTracer.Start(c.Request.Context(), "share.optional_share_gin")
		defer span.End()

		claims, err := sm.Validate(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("share.token_valid", false))
			logger.Warn("invalid share token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Invalid or expired share link",
				Code:  models.ErrCodeUnauthorized,
			})
			return
		}

		if id := c.Param(param); id != "" && id != claims.ModelID {
			span.SetAttributes(attribute.Bool("share.model_match", false))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error: "Share link is for a different model",
				Code:  models.ErrCodeForbidden,
			})
			return
		}

		span.SetAttributes(
			attribute.Bool("share.token_valid", true),
			attribute.String("model.id", claims.ModelID),
		)
		c.Set(ShareClaimsKey, claims)
		c.Next()
	}
}

// SharedModelID returns the model id of a validated share token, if any.
func SharedModelID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ShareClaimsKey)
	if !ok {
		return "", false
	}
	claims, ok := v.(*ShareClaims)
	if !ok {
		return "", false
	}
	return claims.ModelID, true
}
