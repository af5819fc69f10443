package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/auth"
	"fleet-service/internal/model"
)

const (
	principalContextKey = "principal"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
)

// PrincipalLoader maps a verified identity to the caller's role and driver profile.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uuid.UUID, email string) (model.Principal, error)
}

// Auth accepts a bearer token or, when no Authorization header is sent, the
// session cookie.
func Auth(resolver auth.Resolver, loader PrincipalLoader, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c, cookieName)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			log.Error().Err(err).Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "identity service unavailable"})
			return
		}

		principal, err := loader.LoadPrincipal(c.Request.Context(), identity.UserID, identity.Email)
		if err != nil {
			log.Error().Err(err).Str("user_id", identity.UserID.String()).Msg("failed to load principal")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if rawHeader := c.GetHeader(authorizationHeader); rawHeader != "" {
		parts := strings.SplitN(rawHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(parts[1])
		return token, token != ""
	}

	if cookieName == "" {
		return "", false
	}
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}

	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, false
	}

	return principal, true
}
