package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperrors"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/token"
)

const userContextKey = "currentUser"

// Authenticate verifies the bearer token, loads the account behind it and
// attaches a sanitized copy to the context. A token for a missing,
// soft-deleted or deactivated account is rejected even when its signature
// is still valid.
func Authenticate(tokens *token.Service, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abortWith(c, apperrors.New(apperrors.KindUnauthenticated, "authorization required"))
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWith(c, apperrors.New(apperrors.KindUnauthenticated, "invalid authorization header"))
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				abortWith(c, apperrors.New(apperrors.KindExpiredToken, "authentication token has expired"))
				return
			}
			abortWith(c, apperrors.New(apperrors.KindInvalidToken, "authentication token is invalid"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				abortWith(c, apperrors.New(apperrors.KindUnauthenticated, "account no longer exists"))
				return
			}
			abortWith(c, apperrors.Wrap(apperrors.KindInternal, "failed to load account", err))
			return
		}
		if !user.IsActive {
			abortWith(c, apperrors.New(apperrors.KindUnauthenticated, "account is deactivated"))
			return
		}

		c.Set(userContextKey, user.Sanitized())
		c.Next()
	}
}

// RequireRole gates a route group on the authenticated account's role.
// Must run after Authenticate.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, apperrors.New(apperrors.KindUnauthenticated, "authentication required"))
			return
		}
		if user.Role != role {
			abortWith(c, apperrors.New(apperrors.KindForbidden, "insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account attached by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortWith(c *gin.Context, err *apperrors.Error) {
	_ = c.Error(err)
	c.Abort()
}
