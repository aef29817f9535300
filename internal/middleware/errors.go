package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperrors"
	"userhub/internal/config"
)

// ErrorHandler is the single place where error kinds become HTTP
// responses. Handlers and middleware push errors via c.Error; anything
// left on the context after the chain runs is mapped here. Outside
// production the response carries the underlying error text and a stack
// trace; in production internal errors collapse to a generic message.
func ErrorHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic: %v\n%s", r, debug.Stack())
				if c.Writer.Written() {
					return
				}
				writeError(c, cfg, &apperrors.Error{
					Kind:    apperrors.KindInternal,
					Message: "internal server error",
				}, string(debug.Stack()))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperrors.As(c.Errors.Last().Err)
		if appErr.Kind == apperrors.KindInternal {
			log.Printf("error: %v", appErr)
		}
		writeError(c, cfg, appErr, "")
	}
}

func writeError(c *gin.Context, cfg *config.Config, appErr *apperrors.Error, stack string) {
	body := gin.H{
		"error":   appErr.Kind.Label(),
		"message": appErr.Message,
	}
	if appErr.Kind == apperrors.KindInternal && cfg.IsProduction() {
		body["message"] = "An error occurred"
	}
	if !cfg.IsProduction() {
		if appErr.Err != nil {
			body["detail"] = appErr.Err.Error()
		}
		if stack != "" {
			body["stack"] = stack
		}
	}
	status := appErr.Kind.Status()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, body)
}
