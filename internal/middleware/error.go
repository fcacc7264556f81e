package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

// ErrorHandler renders the last error attached to the context. Handlers only
// call c.Error and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last().Err
		status, _ := handler.StatusFor(lastErr)

		evt := zerolog.Ctx(c.Request.Context()).Debug()
		if status >= http.StatusInternalServerError {
			evt = zerolog.Ctx(c.Request.Context()).Error()
		}
		evt.Err(lastErr).
			Str("kind", apperrors.KindOf(lastErr)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request error")

		if c.Writer.Written() {
			return
		}
		handler.RespondError(c, lastErr)
	}
}
