package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

// Recovery turns a panic into a 500. The stack is only returned to the
// caller outside production.
func Recovery(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := string(debug.Stack())
			log.Error("panic recovered",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.String("panic", fmt.Sprint(rec)),
				zap.String("stack", stack),
			)

			body := httperr.HTTPError{
				Success: false,
				Error:   "Internal Server Error",
				Code:    "internal_error",
			}
			if !production {
				body.Stack = stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}
