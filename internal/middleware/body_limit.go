package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const MaxBodyBytes = 10 << 20

func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
