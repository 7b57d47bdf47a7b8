package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
)

// bindJSON decodes the body into dst. An empty body leaves dst untouched so
// that field checks report what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large")
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

// pathID parses the :id parameter; a malformed id answers like an unknown one.
func pathID(c *gin.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

func mustUserID(c *gin.Context) uuid.UUID {
	id, ok := middleware.UserID(c)
	if !ok {
		panic("handler mounted without auth middleware")
	}
	return id
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
