package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/session"
)

const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextClaims = "claims"
)

type TokenVerifier interface {
	Verify(token string) (*session.Claims, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth resolves the bearer token to a user. When required is false a
// missing or unusable token lets the request through as a guest.
func Auth(verifier TokenVerifier, users UserFinder, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				httperr.Unauthorized(c, "no_token", "Not authorized, no token provided")
				return
			}
			c.Next()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			if required {
				if be, ok := httperr.AsBusiness(err); ok {
					httperr.Unauthorized(c, be.Code, be.Message)
				} else {
					httperr.Unauthorized(c, "token_invalid", "Not authorized, token invalid")
				}
				return
			}
			c.Next()
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			if required {
				httperr.Unauthorized(c, "token_invalid", "Not authorized, token invalid")
				return
			}
			c.Next()
			return
		}

		u, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if !required {
				c.Next()
				return
			}
			if errors.Is(err, user.ErrNotFound) {
				httperr.Unauthorized(c, "user_gone", "User no longer exists")
				return
			}
			httperr.Write(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextUserID, u.ID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID is nil for guests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := UserID(c)
	if !ok {
		return nil
	}
	return &id
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
