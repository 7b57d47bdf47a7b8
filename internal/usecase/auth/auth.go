package auth

import (
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// TokenIssuer signs a session token for an authenticated user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// Session is what register and login hand back to the caller.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
