package auth

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  domain.Repository
	tokens TokenIssuer
}

func NewLogin(users domain.Repository, tokens TokenIssuer) *Login {
	return &Login{users: users, tokens: tokens}
}

// Execute answers unknown emails and wrong passwords the same way.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*Session, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	u, err := uc.users.FindByEmailWithPassword(ctx, validators.NormalizeEmail(in.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !domain.CheckPassword(u.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	u.PasswordHash = ""

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}
