package auth

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type Register struct {
	users       domain.Repository
	tokens      TokenIssuer
	audit       audit.Auditor
	bcryptCost  int
	checkDomain bool
}

func NewRegister(
	users domain.Repository,
	tokens TokenIssuer,
	auditor audit.Auditor,
	bcryptCost int,
	checkDomain bool,
) *Register {
	return &Register{
		users:       users,
		tokens:      tokens,
		audit:       auditor,
		bcryptCost:  bcryptCost,
		checkDomain: checkDomain,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := domain.ValidateRegistration(in.Name, in.Email, in.Password, in.Phone); err != nil {
		return nil, err
	}

	email := validators.NormalizeEmail(in.Email)
	if uc.checkDomain && !validators.IsEmailDomainValid(ctx, email) {
		return nil, domain.ErrInvalidEmailDomain
	}

	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := domain.HashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
	}
	// the unique index catches a concurrent registration
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &Session{User: u, Token: token}, nil
}
