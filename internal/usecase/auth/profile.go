package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Me struct {
	users domain.Repository
}

func NewMe(users domain.Repository) *Me {
	return &Me{users: users}
}

func (uc *Me) Execute(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return uc.users.FindByID(ctx, userID)
}

// UpdateProfileInput leaves empty fields unchanged.
type UpdateProfileInput struct {
	Name  string
	Phone string
}

type UpdateProfile struct {
	users domain.Repository
	audit audit.Auditor
}

func NewUpdateProfile(users domain.Repository, auditor audit.Auditor) *UpdateProfile {
	return &UpdateProfile{users: users, audit: auditor}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	if name != "" {
		if err := domain.ValidateName(name); err != nil {
			return nil, err
		}
	}

	u, err := uc.users.UpdateProfile(ctx, userID, name, phone)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "user_profile_updated",
		Entity:   "user",
		EntityID: &userID,
	})
	return u, nil
}
