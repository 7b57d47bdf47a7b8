package user

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 50
)

var (
	ErrMissingFields      = httperr.Validation("missing_fields", "Please provide all required fields: name, email, password, phone")
	ErrInvalidEmail       = httperr.Validation("invalid_email", "Please enter a valid email")
	ErrInvalidEmailDomain = httperr.Validation("invalid_email_domain", "The email domain does not appear to be valid")
	ErrPasswordTooShort   = httperr.Validation("password_too_short", "Password must be at least 6 characters")
	ErrInvalidName        = httperr.Validation("invalid_name", "Name must be between 2 and 50 characters")
	ErrInvalidPhone       = httperr.Validation("invalid_phone", "Phone number is required")
	ErrEmailTaken         = httperr.Validation("email_taken", "User with this email already exists")
	ErrMissingCredentials = httperr.Validation("missing_credentials", "Please provide email and password")
	ErrInvalidCredentials = httperr.Auth("invalid_credentials", "Invalid email or password")
	ErrNotFound           = httperr.NotFoundErr("user_not_found", "User not found")
)

type Repository interface {
	// Create returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *models.User) error

	// FindByID never loads the password hash.
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (*models.User, error)
}

// ===============================
// Validation
// ===============================

func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength || n > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrInvalidPhone
	}
	return nil
}

func ValidateEmail(email string) error {
	if !validators.IsEmailValid(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(raw string) error {
	if utf8.RuneCountInString(raw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration checks presence first, then each field's format.
func ValidateRegistration(name, email, password, phone string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		password == "" ||
		strings.TrimSpace(phone) == "" {
		return ErrMissingFields
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return ValidatePhone(phone)
}

// ===============================
// Passwords
// ===============================

func HashPassword(raw string, cost int) (string, error) {
	if err := ValidatePassword(raw); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
