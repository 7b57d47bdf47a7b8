package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name, email, password, phone string
		want                         error
	}{
		{"Asha", "asha@example.com", "secret1", "+91 99999 00000", nil},
		{"", "asha@example.com", "secret1", "1", ErrMissingFields},
		{"Asha", "", "secret1", "1", ErrMissingFields},
		{"Asha", "asha@example.com", "", "1", ErrMissingFields},
		{"Asha", "asha@example.com", "secret1", "  ", ErrMissingFields},
		{"A", "asha@example.com", "secret1", "1", ErrInvalidName},
		{strings.Repeat("a", 51), "asha@example.com", "secret1", "1", ErrInvalidName},
		{"Asha", "asha-at-example", "secret1", "1", ErrInvalidEmail},
		{"Asha", "asha@example.com", "12345", "1", ErrPasswordTooShort},
	}

	for _, tc := range cases {
		err := ValidateRegistration(tc.name, tc.email, tc.password, tc.phone)
		if tc.want == nil {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, tc.want, "%+v", tc)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestHashPasswordEnforcesLength(t *testing.T) {
	_, err := HashPassword("abc", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
