package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
)

type registerInput struct {
	Username string `json:"username" validate:"required,alphanum,min=4,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{
		Username: "jacob",
		Email:    "jake@example.com",
		Password: "jakejake",
	})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{
		Username: "a b",
		Email:    "not-an-email",
		Password: "pw",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must contain only letters and numbers", details["username"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be at least 6 characters", details["password"])
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(registerInput{Username: "jacob", Password: "jakejake"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "email")
	assert.NotContains(t, domainErr.Details, "Email")
}
