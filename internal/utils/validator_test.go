// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/domain"
)

type signupForm struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"required,role"`
	Tracks   int    `json:"track_number" validate:"gt=0"`
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	err := ValidateStruct(signupForm{Username: "a!", Password: "weak", Role: "admin", Tracks: 0})
	require.Error(t, err)

	byField := map[string]ValidationError{}
	for _, e := range GetValidationErrors(err) {
		byField[e.Field] = e
	}

	require.Len(t, byField, 4)
	assert.Equal(t, "username", byField["username"].Tag)
	assert.Equal(t, "strong_password", byField["password"].Tag)
	assert.Equal(t, "role", byField["role"].Tag)
	assert.Equal(t, "gt", byField["track_number"].Tag)
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	for _, role := range []string{"artist", "producer", "listener", "label_manager"} {
		err := ValidateStruct(signupForm{Username: "new_user", Password: "Secret123!", Role: role, Tracks: 1})
		assert.NoError(t, err, role)
	}
}

func TestFromFieldErrors(t *testing.T) {
	out := FromFieldErrors([]domain.FieldError{{Field: "royalty_split", Message: "must add up to 100"}})
	require.Len(t, out, 1)
	assert.Equal(t, ValidationError{Field: "royalty_split", Tag: "invalid", Message: "must add up to 100"}, out[0])
}
