package auth

import (
	"testing"

	"brickshare-backend/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser_Success(t *testing.T) {
	db := setupAuthTest(t)

	u, err := RegisterUser(db, RegisterInput{
		Fullname: "New Tenant",
		Email:    "New.Tenant@Example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.Tenant, u.Role)
	// Email is normalized to lowercase
	assert.Equal(t, "new.tenant@example.com", u.Email)

	logged, err := LoginUser(db, LoginInput{Email: "new.tenant@example.com", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, u.UserID, logged.UserID)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	db := setupAuthTest(t)

	_, err := RegisterUser(db, RegisterInput{Fullname: "T", Email: "not-an-email", Password: "Sup3r$ecret"})
	assert.ErrorIs(t, err, ErrInvalidEmailFormat)

	// Too short, no digit, no special character
	_, err = RegisterUser(db, RegisterInput{Fullname: "T", Email: "t@example.com", Password: "weak"})
	assert.ErrorIs(t, err, ErrInvalidPasswordFormat)

	_, err = RegisterUser(db, RegisterInput{Fullname: "T3n@nt", Email: "t@example.com", Password: "Sup3r$ecret"})
	assert.ErrorIs(t, err, ErrInvalidFullname)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	db := setupAuthTest(t)

	_, err := RegisterUser(db, RegisterInput{Fullname: "T", Email: "t@example.com", Password: "Sup3r$ecret"})
	require.NoError(t, err)

	_, err = RegisterUser(db, RegisterInput{Fullname: "T", Email: "T@Example.com", Password: "Sup3r$ecret"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}
