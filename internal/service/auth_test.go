package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sshperkin/travel-agency/internal/model"
)

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	user, err := auth.Register(RegisterUserInput{
		Username: "manager1",
		Password: "correct horse",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	session, err := auth.Authenticate("manager1", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "manager1", session.Username)
	assert.Equal(t, model.RoleManager, session.Role)
}

func TestAuthService_UniformFailure(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	_, err := auth.Register(RegisterUserInput{Username: "manager1", Password: "correct horse"})
	require.NoError(t, err)

	// Wrong password and unknown username fail with the same error
	_, wrongPass := auth.Authenticate("manager1", "wrong horse")
	_, unknownUser := auth.Authenticate("nosuchuser", "correct horse")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}

func TestAuthService_InactiveAccount(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	user, err := auth.Register(RegisterUserInput{Username: "manager1", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = auth.Authenticate("manager1", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	var validationErr *ValidationError

	_, err := auth.Register(RegisterUserInput{Username: "", Password: "longenough"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "username", validationErr.Field)

	_, err = auth.Register(RegisterUserInput{Username: "u1", Password: "short"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)

	_, err = auth.Register(RegisterUserInput{Username: "u1", Password: "longenough", Role: "owner"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "role", validationErr.Field)

	_, err = auth.Register(RegisterUserInput{Username: "u1", Password: "longenough"})
	require.NoError(t, err)
	_, err = auth.Register(RegisterUserInput{Username: "u1", Password: "longenough"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "username", validationErr.Field)
}

func TestAuthService_ChangePassword(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	user, err := auth.Register(RegisterUserInput{Username: "manager1", Password: "correct horse"})
	require.NoError(t, err)

	// Wrong current password is rejected
	err = auth.ChangePassword(user.ID, "wrong horse", "battery staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, auth.ChangePassword(user.ID, "correct horse", "battery staple"))

	_, err = auth.Authenticate("manager1", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Authenticate("manager1", "battery staple")
	assert.NoError(t, err)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, bcrypt.MinCost)

	// Empty password disables bootstrapping
	require.NoError(t, auth.EnsureAdmin("admin", ""))
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, auth.EnsureAdmin("admin", "bootstrapme"))
	session, err := auth.Authenticate("admin", "bootstrapme")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, session.Role)

	// A second call must not create another account
	require.NoError(t, auth.EnsureAdmin("admin2", "bootstrapme"))
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
