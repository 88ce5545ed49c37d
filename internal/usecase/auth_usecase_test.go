package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthUsecase, *fakeUserStore) {
	users := newFakeUserStore()
	uc := &AuthUsecase{
		userRepo: users,
		secret:   []byte("test-signing-secret"),
		tokenTTL: time.Hour,
	}
	return uc, users
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	uc, _ := newAuthFixture()

	user, err := uc.Register("jane@example.com", "Jane Doe", "s3cret-password", model.RoleHiringManager)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, model.RoleHiringManager, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-password", user.HashedPassword)

	token, loggedIn, err := uc.Login("jane@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := uc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Register("jane@example.com", "Jane Doe", "right-password", model.RoleApplicant)
	require.NoError(t, err)

	_, _, err = uc.Login("jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	uc, _ := newAuthFixture()

	_, _, err := uc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginInactiveAccount(t *testing.T) {
	uc, users := newAuthFixture()
	user, err := uc.Register("jane@example.com", "Jane Doe", "pw-123456", model.RoleApplicant)
	require.NoError(t, err)

	user.IsActive = false
	users.users[user.ID] = user

	_, _, err = uc.Login("jane@example.com", "pw-123456")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestRegisterEmailTaken(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Register("jane@example.com", "Jane Doe", "pw-123456", model.RoleApplicant)
	require.NoError(t, err)

	_, err = uc.Register("jane@example.com", "Other Jane", "other-pw", model.RoleApplicant)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUnknownRole(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register("jane@example.com", "Jane Doe", "pw-123456", "admin")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRegisterLongPassword(t *testing.T) {
	uc, _ := newAuthFixture()
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	_, err := uc.Register("jane@example.com", "Jane Doe", string(long), model.RoleApplicant)
	require.NoError(t, err)

	_, _, err = uc.Login("jane@example.com", string(long))
	assert.NoError(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseTokenWrongSecret(t *testing.T) {
	uc, users := newAuthFixture()
	_, err := uc.Register("jane@example.com", "Jane Doe", "pw-123456", model.RoleApplicant)
	require.NoError(t, err)
	token, _, err := uc.Login("jane@example.com", "pw-123456")
	require.NoError(t, err)

	other := &AuthUsecase{userRepo: users, secret: []byte("different-secret"), tokenTTL: time.Hour}
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseTokenRejectsNonUUIDSubject(t *testing.T) {
	uc, _ := newAuthFixture()

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	require.NoError(t, err)

	_, err = uc.ParseToken(token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
