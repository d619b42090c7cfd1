package service

import (
	"context"
	"testing"

	"markit-notes-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndVerify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.users.Register(ctx, " carol ", "s3cret-pass")
	require.NoError(t, err)
	assert.Greater(t, id, uint(1))

	_, err = env.users.Register(ctx, "carol", "another")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.users.Register(ctx, ".system", "whatever")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	user, err := env.users.VerifyCredentials(ctx, "carol", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, id, user.Id)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	_, err = env.users.VerifyCredentials(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.users.VerifyCredentials(ctx, "nobody", "wrong")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUserService_RememberToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dave := env.newUser(t, "dave")

	token, err := env.users.IssueRememberToken(ctx, dave)
	require.NoError(t, err)
	assert.Len(t, token, 36)

	user, err := env.users.GetUserByUsername(ctx, "dave")
	require.NoError(t, err)
	require.NotNil(t, user.RememberToken)
	assert.Equal(t, token, *user.RememberToken)

	require.NoError(t, env.users.UpdateRememberToken(ctx, dave, nil))
	user, err = env.users.GetUserByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.Nil(t, user.RememberToken)

	err = env.users.UpdateRememberToken(ctx, 9999, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserService_IssueAccessToken(t *testing.T) {
	env := newTestEnv(t)

	signed, err := env.users.IssueAccessToken(42)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.EqualValues(t, 42, claims["user_id"])
}
