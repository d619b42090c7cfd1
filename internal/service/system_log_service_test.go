package service

import (
	"context"
	"testing"

	"markit-notes-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemLogService_RecordAndRecent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	method := "POST"

	for _, action := range []string{"list", "save", "search"} {
		require.NoError(t, env.logs.Record(ctx, &entity.SystemLog{
			Message:       action,
			RequestMethod: &method,
			UserId:        &alice,
		}))
	}

	logs, err := env.logs.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "search", logs[0].Message)
	assert.Equal(t, "save", logs[1].Message)
	require.NotNil(t, logs[0].UserId)
	assert.Equal(t, alice, *logs[0].UserId)
}
