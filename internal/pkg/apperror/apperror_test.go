package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := Integrity("cannot move a folder into itself")
	assert.ErrorIs(t, err, ErrIntegrity)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindIntegrity, KindOf(err))

	wrapped := fmt.Errorf("move: %w", err)
	assert.ErrorIs(t, wrapped, ErrIntegrity)
	assert.Equal(t, KindIntegrity, KindOf(wrapped))
}

func TestStorageWrapsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Storage("note.update", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "note.update")
	assert.Equal(t, "Internal server error", PublicMessage(err))
}

func TestStorageKeepsExistingKind(t *testing.T) {
	err := Storage("import", Validation("Unsupported version"))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Unsupported version", PublicMessage(err))
	assert.Nil(t, Storage("noop", nil))
}

func TestPublicMessageForPlainError(t *testing.T) {
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("boom")))
	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
}
