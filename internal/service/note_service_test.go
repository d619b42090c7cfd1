package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_CreateInFolderWithTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")

	work := env.mustFolder(t, alice, "Work", nil)
	noteId := env.mustNote(t, alice, "Plan", "--- \ntags: urgent\n---\nBody", &work)

	items, err := env.folders.GetFolderContents(ctx, alice, &work)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, noteId, items[0].Id)
	assert.Equal(t, "Plan", items[0].Name)

	tags, err := env.notes.GetNoteTags(ctx, noteId)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, tags)

	ok, err := env.folders.MoveFolder(ctx, alice, work, &work)
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)
}

func TestNoteService_CreateNote_ForeignFolder(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	aliceFolder := env.mustFolder(t, alice, "Mine", nil)

	_, err := env.notes.CreateNote(context.Background(), bob, "x", "y", &aliceFolder, nil, nil)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)

	notes, err := env.notes.GetNotesByUser(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteService_UpdateNoteRegeneratesTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	noteId := env.mustNote(t, alice, "Draft", "---\ntags: a, A, a-b, \n---\ntext", nil)

	tags, err := env.notes.GetNoteTags(ctx, noteId)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a-b"}, tags)

	before, err := env.notes.GetNote(ctx, alice, noteId)
	require.NoError(t, err)

	ok, err := env.notes.UpdateNote(ctx, noteId, "Final", "---\ntags: done\n---\nshipped")
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := env.notes.GetNote(ctx, alice, noteId)
	require.NoError(t, err)
	assert.Equal(t, "Final", after.Title)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	tags, err = env.notes.GetNoteTags(ctx, noteId)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, tags)

	ok, err = env.notes.UpdateNote(ctx, 9999, "x", "y")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteService_CrossUserIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	noteId := env.mustNote(t, alice, "Secret", "classified", nil)

	got, err := env.notes.GetNote(ctx, bob, noteId)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := env.notes.UpdateNoteForUser(ctx, bob, noteId, "pwned", "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.notes.RenameNote(ctx, bob, noteId, "pwned")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.notes.MoveNote(ctx, bob, noteId, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.notes.DeleteNote(ctx, bob, noteId)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = env.notes.GetNote(ctx, alice, noteId)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Secret", got.Title)
	assert.Equal(t, "classified", got.Content)
}

func TestNoteService_RenameAndMove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	work := env.mustFolder(t, alice, "Work", nil)
	bobFolder := env.mustFolder(t, bob, "Bob", nil)
	noteId := env.mustNote(t, alice, "Old", "body", nil)

	_, err := env.notes.RenameNote(ctx, alice, noteId, "  ")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	ok, err := env.notes.RenameNote(ctx, alice, noteId, " New ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.notes.MoveNote(ctx, alice, noteId, &work)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.notes.MoveNote(ctx, alice, noteId, &bobFolder)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)

	inWork, err := env.notes.GetNotesByFolder(ctx, alice, &work)
	require.NoError(t, err)
	require.Len(t, inWork, 1)
	assert.Equal(t, "New", inWork[0].Title)

	ok, err = env.notes.MoveNote(ctx, alice, noteId, ptr(entity.RootFolderID))
	require.NoError(t, err)
	assert.True(t, ok)
	loose, err := env.notes.GetNotesByFolder(ctx, alice, nil)
	require.NoError(t, err)
	assert.Len(t, loose, 1)
}

func TestNoteService_DeleteNoteRemovesTagsAndRecents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	noteId := env.mustNote(t, alice, "Gone", "---\ntags: x, y\n---\n", nil)

	ok, err := env.notes.DeleteNote(ctx, alice, noteId)
	require.NoError(t, err)
	assert.True(t, ok)

	tags, err := env.notes.GetNoteTags(ctx, noteId)
	require.NoError(t, err)
	assert.Empty(t, tags)

	uow := env.factory.NewUnitOfWork(ctx)
	n, err := uow.RecentModificationRepository().Count(ctx, specification.Filter("noteid", noteId))
	require.NoError(t, err)
	assert.Zero(t, n)

	ok, err = env.notes.DeleteNote(ctx, alice, noteId)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteService_AddTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	noteId := env.mustNote(t, alice, "Tagged", "plain", nil)

	ok, err := env.notes.AddTag(ctx, noteId, " Go-Lang! ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.notes.AddTag(ctx, noteId, "go-lang")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.notes.AddTag(ctx, noteId, "!!!")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.notes.AddTag(ctx, noteId, strings.Repeat("x", 51))
	require.NoError(t, err)
	assert.False(t, ok)

	tags, err := env.notes.GetNoteTags(ctx, noteId)
	require.NoError(t, err)
	assert.Equal(t, []string{"go-lang"}, tags)

	found, err := env.notes.SearchByTag(ctx, alice, "GO-LANG")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, noteId, found[0].Id)
}

func TestNoteService_RecentModifiedFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")

	var ids []uint
	for i := 0; i < 12; i++ {
		content := fmt.Sprintf("<b>note</b> %d `code` %s", i, strings.Repeat("é", 150))
		ids = append(ids, env.mustNote(t, alice, fmt.Sprintf("n%02d", i), content, nil))
	}
	_, err := env.notes.UpdateNote(ctx, ids[0], "n00", "touched again")
	require.NoError(t, err)

	files, err := env.notes.GetRecentModifiedFiles(ctx, alice, 10)
	require.NoError(t, err)
	require.Len(t, files, 10)
	assert.Equal(t, ids[0], files[0].NoteId)
	assert.Equal(t, "touched again", files[0].Preview)
	assert.Equal(t, ids[11], files[1].NoteId)

	for i, f := range files {
		assert.LessOrEqual(t, utf8.RuneCountInString(f.Preview), 103)
		assert.NotContains(t, f.Preview, "<b>")
		if i > 0 {
			assert.False(t, f.ModifiedAt.After(files[i-1].ModifiedAt))
		}
	}

	all, err := env.notes.GetRecentModifiedFiles(ctx, alice, 0)
	require.NoError(t, err)
	assert.Len(t, all, DefaultRecentLimit)
}

func TestNoteService_GetNotesByUserOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	first := env.mustNote(t, alice, "first", "", nil)
	second := env.mustNote(t, alice, "second", "", nil)

	notes, err := env.notes.GetNotesByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second, notes[0].Id)
	assert.Equal(t, first, notes[1].Id)
}
