package service

import (
	"context"
	"testing"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderService_CreateFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")

	work := env.mustFolder(t, alice, "  Work  ", nil)
	assert.Greater(t, work, entity.RootFolderID)

	underRoot := env.mustFolder(t, alice, "Personal", ptr(entity.RootFolderID))
	child := env.mustFolder(t, alice, "Plans", &work)

	top, err := env.folders.GetFoldersByParent(ctx, alice, nil)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Personal", top[0].Name)
	assert.Nil(t, top[0].ParentId)
	assert.Equal(t, underRoot, top[0].Id)
	assert.Equal(t, "Work", top[1].Name)

	folder, err := env.folders.GetFolder(ctx, alice, child)
	require.NoError(t, err)
	require.NotNil(t, folder)
	require.NotNil(t, folder.ParentId)
	assert.Equal(t, work, *folder.ParentId)
	assert.True(t, folder.CreatedAt.Equal(folder.UpdatedAt))
}

func TestFolderService_CreateFolder_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	aliceFolder := env.mustFolder(t, alice, "Private", nil)

	_, err := env.folders.CreateFolder(ctx, alice, "   ", nil, nil, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.folders.CreateFolder(ctx, bob, "Intruder", &aliceFolder, nil, nil)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)

	_, err = env.folders.CreateFolder(ctx, alice, "Orphan", ptr(9999), nil, nil)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)
}

func TestFolderService_MoveFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	a := env.mustFolder(t, alice, "A", nil)
	b := env.mustFolder(t, alice, "B", &a)
	c := env.mustFolder(t, alice, "C", &b)
	other := env.mustFolder(t, alice, "Other", nil)

	ok, err := env.folders.MoveFolder(ctx, alice, a, &a)
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)

	ok, err = env.folders.MoveFolder(ctx, alice, a, &c)
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)

	ok, err = env.folders.MoveFolder(ctx, alice, b, &other)
	require.NoError(t, err)
	assert.True(t, ok)
	path, err := env.folders.GetFolderPath(ctx, alice, c)
	require.NoError(t, err)
	assert.Equal(t, "Other/B/C", path)

	ok, err = env.folders.MoveFolder(ctx, alice, b, ptr(entity.RootFolderID))
	require.NoError(t, err)
	assert.True(t, ok)
	moved, err := env.folders.GetFolder(ctx, alice, b)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentId)

	ok, err = env.folders.MoveFolder(ctx, alice, 9999, nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFolderService_MoveFolder_CrossUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	aliceFolder := env.mustFolder(t, alice, "Mine", nil)
	bobFolder := env.mustFolder(t, bob, "Theirs", nil)

	ok, err := env.folders.MoveFolder(ctx, bob, aliceFolder, nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.folders.MoveFolder(ctx, bob, bobFolder, &aliceFolder)
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperror.ErrIntegrity)
}

func TestFolderService_RenameInvalidatesPathCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	work := env.mustFolder(t, alice, "Work", nil)
	plans := env.mustFolder(t, alice, "Plans", &work)

	path, err := env.folders.GetFolderPath(ctx, alice, plans)
	require.NoError(t, err)
	assert.Equal(t, "Work/Plans", path)

	ok, err := env.folders.RenameFolder(ctx, alice, work, " Job ")
	require.NoError(t, err)
	assert.True(t, ok)

	crumbs, err := env.folders.GetStatusFolderPath(ctx, alice, plans)
	require.NoError(t, err)
	assert.Equal(t, []dto.BreadcrumbItem{{Id: work, Name: "Job"}, {Id: plans, Name: "Plans"}}, crumbs)

	_, err = env.folders.RenameFolder(ctx, alice, work, "  ")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	bob := env.newUser(t, "bob")
	ok, err = env.folders.RenameFolder(ctx, bob, work, "Hijacked")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFolderService_PathExcludesRootAndSurvivesLoops(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	a := env.mustFolder(t, alice, "A", nil)
	b := env.mustFolder(t, alice, "B", &a)

	path, err := env.folders.GetFolderPath(ctx, alice, entity.RootFolderID)
	require.NoError(t, err)
	assert.Equal(t, "", path)

	// Corrupt the tree behind the service's back.
	uow := env.factory.NewUnitOfWork(ctx)
	folderA, err := uow.FolderRepository().FindOne(ctx, specification.ByFolderID{ID: a})
	require.NoError(t, err)
	folderA.ParentId = &b
	require.NoError(t, uow.FolderRepository().Update(ctx, folderA))
	env.folders.InvalidatePaths(alice)

	crumbs, err := env.folders.GetStatusFolderPath(ctx, alice, b)
	require.NoError(t, err)
	assert.Len(t, crumbs, 2)
}

func TestFolderService_DeleteFolderRemovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	work := env.mustFolder(t, alice, "Work", nil)
	plans := env.mustFolder(t, alice, "Plans", &work)
	note := env.mustNote(t, alice, "Plan", "---\ntags: urgent\n---\nBody", &plans)
	keep := env.mustNote(t, alice, "Keep", "loose", nil)

	bob := env.newUser(t, "bob")
	ok, err := env.folders.DeleteFolder(ctx, bob, work)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.folders.DeleteFolder(ctx, alice, work)
	require.NoError(t, err)
	assert.True(t, ok)

	folders, err := env.folders.GetFoldersByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, folders)

	got, err := env.notes.GetNote(ctx, alice, note)
	require.NoError(t, err)
	assert.Nil(t, got)

	tags, err := env.notes.GetNoteTags(ctx, note)
	require.NoError(t, err)
	assert.Empty(t, tags)

	recent, err := env.notes.GetRecentModifiedFiles(ctx, alice, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, keep, recent[0].NoteId)
}

func TestFolderService_GetFolderContents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	work := env.mustFolder(t, alice, "Work", nil)
	env.mustFolder(t, alice, "Archive", nil)
	env.mustNote(t, alice, "zeta", "", nil)
	env.mustNote(t, alice, "alpha", "", nil)
	env.mustNote(t, alice, "inside", "", &work)
	env.mustFolder(t, bob, "Bob's", nil)

	items, err := env.folders.GetFolderContents(ctx, alice, ptr(entity.RootFolderID))
	require.NoError(t, err)
	require.Len(t, items, 4)

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Archive", "Work", "alpha", "zeta"}, names)
	assert.Equal(t, dto.ContentTypeFolder, items[0].Type)
	assert.Equal(t, dto.ContentTypeNote, items[3].Type)

	inside, err := env.folders.GetFolderContents(ctx, alice, &work)
	require.NoError(t, err)
	require.Len(t, inside, 1)
	assert.Equal(t, "inside", inside[0].Name)

	foreign, err := env.folders.GetFolderContents(ctx, bob, &work)
	require.NoError(t, err)
	assert.Empty(t, foreign)
}
