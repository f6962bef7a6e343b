package repository

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"go-commands-backend/config"
	"go-commands-backend/database"
	"go-commands-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:          "sqlite",
		DBPath:            filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns:    1,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: time.Minute,
		LogLevel:          "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createUser(t *testing.T, repo UserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	alice := createUser(t, repo, "alice")
	assert.NotZero(t, alice.ID)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	byID, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, &models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCommandRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewCommandRepository(db)
	owner := createUser(t, users, "owner")

	created := time.Now().UTC().Truncate(time.Second)
	cmd := &models.Command{Title: "list files", Technology: models.TechnologyBash, Content: "ls -la", UserID: owner.ID, CreatedAt: created}
	require.NoError(t, repo.Create(ctx, cmd))
	require.NotZero(t, cmd.ID)

	cmd.Title = "list all files"
	cmd.Technology = models.TechnologyCommand
	cmd.Content = "ls -lah"
	cmd.CreatedAt = created.Add(time.Hour) // must not be written
	require.NoError(t, repo.Update(ctx, cmd))

	got, err := repo.FindByID(ctx, cmd.ID)
	require.NoError(t, err)
	assert.Equal(t, "list all files", got.Title)
	assert.Equal(t, models.TechnologyCommand, got.Technology)
	assert.Equal(t, "ls -lah", got.Content)
	assert.Equal(t, owner.ID, got.UserID)
	assert.True(t, created.Equal(got.CreatedAt.UTC()))

	require.NoError(t, repo.Delete(ctx, got))
	_, err = repo.FindByID(ctx, cmd.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByUserWithFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewCommandRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	base := time.Now().UTC()
	seed := []models.Command{
		{Title: "Foo runner", Technology: models.TechnologyPython, Content: "print(1)", UserID: alice.ID},
		{Title: "bar", Technology: models.TechnologyPython, Content: "uses FOO inside", UserID: alice.ID},
		{Title: "baz", Technology: models.TechnologyBash, Content: "echo foo", UserID: alice.ID},
		{Title: "unrelated", Technology: models.TechnologyPython, Content: "nothing", UserID: alice.ID},
		{Title: "100% done_ok", Technology: models.TechnologyText, Content: "literal", UserID: alice.ID},
		{Title: "foo of bob", Technology: models.TechnologyPython, Content: "foo", UserID: bob.ID},
	}
	for i := range seed {
		seed[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	all, total, err := repo.FindByUserWithFilters(ctx, alice.ID, CommandFilter{}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, all, 5)
	assert.Equal(t, "100% done_ok", all[0].Title, "newest first")

	foo, total, err := repo.FindByUserWithFilters(ctx, alice.ID, CommandFilter{Search: "foo"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, c := range foo {
		assert.Equal(t, alice.ID, c.UserID)
	}

	fooPython, total, err := repo.FindByUserWithFilters(ctx, alice.ID, CommandFilter{Search: "FOO", Technology: models.TechnologyPython}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, c := range fooPython {
		assert.Equal(t, models.TechnologyPython, c.Technology)
	}

	literal, total, err := repo.FindByUserWithFilters(ctx, alice.ID, CommandFilter{Search: "0% done_"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, literal, 1)

	wildcard, total, err := repo.FindByUserWithFilters(ctx, alice.ID, CommandFilter{Search: "%"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "percent sign is matched literally")
	assert.Len(t, wildcard, 1)
}

func TestFindByUserWithFiltersPagination(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	owner := createUser(t, NewUserRepository(db), "pager")
	repo := NewCommandRepository(db)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		cmd := &models.Command{Title: "t", Technology: models.TechnologyGit, Content: "c", UserID: owner.ID, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.Create(ctx, cmd))
	}

	page0, total, err := repo.FindByUserWithFilters(ctx, owner.ID, CommandFilter{}, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page0, 2)

	page2, _, err := repo.FindByUserWithFilters(ctx, owner.ID, CommandFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	beyond, total, err := repo.FindByUserWithFilters(ctx, owner.ID, CommandFilter{}, 7, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)

	// page*size would overflow int
	huge, total, err := repo.FindByUserWithFilters(ctx, owner.ID, CommandFilter{}, math.MaxInt/2+1, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, huge)
}

func TestFindByUserWithFiltersNonASCII(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	owner := createUser(t, NewUserRepository(db), "umlaut")
	repo := NewCommandRepository(db)
	require.NoError(t, repo.Create(ctx, &models.Command{Title: "ÄRGER Log", Technology: models.TechnologyText, Content: "x", UserID: owner.ID, CreatedAt: time.Now().UTC()}))

	// pattern and column go through the same LOWER, so the ASCII tail may differ in case
	found, total, err := repo.FindByUserWithFilters(ctx, owner.ID, CommandFilter{Search: "ÄRGER log"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "ÄRGER Log", found[0].Title)
}
