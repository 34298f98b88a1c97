package packing

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, string) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository, "session-1001"
}

func TestRepositoryImpl_Seed(t *testing.T) {
	t.Run("should store list in order", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)

		// when
		list, err := repo.Seed(ctx, sessionId, NewList(testCategories))

		// then
		require.NoError(t, err)
		assert.Equal(t, testCategories, list.Categories)
		assert.Equal(t, map[string]bool{"Passport": false, "JR Pass": false, "Snow boots": false, "Hand warmers": false}, list.Checked)
	})

	t.Run("should keep existing list", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)
		require.NoError(t, repo.SetChecked(ctx, sessionId, "Passport", true))

		// when
		list, err := repo.Seed(ctx, sessionId, NewList([]Category{{Name: "Other", Items: []string{"Thing"}}}))

		// then
		require.NoError(t, err)
		assert.Equal(t, testCategories, list.Categories)
		assert.True(t, list.Checked["Passport"])
	})
}

func TestRepositoryImpl_Load(t *testing.T) {
	t.Run("should return ErrListNotFound for new session", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)

		// when
		_, err := repo.Load(ctx, sessionId)

		// then
		assert.ErrorIs(t, err, ErrListNotFound)
	})

	t.Run("should return empty list after removing every category", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)
		require.NoError(t, repo.RemoveCategory(ctx, sessionId, "Documents"))
		require.NoError(t, repo.RemoveCategory(ctx, sessionId, "Snow gear"))

		// when
		list, err := repo.Load(ctx, sessionId)

		// then
		require.NoError(t, err)
		assert.Empty(t, list.Categories)
		assert.Empty(t, list.Checked)
	})
}

func TestRepositoryImpl_Items(t *testing.T) {
	t.Run("should add item under new category", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)

		// when
		err = repo.AddItem(ctx, sessionId, "Snacks", "Royce chocolate")

		// then
		require.NoError(t, err)
		list, err := repo.Load(ctx, sessionId)
		require.NoError(t, err)
		require.Len(t, list.Categories, 3)
		assert.Equal(t, Category{Name: "Snacks", Items: []string{"Royce chocolate"}}, list.Categories[2])
	})

	t.Run("should reject duplicate item without creating category", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)

		// when
		err = repo.AddItem(ctx, sessionId, "Snacks", "Passport")

		// then
		assert.ErrorIs(t, err, ErrItemExists)
		list, err := repo.Load(ctx, sessionId)
		require.NoError(t, err)
		assert.Len(t, list.Categories, 2)
	})

	t.Run("should remove item and its state", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)

		// when
		err = repo.RemoveItem(ctx, sessionId, "Documents", "Passport")

		// then
		require.NoError(t, err)
		list, err := repo.Load(ctx, sessionId)
		require.NoError(t, err)
		assert.Equal(t, []string{"JR Pass"}, list.Categories[0].Items)
		assert.NotContains(t, list.Checked, "Passport")
		assert.ErrorIs(t, repo.RemoveItem(ctx, sessionId, "Documents", "Passport"), ErrItemNotFound)
	})

	t.Run("should fail to check unknown item", func(t *testing.T) {
		// given
		ctx, repo, sessionId := setupTestRepository(t)
		_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
		require.NoError(t, err)

		// when
		err = repo.SetChecked(ctx, sessionId, "Umbrella", true)

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestRepositoryImpl_Categories(t *testing.T) {
	// given
	ctx, repo, sessionId := setupTestRepository(t)
	_, err := repo.Seed(ctx, sessionId, NewList(testCategories))
	require.NoError(t, err)

	// when
	errAdd := repo.AddCategory(ctx, sessionId, "Snacks")
	errDuplicate := repo.AddCategory(ctx, sessionId, "Snacks")
	errRemoveMissing := repo.RemoveCategory(ctx, sessionId, "Toys")

	// then
	assert.NoError(t, errAdd)
	assert.ErrorIs(t, errDuplicate, ErrCategoryExists)
	assert.ErrorIs(t, errRemoveMissing, ErrCategoryNotFound)
	list, err := repo.Load(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, "Snacks", list.Categories[2].Name)
}
