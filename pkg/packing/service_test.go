package packing

import (
	"context"
	"testing"

	"github.com/snowtrip/hokkaido/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = session.WithId(context.Background(), "session-1")

var testCategories = []Category{
	{Name: "Documents", Items: []string{"Passport", "JR Pass"}},
	{Name: "Snow gear", Items: []string{"Snow boots", "Hand warmers"}},
}

func setup(t *testing.T) *ServiceImpl {
	t.Helper()
	return NewServiceWithDefaults(NewMemoryRepository(), testCategories)
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("should seed new session with defaults", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		list, err := service.Get(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, testCategories, list.Categories)
		assert.Equal(t, 0.0, list.Progress())
	})

	t.Run("should keep sessions apart", func(t *testing.T) {
		// given
		service := setup(t)
		_, err := service.Toggle(ctx, "Passport", true)
		require.NoError(t, err)

		// when
		list, err := service.Get(session.WithId(context.Background(), "session-2"))

		// then
		require.NoError(t, err)
		assert.False(t, list.Checked["Passport"])
	})

	t.Run("should fail without session", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, err := service.Get(context.Background())

		// then
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestServiceImpl_Toggle(t *testing.T) {
	t.Run("should set stored value and update progress", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		list, err := service.Toggle(ctx, "Passport", true)

		// then
		require.NoError(t, err)
		assert.True(t, list.Checked["Passport"])
		assert.Equal(t, 0.25, list.Progress())
	})

	t.Run("should set the given value rather than flip", func(t *testing.T) {
		// given
		service := setup(t)
		_, err := service.Toggle(ctx, "Passport", true)
		require.NoError(t, err)

		// when
		list, err := service.Toggle(ctx, "Passport", true)

		// then
		require.NoError(t, err)
		assert.True(t, list.Checked["Passport"])
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, err := service.Toggle(ctx, "Umbrella", true)

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestServiceImpl_AddItem(t *testing.T) {
	t.Run("should trim and append item to new category", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		list, err := service.AddItem(ctx, " Snacks ", " Royce chocolate ")

		// then
		require.NoError(t, err)
		require.Len(t, list.Categories, 3)
		assert.Equal(t, Category{Name: "Snacks", Items: []string{"Royce chocolate"}}, list.Categories[2])
		assert.Equal(t, 5, list.ItemCount())
	})

	t.Run("should reject blank names", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, errCategory := service.AddItem(ctx, " ", "Umbrella")
		_, errItem := service.AddItem(ctx, "Documents", "")

		// then
		assert.ErrorIs(t, errCategory, ErrInvalidName)
		assert.ErrorIs(t, errItem, ErrInvalidName)
	})

	t.Run("should reject names containing a slash", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, errCategory := service.AddItem(ctx, "Ski/Snowboard", "Goggles")
		list, errItem := service.AddItem(ctx, "Snow gear", "Skis/poles")

		// then
		assert.ErrorIs(t, errCategory, ErrInvalidName)
		assert.ErrorIs(t, errItem, ErrInvalidName)
		assert.Empty(t, list.Categories)
	})

	t.Run("should reject duplicate item", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, err := service.AddItem(ctx, "Documents", "Passport")

		// then
		assert.ErrorIs(t, err, ErrItemExists)
	})
}

func TestServiceImpl_RemoveItem(t *testing.T) {
	// given
	service := setup(t)
	_, err := service.Toggle(ctx, "Passport", true)
	require.NoError(t, err)

	// when
	list, err := service.RemoveItem(ctx, "Documents", "Passport")

	// then
	require.NoError(t, err)
	assert.NotContains(t, list.Checked, "Passport")
	assert.Equal(t, []string{"JR Pass"}, list.Categories[0].Items)
	assert.Equal(t, 0.0, list.Progress())
}

func TestServiceImpl_Categories(t *testing.T) {
	t.Run("should add empty category", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		list, err := service.AddCategory(ctx, "Snacks")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Snacks", list.Categories[2].Name)
		assert.Empty(t, list.Categories[2].Items)
	})

	t.Run("should reject existing category", func(t *testing.T) {
		// given
		service := setup(t)

		// when
		_, err := service.AddCategory(ctx, "Documents")

		// then
		assert.ErrorIs(t, err, ErrCategoryExists)
	})

	t.Run("should remove category with its checkbox entries", func(t *testing.T) {
		// given
		service := setup(t)
		_, err := service.Toggle(ctx, "Passport", true)
		require.NoError(t, err)

		// when
		list, err := service.RemoveCategory(ctx, "Documents")

		// then
		require.NoError(t, err)
		assert.Len(t, list.Categories, 1)
		assert.Equal(t, map[string]bool{"Snow boots": false, "Hand warmers": false}, list.Checked)
	})

	t.Run("should keep empty list after removing every category", func(t *testing.T) {
		// given
		service := setup(t)
		_, err := service.RemoveCategory(ctx, "Documents")
		require.NoError(t, err)
		_, err = service.RemoveCategory(ctx, "Snow gear")
		require.NoError(t, err)

		// when
		list, err := service.Get(ctx)

		// then
		require.NoError(t, err)
		assert.Empty(t, list.Categories)
		assert.Equal(t, 0.0, list.Progress())
	})
}
