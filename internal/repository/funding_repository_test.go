package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senti/internal/model"
)

func TestMemoryFundingRepository_ListIsACopy(t *testing.T) {
	repo := NewMemoryFundingRepository([]model.CatalogItem{
		{ID: "1", Title: "Clean Ocean Initiative Grant", Tags: []string{"Environment"}},
		{ID: "2", Title: "Women in Business Fund", Tags: []string{"Women"}},
	})

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	first[0].Title = "changed"
	first[1].Tags[0] = "changed"

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Clean Ocean Initiative Grant", second[0].Title)
	assert.Equal(t, []string{"Women"}, second[1].Tags)
}

func TestMemoryDirectoryRepository(t *testing.T) {
	repo := NewMemoryDirectoryRepository(
		[]model.Event{{ID: "1", Title: "Grant Writing Workshop"}},
		[]model.Resource{{ID: "1", Title: "Guide to Impact Measurement"}},
		[]model.Mentor{{ID: "1", Name: "Jane Smith"}},
	)
	ctx := context.Background()

	events, err := repo.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	resources, err := repo.Resources(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 1)

	mentors, err := repo.Mentors(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", mentors[0].Name)
}
