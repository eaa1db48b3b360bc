package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"senti/internal/catalog"
	"senti/internal/model"
	"senti/internal/repository"
)

type MockUpserter struct {
	mock.Mock
}

func (m *MockUpserter) Upsert(ctx context.Context, item *model.CatalogItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func TestSeedCredentials_SkipsExistingEmails(t *testing.T) {
	creds, err := catalog.Credentials()
	require.NoError(t, err)
	repo := repository.NewMemoryCredentialRepository(creds[:1])

	added, skipped, err := seedCredentials(context.Background(), repo, creds)
	require.NoError(t, err)
	assert.Equal(t, len(creds)-1, added)
	assert.Equal(t, 1, skipped)

	identity, err := repo.Authenticate(context.Background(), creds[1].Email, creds[1].Password)
	require.NoError(t, err)
	assert.Equal(t, creds[1].Role, identity.Role)
}

func TestSeedFunding(t *testing.T) {
	items := []model.CatalogItem{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	repo := new(MockUpserter)
	repo.On("Upsert", mock.Anything, &items[0]).Return(true, nil)
	repo.On("Upsert", mock.Anything, &items[1]).Return(false, nil)
	repo.On("Upsert", mock.Anything, &items[2]).Return(true, nil)

	created, updated, err := seedFunding(context.Background(), repo, items)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, updated)
	repo.AssertExpectations(t)
}

func TestSeedFunding_StopsOnError(t *testing.T) {
	items := []model.CatalogItem{{ID: "1"}, {ID: "2"}}
	boom := errors.New("deadlock")
	repo := new(MockUpserter)
	repo.On("Upsert", mock.Anything, &items[0]).Return(false, boom)

	_, _, err := seedFunding(context.Background(), repo, items)
	assert.ErrorIs(t, err, boom)
	repo.AssertNumberOfCalls(t, "Upsert", 1)
}
