package repository

import (
	"context"

	"senti/internal/model"
)

// DirectoryRepository supplies the event, resource and mentor listings.
type DirectoryRepository interface {
	Events(ctx context.Context) ([]model.Event, error)
	Resources(ctx context.Context) ([]model.Resource, error)
	Mentors(ctx context.Context) ([]model.Mentor, error)
}

type memoryDirectoryRepository struct {
	events    []model.Event
	resources []model.Resource
	mentors   []model.Mentor
}

// NewMemoryDirectoryRepository serves fixed listings.
func NewMemoryDirectoryRepository(events []model.Event, resources []model.Resource, mentors []model.Mentor) DirectoryRepository {
	return &memoryDirectoryRepository{events: events, resources: resources, mentors: mentors}
}

func (r *memoryDirectoryRepository) Events(ctx context.Context) ([]model.Event, error) {
	return append([]model.Event(nil), r.events...), nil
}

func (r *memoryDirectoryRepository) Resources(ctx context.Context) ([]model.Resource, error) {
	return append([]model.Resource(nil), r.resources...), nil
}

func (r *memoryDirectoryRepository) Mentors(ctx context.Context) ([]model.Mentor, error) {
	return append([]model.Mentor(nil), r.mentors...), nil
}
