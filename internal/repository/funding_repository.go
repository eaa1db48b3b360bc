package repository

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"senti/internal/model"
)

// FundingRepository supplies the funding catalog wholesale, in catalog order.
type FundingRepository interface {
	List(ctx context.Context) ([]model.CatalogItem, error)
}

type memoryFundingRepository struct {
	items []model.CatalogItem
}

// NewMemoryFundingRepository serves a fixed catalog.
func NewMemoryFundingRepository(items []model.CatalogItem) FundingRepository {
	return &memoryFundingRepository{items: cloneItems(items)}
}

// List returns a copy so callers cannot change the catalog.
func (r *memoryFundingRepository) List(ctx context.Context) ([]model.CatalogItem, error) {
	return cloneItems(r.items), nil
}

func cloneItems(items []model.CatalogItem) []model.CatalogItem {
	out := make([]model.CatalogItem, len(items))
	for i, item := range items {
		item.Tags = slices.Clone(item.Tags)
		out[i] = item
	}
	return out
}

// SQLFundingRepository reads and seeds the funding catalog in MySQL.
type SQLFundingRepository struct {
	db *gorm.DB
}

var _ FundingRepository = (*SQLFundingRepository)(nil)

// NewSQLFundingRepository builds a GORM-backed repository.
func NewSQLFundingRepository(db *gorm.DB) *SQLFundingRepository {
	return &SQLFundingRepository{db: db}
}

// List returns every opportunity ordered by its catalog position.
func (r *SQLFundingRepository) List(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list funding: %w", err)
	}
	return items, nil
}

// Upsert creates the item or overwrites the stored copy. It reports whether the item was new.
func (r *SQLFundingRepository) Upsert(ctx context.Context, item *model.CatalogItem) (created bool, err error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CatalogItem{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check funding %s: %w", item.ID, err)
	}
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return false, fmt.Errorf("save funding %s: %w", item.ID, err)
	}
	return count == 0, nil
}
