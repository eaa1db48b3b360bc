package model

import "time"

// CatalogItem is a funding opportunity listed on the funding page.
// Amount is the display string ("$25,000"); Deadline is a calendar date (2006-01-02).
type CatalogItem struct {
	ID           string    `json:"id" yaml:"id" gorm:"size:64;primaryKey"`
	Title        string    `json:"title" yaml:"title" gorm:"size:255;not null"`
	Organization string    `json:"organization" yaml:"organization" gorm:"size:255;not null"`
	Amount       string    `json:"amount" yaml:"amount" gorm:"size:64;not null"`
	Deadline     string    `json:"deadline" yaml:"deadline" gorm:"size:10;not null"`
	Tags         []string  `json:"tags" yaml:"tags" gorm:"serializer:json"`
	Description  string    `json:"description" yaml:"description" gorm:"type:text"`
	Position     int       `json:"-" yaml:"-" gorm:"index"`
	CreatedAt    time.Time `json:"-" yaml:"-"`
	UpdatedAt    time.Time `json:"-" yaml:"-"`
}

// TableName keeps the SQL table named after what the rows are.
func (CatalogItem) TableName() string {
	return "funding_opportunities"
}

// SearchFields are matched by free-text search.
func (c CatalogItem) SearchFields() []string {
	return []string{c.Title, c.Organization, c.Description}
}

// TagSet returns the item's tags.
func (c CatalogItem) TagSet() []string {
	return c.Tags
}
