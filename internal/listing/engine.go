// Package listing filters and orders catalog items for the listing pages.
// All functions are pure: they never modify their input.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"senti/internal/errors"
	"senti/internal/model"
)

const deadlineLayout = "2006-01-02"

// Item is anything that can be searched and filtered by tag.
type Item interface {
	SearchFields() []string
	TagSet() []string
}

// Tags returns the distinct tags across items in first-seen order.
func Tags[T Item](items []T) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, item := range items {
		for _, tag := range item.TagSet() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// Filter keeps the items whose search fields contain query (case-insensitive)
// and whose tags intersect tags. Empty query or tags do not filter.
// The result preserves input order.
func Filter[T Item](items []T, query string, tags []string) []T {
	needle := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, needle) && matchesTags(item, tags) {
			out = append(out, item)
		}
	}
	return out
}

func matchesQuery(item Item, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesTags(item Item, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range item.TagSet() {
		if slices.Contains(selected, tag) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of items. Items with equal keys keep
// their input order in both directions.
func Sort(items []model.CatalogItem, by SortKey, dir Direction) ([]model.CatalogItem, error) {
	if dir != Asc && dir != Desc {
		return nil, fmt.Errorf("%w: direction %q", errors.ErrInvalidQuery, dir)
	}

	type keyed struct {
		item     model.CatalogItem
		amount   decimal.Decimal
		deadline time.Time
	}
	rows := make([]keyed, len(items))
	for i, item := range items {
		rows[i].item = item
		switch by {
		case SortByAmount:
			amount, err := ParseAmount(item.Amount)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
			rows[i].amount = amount
		case SortByDeadline:
			deadline, err := ParseDeadline(item.Deadline)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
			rows[i].deadline = deadline
		default:
			return nil, fmt.Errorf("%w: sort key %q", errors.ErrInvalidQuery, by)
		}
	}

	compare := func(a, b keyed) int {
		if by == SortByAmount {
			return a.amount.Cmp(b.amount)
		}
		return a.deadline.Compare(b.deadline)
	}
	if dir == Desc {
		asc := compare
		compare = func(a, b keyed) int { return -asc(a, b) }
	}
	slices.SortStableFunc(rows, compare)

	out := make([]model.CatalogItem, len(rows))
	for i, row := range rows {
		out[i] = row.item
	}
	return out, nil
}

// Query filters catalog by spec and sorts the result.
func Query(catalog []model.CatalogItem, spec Spec) ([]model.CatalogItem, error) {
	return Sort(Filter(catalog, spec.Query, spec.Tags), cmp.Or(spec.SortBy, SortByDeadline), cmp.Or(spec.Direction, Asc))
}

// ParseAmount reads the magnitude of a formatted amount by dropping every
// non-digit character, so "$25,000" is 25000.
func ParseAmount(s string) (decimal.Decimal, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return decimal.Zero, fmt.Errorf("%w: amount %q has no digits", errors.ErrMalformedCatalogItem, s)
	}
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", errors.ErrMalformedCatalogItem, s, err)
	}
	return amount, nil
}

// ParseDeadline reads a calendar date in 2006-01-02 form.
func ParseDeadline(s string) (time.Time, error) {
	t, err := time.Parse(deadlineLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: deadline %q", errors.ErrMalformedCatalogItem, s)
	}
	return t, nil
}
