package listing

import (
	"fmt"
	"slices"
	"strings"

	"senti/internal/errors"
)

// SortKey names the field a listing is ordered by.
type SortKey string

const (
	SortByDeadline SortKey = "deadline"
	SortByAmount   SortKey = "amount"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Spec holds the search, tag filter and ordering for one listing view.
// An empty Tags slice means no tag filtering.
type Spec struct {
	Query     string    `json:"query"`
	Tags      []string  `json:"tags"`
	SortBy    SortKey   `json:"sortBy"`
	Direction Direction `json:"direction"`
}

// DefaultSpec is the initial view: everything, earliest deadline first.
func DefaultSpec() Spec {
	return Spec{SortBy: SortByDeadline, Direction: Asc}
}

// ParseSortKey parses a sort key; the empty string selects the deadline.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByDeadline:
		return SortByDeadline, nil
	case SortByAmount:
		return SortByAmount, nil
	}
	return "", fmt.Errorf("%w: sort key %q", errors.ErrInvalidQuery, s)
}

// ParseDirection parses a direction; the empty string selects ascending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: direction %q", errors.ErrInvalidQuery, s)
}

// Validate checks that every selected tag is part of universe.
func (s Spec) Validate(universe []string) error {
	for _, tag := range s.Tags {
		if !slices.Contains(universe, tag) {
			return fmt.Errorf("%w: %q", errors.ErrUnknownTag, tag)
		}
	}
	return nil
}

// ToggleSort selects key. Selecting the current key flips the direction;
// selecting a different key starts ascending.
func (s Spec) ToggleSort(key SortKey) Spec {
	if s.SortBy == key {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return s
	}
	s.SortBy = key
	s.Direction = Asc
	return s
}

// ToggleTag adds tag to the selection, or removes it if already selected.
func (s Spec) ToggleTag(tag string) Spec {
	if i := slices.Index(s.Tags, tag); i >= 0 {
		s.Tags = slices.Delete(slices.Clone(s.Tags), i, i+1)
		return s
	}
	s.Tags = append(slices.Clone(s.Tags), tag)
	return s
}
