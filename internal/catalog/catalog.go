// Package catalog holds the built-in demo data: sign-in records and the
// funding, event, resource and mentor listings.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"senti/internal/model"
)

//go:embed data/*.yaml
var files embed.FS

func load[T any](name string) ([]T, error) {
	data, err := files.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var out []T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return out, nil
}

// Credentials returns the demo sign-in records with their plain passwords.
func Credentials() ([]model.MockCredential, error) {
	creds, err := load[model.MockCredential]("credentials.yaml")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(creds))
	for _, c := range creds {
		if !c.Role.Valid() {
			return nil, fmt.Errorf("credential %s: unknown role %q", c.ID, c.Role)
		}
		if seen[c.Email] {
			return nil, fmt.Errorf("credential %s: duplicate email %s", c.ID, c.Email)
		}
		seen[c.Email] = true
	}
	return creds, nil
}

// Funding returns the funding opportunities in catalog order.
func Funding() ([]model.CatalogItem, error) {
	items, err := load[model.CatalogItem]("funding.yaml")
	if err != nil {
		return nil, err
	}
	for i := range items {
		if len(items[i].Tags) == 0 {
			return nil, fmt.Errorf("funding %s: no tags", items[i].ID)
		}
		items[i].Position = i
	}
	return items, nil
}

// Events returns the upcoming events.
func Events() ([]model.Event, error) {
	return load[model.Event]("events.yaml")
}

// Resources returns the resource library.
func Resources() ([]model.Resource, error) {
	return load[model.Resource]("resources.yaml")
}

// Mentors returns the mentor directory.
func Mentors() ([]model.Mentor, error) {
	return load[model.Mentor]("mentors.yaml")
}
