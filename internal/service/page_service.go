package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"senti/internal/listing"
	"senti/internal/model"
	"senti/internal/repository"
)

const dashboardPreviewSize = 2

// Stat is one quick-stat tile on the dashboard.
type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// DashboardView is the signed-in landing page.
type DashboardView struct {
	Greeting  string              `json:"greeting"`
	User      *model.Identity     `json:"user"`
	Stats     []Stat              `json:"stats"`
	Funding   []model.CatalogItem `json:"funding"`
	Events    []model.Event       `json:"events"`
	Resources []model.Resource    `json:"resources"`
	Mentors   []model.Mentor      `json:"mentors"`
}

// FundingView is the funding listing for one query.
type FundingView struct {
	Items []model.CatalogItem `json:"items"`
	Tags  []string            `json:"tags"`
	Spec  listing.Spec        `json:"spec"`
	Total int                 `json:"total"`
}

// ListingView is a searchable, tag-filtered listing.
type ListingView[T listing.Item] struct {
	Items        []T      `json:"items"`
	Tags         []string `json:"tags"`
	Query        string   `json:"query"`
	SelectedTags []string `json:"selectedTags"`
}

// ProfileView is the profile page.
type ProfileView struct {
	User      *model.Identity `json:"user"`
	Location  string          `json:"location"`
	Skills    []string        `json:"skills"`
	Interests []string        `json:"interests"`
}

// PageService builds the views of the signed-in pages.
type PageService interface {
	Dashboard(ctx context.Context, user *model.Identity) (*DashboardView, error)
	Funding(ctx context.Context, spec listing.Spec) (*FundingView, error)
	Events(ctx context.Context, query string, tags []string) (*ListingView[model.Event], error)
	Resources(ctx context.Context, query string, tags []string) (*ListingView[model.Resource], error)
	Mentors(ctx context.Context, query string, tags []string) (*ListingView[model.Mentor], error)
	Profile(user *model.Identity) *ProfileView
}

type pageService struct {
	funding   repository.FundingRepository
	directory repository.DirectoryRepository
	logger    *zap.Logger
}

// NewPageService creates a new page service.
func NewPageService(funding repository.FundingRepository, directory repository.DirectoryRepository, logger *zap.Logger) PageService {
	return &pageService{
		funding:   funding,
		directory: directory,
		logger:    logger,
	}
}

func (s *pageService) Dashboard(ctx context.Context, user *model.Identity) (*DashboardView, error) {
	catalog, err := s.funding.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list funding: %w", err)
	}
	soonest, err := listing.Query(catalog, listing.DefaultSpec())
	if err != nil {
		return nil, err
	}
	if len(soonest) > dashboardPreviewSize {
		soonest = soonest[:dashboardPreviewSize]
	}

	events, err := s.directory.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	resources, err := s.directory.Resources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	mentors, err := s.directory.Mentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}

	return &DashboardView{
		Greeting: "Welcome back, " + user.Name,
		User:     user,
		Stats: []Stat{
			{Label: "Mentoring Sessions", Value: 3},
			{Label: "Funding Applications", Value: 2},
			{Label: "Resources Saved", Value: 7},
			{Label: "Events RSVP'd", Value: 1},
		},
		Funding:   soonest,
		Events:    events,
		Resources: resources,
		Mentors:   mentors,
	}, nil
}

func (s *pageService) Funding(ctx context.Context, spec listing.Spec) (*FundingView, error) {
	catalog, err := s.funding.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list funding: %w", err)
	}
	tags := listing.Tags(catalog)
	if err := spec.Validate(tags); err != nil {
		return nil, err
	}
	items, err := listing.Query(catalog, spec)
	if err != nil {
		s.logger.Error("funding catalog rejected", zap.Error(err))
		return nil, err
	}
	if spec.Tags == nil {
		spec.Tags = []string{}
	}
	return &FundingView{
		Items: items,
		Tags:  tags,
		Spec:  spec,
		Total: len(catalog),
	}, nil
}

func (s *pageService) Events(ctx context.Context, query string, tags []string) (*ListingView[model.Event], error) {
	events, err := s.directory.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return filterListing(events, query, tags)
}

func (s *pageService) Resources(ctx context.Context, query string, tags []string) (*ListingView[model.Resource], error) {
	resources, err := s.directory.Resources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return filterListing(resources, query, tags)
}

func (s *pageService) Mentors(ctx context.Context, query string, tags []string) (*ListingView[model.Mentor], error) {
	mentors, err := s.directory.Mentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return filterListing(mentors, query, tags)
}

func filterListing[T listing.Item](items []T, query string, tags []string) (*ListingView[T], error) {
	universe := listing.Tags(items)
	if err := (listing.Spec{Tags: tags}).Validate(universe); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return &ListingView[T]{
		Items:        listing.Filter(items, query, tags),
		Tags:         universe,
		Query:        query,
		SelectedTags: tags,
	}, nil
}

// Profile fills the profile page; location, skills and interests are the
// defaults every new profile starts with.
func (s *pageService) Profile(user *model.Identity) *ProfileView {
	return &ProfileView{
		User:      user,
		Location:  "Mombasa, Kenya",
		Skills:    []string{"Social Impact", "Community Engagement"},
		Interests: []string{"Education", "Environment", "Health"},
	}
}
