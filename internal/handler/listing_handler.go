package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"senti/internal/listing"
	"senti/internal/service"
)

// ListingHandler serves the searchable listings.
type ListingHandler struct {
	pages service.PageService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(pages service.PageService) *ListingHandler {
	return &ListingHandler{pages: pages}
}

// Funding godoc
// @Summary Funding opportunities
// @Tags listings
// @Produce json
// @Param q query string false "Search title, organization and description"
// @Param tag query []string false "Selected tags" collectionFormat(multi)
// @Param sort query string false "Sort key" Enums(deadline, amount)
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} service.FundingView
// @Failure 302 "Not signed in"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /funding [get]
func (h *ListingHandler) Funding(c echo.Context) error {
	spec, err := parseSpec(c)
	if err != nil {
		return httpError(err)
	}

	view, err := h.pages.Funding(c.Request().Context(), spec)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Mentorship godoc
// @Summary Mentors
// @Tags listings
// @Produce json
// @Param q query string false "Search name and role"
// @Param tag query []string false "Expertise" collectionFormat(multi)
// @Success 200 {object} service.ListingView[model.Mentor]
// @Failure 302 "Not signed in"
// @Failure 400 {object} errors.ErrorResponse
// @Router /mentorship [get]
func (h *ListingHandler) Mentorship(c echo.Context) error {
	view, err := h.pages.Mentors(c.Request().Context(), c.QueryParam("q"), c.QueryParams()["tag"])
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Resources godoc
// @Summary Resource library
// @Tags listings
// @Produce json
// @Param q query string false "Search title, type and category"
// @Param tag query []string false "Categories" collectionFormat(multi)
// @Success 200 {object} service.ListingView[model.Resource]
// @Failure 302 "Not signed in"
// @Failure 400 {object} errors.ErrorResponse
// @Router /resources [get]
func (h *ListingHandler) Resources(c echo.Context) error {
	view, err := h.pages.Resources(c.Request().Context(), c.QueryParam("q"), c.QueryParams()["tag"])
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Events godoc
// @Summary Upcoming events
// @Tags listings
// @Produce json
// @Param q query string false "Search title and location"
// @Param tag query []string false "Tags" collectionFormat(multi)
// @Success 200 {object} service.ListingView[model.Event]
// @Failure 302 "Not signed in"
// @Failure 400 {object} errors.ErrorResponse
// @Router /events [get]
func (h *ListingHandler) Events(c echo.Context) error {
	view, err := h.pages.Events(c.Request().Context(), c.QueryParam("q"), c.QueryParams()["tag"])
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func parseSpec(c echo.Context) (listing.Spec, error) {
	sortBy, err := listing.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return listing.Spec{}, err
	}
	dir, err := listing.ParseDirection(c.QueryParam("dir"))
	if err != nil {
		return listing.Spec{}, err
	}
	return listing.Spec{
		Query:     c.QueryParam("q"),
		Tags:      c.QueryParams()["tag"],
		SortBy:    sortBy,
		Direction: dir,
	}, nil
}
