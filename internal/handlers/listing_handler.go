package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/estates/internal/errors"
	"github.com/stwalsh4118/estates/internal/filter"
	"github.com/stwalsh4118/estates/internal/media"
	"github.com/stwalsh4118/estates/internal/middleware"
	"github.com/stwalsh4118/estates/internal/models"
	"github.com/stwalsh4118/estates/internal/services"
)

// ListingHandler serves the public listing pages: filtered results, facet
// options and single listings.
type ListingHandler struct {
	service  services.ListingService
	profiles filter.Profiles
	media    *media.Resolver
}

// NewListingHandler creates a new ListingHandler instance.
func NewListingHandler(service services.ListingService, profiles filter.Profiles, resolver *media.Resolver) *ListingHandler {
	return &ListingHandler{
		service:  service,
		profiles: profiles,
		media:    resolver,
	}
}

// ListingData is a listing as sent to the browser. Image paths are already
// resolved to loadable URLs.
type ListingData struct {
	Attributes map[string]any `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Images     []string       `json:"images"`
}

// BrowseResponse is the body of GET /api/v1/listings/:type.
type BrowseResponse struct {
	Facets    filter.FacetSet   `json:"facets"`
	Selection map[string]string `json:"selection"`
	Listings  []ListingData     `json:"listings"`
	Count     int               `json:"count"`
	Total     int               `json:"total"`
}

// FacetsResponse is the body of GET /api/v1/listings/:type/facets.
type FacetsResponse struct {
	Facets filter.FacetSet `json:"facets"`
	Type   string          `json:"type"`
}

// ListingResponse wraps a single listing.
type ListingResponse struct {
	Listing ListingData `json:"listing"`
}

// Browse handles GET /api/v1/listings/:type.
// Every query parameter named by the page's filter profile is a selection;
// other parameters are ignored.
func (h *ListingHandler) Browse(c *gin.Context) {
	listingType, ok := bindListingType(c)
	if !ok {
		return
	}

	sel := h.selectionFromQuery(c, listingType)

	result, err := h.service.Browse(c.Request.Context(), listingType, sel)
	if err != nil {
		respondServiceError(c, err, "Failed to load listings")
		return
	}

	listings := make([]ListingData, 0, len(result.Listings))
	for i := range result.Listings {
		listings = append(listings, h.toDTO(&result.Listings[i]))
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Listings browsed", map[string]interface{}{
			"listing_type": listingType,
			"filters":      len(sel),
			"matched":      len(listings),
		})
	}

	c.JSON(http.StatusOK, BrowseResponse{
		Facets:    result.Facets,
		Selection: sel,
		Listings:  listings,
		Count:     len(listings),
		Total:     result.Total,
	})
}

// Facets handles GET /api/v1/listings/:type/facets.
func (h *ListingHandler) Facets(c *gin.Context) {
	listingType, ok := bindListingType(c)
	if !ok {
		return
	}

	facets, err := h.service.GetFacets(c.Request.Context(), listingType)
	if err != nil {
		respondServiceError(c, err, "Failed to load filter options")
		return
	}

	c.JSON(http.StatusOK, FacetsResponse{
		Facets: facets,
		Type:   string(listingType),
	})
}

// Get handles GET /api/v1/listings/:type/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	listingType, id, ok := bindListingItem(c)
	if !ok {
		return
	}

	listing, err := h.service.GetListing(c.Request.Context(), listingType, id)
	if err != nil {
		respondServiceError(c, err, "Failed to load listing")
		return
	}

	c.JSON(http.StatusOK, ListingResponse{Listing: h.toDTO(listing)})
}

// selectionFromQuery keeps the non-empty query values whose keys the
// profile knows. Repeated keys use the first value.
func (h *ListingHandler) selectionFromQuery(c *gin.Context, listingType models.ListingType) filter.Selection {
	sel := filter.Selection{}
	profile, ok := h.profiles.Lookup(listingType)
	if !ok {
		return sel
	}
	for _, key := range profile.Keys() {
		if value := c.Query(key); value != "" {
			sel[key] = value
		}
	}
	return sel
}

func (h *ListingHandler) toDTO(l *models.Listing) ListingData {
	return toListingData(l, h.media)
}

func toListingData(l *models.Listing, resolver *media.Resolver) ListingData {
	attributes := l.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	return ListingData{
		Attributes: attributes,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
		ID:         l.ID,
		Type:       string(l.Type),
		Images:     resolver.ResolveAll(l.Images),
	}
}

// bindListingType validates the :type segment. Unknown types answer 404.
func bindListingType(c *gin.Context) (models.ListingType, bool) {
	var path listingPath
	if err := c.ShouldBindUri(&path); err != nil {
		apierrors.NotFound(c, "Unknown listing type")
		return "", false
	}
	return models.ListingType(path.Type), true
}

// bindListingItem validates the :type and :id segments.
func bindListingItem(c *gin.Context) (models.ListingType, string, bool) {
	if _, ok := bindListingType(c); !ok {
		return "", "", false
	}

	var path listingItemPath
	if err := c.ShouldBindUri(&path); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return "", "", false
		}
		apierrors.BadRequest(c, "Invalid listing path", nil)
		return "", "", false
	}
	return models.ListingType(path.Type), path.ID, true
}

// respondServiceError maps service errors onto API error responses.
func respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrUnknownListingType):
		apierrors.NotFound(c, "Unknown listing type")
	case errors.Is(err, services.ErrListingNotFound):
		apierrors.NotFound(c, "Listing not found")
	case errors.Is(err, services.ErrInvalidListingID):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidDraft):
		apierrors.InvalidDraft(c, err)
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.ServiceUnavailable(c, "Listing store did not respond in time", err)
	default:
		apierrors.InternalServerError(c, message, err)
	}
}
