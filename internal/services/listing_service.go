package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stwalsh4118/estates/internal/filter"
	"github.com/stwalsh4118/estates/internal/logger"
	"github.com/stwalsh4118/estates/internal/models"
	"github.com/stwalsh4118/estates/internal/repository"
)

// Service-level errors
var (
	ErrUnknownListingType = errors.New("unknown listing type")
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingID   = errors.New("invalid listing id")
	ErrInvalidDraft       = errors.New("invalid listing draft")
)

// BrowseResult is one listing page: the matching records plus the facet
// options derived from the full collection.
type BrowseResult struct {
	Facets   filter.FacetSet
	Listings []models.Listing
	Total    int // size of the unfiltered collection
}

// ListingService defines the interface for listing business logic operations.
type ListingService interface {
	// Browse loads every listing of the type, derives its facets and returns
	// the records matching sel.
	// Returns ErrUnknownListingType when no filter profile exists for the type.
	Browse(ctx context.Context, listingType models.ListingType, sel filter.Selection) (*BrowseResult, error)

	// GetFacets returns the facet options for the full collection of the type.
	GetFacets(ctx context.Context, listingType models.ListingType) (filter.FacetSet, error)

	// GetListing returns a single listing.
	// Returns ErrInvalidListingID or ErrListingNotFound.
	GetListing(ctx context.Context, listingType models.ListingType, id string) (*models.Listing, error)

	// CreateListing validates and stores a new listing built from draft.
	// Returns ErrInvalidDraft when the draft fails validation.
	CreateListing(ctx context.Context, draft models.Draft) (*models.Listing, error)

	// EditListing applies draft actions to a stored listing and saves it.
	// Returns ErrInvalidDraft when an action or the result is invalid.
	EditListing(ctx context.Context, listingType models.ListingType, id string, actions []models.DraftAction) (*models.Listing, error)

	// DeleteListing removes a listing.
	DeleteListing(ctx context.Context, listingType models.ListingType, id string) error
}

// listingService is the concrete implementation of ListingService.
type listingService struct {
	repo     repository.ListingRepository
	profiles filter.Profiles
	log      *logger.Logger
}

// NewListingService creates a new instance of ListingService.
func NewListingService(repo repository.ListingRepository, profiles filter.Profiles, log *logger.Logger) ListingService {
	return &listingService{
		repo:     repo,
		profiles: profiles,
		log:      log,
	}
}

func (s *listingService) profile(listingType models.ListingType) (filter.Profile, error) {
	profile, ok := s.profiles.Lookup(listingType)
	if !ok {
		s.log.Warn("Unknown listing type requested", map[string]interface{}{
			"listing_type": listingType,
		})
		return filter.Profile{}, fmt.Errorf("%w: %q", ErrUnknownListingType, listingType)
	}
	return profile, nil
}

// fetch loads the collection and reports records whose range fields hold
// non-text values; those records stay in the collection.
func (s *listingService) fetch(ctx context.Context, listingType models.ListingType, profile filter.Profile) ([]models.Listing, error) {
	listings, err := s.repo.ListByType(ctx, listingType)
	if err != nil {
		s.log.Error("Failed to load listings", err, map[string]interface{}{
			"listing_type": listingType,
		})
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	for _, issue := range filter.ValidateRecords(listings, profile) {
		s.log.Warn("Listing field is not text", map[string]interface{}{
			"listing_type": listingType,
			"listing_id":   issue.RecordID,
			"field":        issue.Field,
			"error":        issue.Err.Error(),
		})
	}

	return listings, nil
}

// Browse implements ListingService.
func (s *listingService) Browse(ctx context.Context, listingType models.ListingType, sel filter.Selection) (*BrowseResult, error) {
	profile, err := s.profile(listingType)
	if err != nil {
		return nil, err
	}

	listings, err := s.fetch(ctx, listingType, profile)
	if err != nil {
		return nil, err
	}

	result := &BrowseResult{
		Facets:   filter.DeriveFacets(listings, profile),
		Listings: listings,
		Total:    len(listings),
	}
	// Nothing selected: the page shows the whole collection
	if sel.Active() {
		result.Listings = filter.ApplyFilters(listings, sel, profile)
	}

	s.log.Debug("Listings filtered", map[string]interface{}{
		"listing_type": listingType,
		"total":        result.Total,
		"matched":      len(result.Listings),
		"selection":    map[string]string(sel),
	})

	return result, nil
}

// GetFacets implements ListingService.
func (s *listingService) GetFacets(ctx context.Context, listingType models.ListingType) (filter.FacetSet, error) {
	profile, err := s.profile(listingType)
	if err != nil {
		return filter.FacetSet{}, err
	}

	listings, err := s.fetch(ctx, listingType, profile)
	if err != nil {
		return filter.FacetSet{}, err
	}

	return filter.DeriveFacets(listings, profile), nil
}

// GetListing implements ListingService.
func (s *listingService) GetListing(ctx context.Context, listingType models.ListingType, id string) (*models.Listing, error) {
	if _, err := s.profile(listingType); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	listing, err := s.repo.FindByID(ctx, listingType, id)
	if err != nil {
		s.log.Error("Failed to load listing", err, map[string]interface{}{
			"listing_type": listingType,
			"listing_id":   id,
		})
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	// Repository returns nil, nil when nothing matched - transform to domain error
	if listing == nil {
		return nil, ErrListingNotFound
	}

	return listing, nil
}

// CreateListing implements ListingService.
func (s *listingService) CreateListing(ctx context.Context, draft models.Draft) (*models.Listing, error) {
	if _, err := s.profile(draft.Type); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	listing := &models.Listing{ID: uuid.New().String()}
	draft.ApplyTo(listing)

	if err := s.repo.Create(ctx, listing); err != nil {
		s.log.Error("Failed to create listing", err, map[string]interface{}{
			"listing_type": draft.Type,
		})
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.log.Info("Listing created", map[string]interface{}{
		"listing_type": listing.Type,
		"listing_id":   listing.ID,
	})

	return listing, nil
}

// EditListing implements ListingService.
func (s *listingService) EditListing(ctx context.Context, listingType models.ListingType, id string, actions []models.DraftAction) (*models.Listing, error) {
	listing, err := s.GetListing(ctx, listingType, id)
	if err != nil {
		return nil, err
	}

	draft, err := models.ReduceDraftAll(models.DraftFromListing(listing), actions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	draft.ApplyTo(listing)

	updated, err := s.repo.Update(ctx, listing)
	if err != nil {
		s.log.Error("Failed to update listing", err, map[string]interface{}{
			"listing_type": listingType,
			"listing_id":   id,
		})
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	// Deleted between load and save
	if !updated {
		return nil, ErrListingNotFound
	}

	s.log.Info("Listing updated", map[string]interface{}{
		"listing_type": listingType,
		"listing_id":   id,
		"actions":      len(actions),
	})

	return listing, nil
}

// DeleteListing implements ListingService.
func (s *listingService) DeleteListing(ctx context.Context, listingType models.ListingType, id string) error {
	if _, err := s.profile(listingType); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, listingType, id)
	if err != nil {
		s.log.Error("Failed to delete listing", err, map[string]interface{}{
			"listing_type": listingType,
			"listing_id":   id,
		})
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if !deleted {
		return ErrListingNotFound
	}

	s.log.Info("Listing deleted", map[string]interface{}{
		"listing_type": listingType,
		"listing_id":   id,
	})
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidListingID, id)
	}
	return nil
}
