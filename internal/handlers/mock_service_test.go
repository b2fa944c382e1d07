package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/estates/internal/filter"
	"github.com/stwalsh4118/estates/internal/logger"
	"github.com/stwalsh4118/estates/internal/media"
	"github.com/stwalsh4118/estates/internal/middleware"
	"github.com/stwalsh4118/estates/internal/models"
	"github.com/stwalsh4118/estates/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// MockListingService is a mock implementation of services.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Browse(ctx context.Context, listingType models.ListingType, sel filter.Selection) (*services.BrowseResult, error) {
	args := m.Called(ctx, listingType, sel)
	result, _ := args.Get(0).(*services.BrowseResult)
	return result, args.Error(1)
}

func (m *MockListingService) GetFacets(ctx context.Context, listingType models.ListingType) (filter.FacetSet, error) {
	args := m.Called(ctx, listingType)
	facets, _ := args.Get(0).(filter.FacetSet)
	return facets, args.Error(1)
}

func (m *MockListingService) GetListing(ctx context.Context, listingType models.ListingType, id string) (*models.Listing, error) {
	args := m.Called(ctx, listingType, id)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) CreateListing(ctx context.Context, draft models.Draft) (*models.Listing, error) {
	args := m.Called(ctx, draft)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) EditListing(ctx context.Context, listingType models.ListingType, id string, actions []models.DraftAction) (*models.Listing, error) {
	args := m.Called(ctx, listingType, id, actions)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) DeleteListing(ctx context.Context, listingType models.ListingType, id string) error {
	args := m.Called(ctx, listingType, id)
	return args.Error(0)
}

// setupAPIRouter wires every route against svc.
func setupAPIRouter(svc services.ListingService) *gin.Engine {
	resolver := media.NewResolver("https://cdn.example.com/media")
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Nop()))
	RegisterRoutes(router,
		NewHealthHandler(nil, "test"),
		NewListingHandler(svc, filter.DefaultProfiles(), resolver),
		NewAdminHandler(svc, resolver),
	)
	return router
}
