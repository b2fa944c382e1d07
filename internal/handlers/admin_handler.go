package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/estates/internal/errors"
	"github.com/stwalsh4118/estates/internal/media"
	"github.com/stwalsh4118/estates/internal/middleware"
	"github.com/stwalsh4118/estates/internal/models"
	"github.com/stwalsh4118/estates/internal/services"
)

// AdminHandler serves the listing management screens.
type AdminHandler struct {
	service services.ListingService
	media   *media.Resolver
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(service services.ListingService, resolver *media.Resolver) *AdminHandler {
	return &AdminHandler{
		service: service,
		media:   resolver,
	}
}

// CreateListingRequest is the body of POST /api/v1/admin/listings/:type.
type CreateListingRequest struct {
	Attributes map[string]any `json:"attributes" binding:"required"`
	Images     []string       `json:"images" binding:"omitempty,dive,required"`
}

// DraftActionRequest is one edit in an EditListingRequest.
type DraftActionRequest struct {
	Value  any    `json:"value"`
	Op     string `json:"op" binding:"required,oneof=set clear add_image remove_image move_image"`
	Field  string `json:"field"`
	Index  int    `json:"index" binding:"gte=0"`
	Target int    `json:"target" binding:"gte=0"`
}

// EditListingRequest is the body of PATCH /api/v1/admin/listings/:type/:id.
type EditListingRequest struct {
	Actions []DraftActionRequest `json:"actions" binding:"required,min=1,dive"`
}

// Create handles POST /api/v1/admin/listings/:type.
// The body is replayed onto an empty draft as set and add_image actions, so
// it goes through the same checks as an edit.
func (h *AdminHandler) Create(c *gin.Context) {
	listingType, ok := bindListingType(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := models.ReduceDraftAll(models.NewDraft(listingType), createActions(req))
	if err != nil {
		apierrors.InvalidDraft(c, err)
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), draft)
	if err != nil {
		respondServiceError(c, err, "Failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, ListingResponse{Listing: h.toDTO(listing)})
}

// Edit handles PATCH /api/v1/admin/listings/:type/:id.
func (h *AdminHandler) Edit(c *gin.Context) {
	listingType, id, ok := bindListingItem(c)
	if !ok {
		return
	}

	var req EditListingRequest
	if !bindJSON(c, &req) {
		return
	}

	actions := make([]models.DraftAction, 0, len(req.Actions))
	for _, a := range req.Actions {
		actions = append(actions, models.DraftAction{
			Value:  a.Value,
			Op:     models.DraftOp(a.Op),
			Field:  a.Field,
			Index:  a.Index,
			Target: a.Target,
		})
	}

	listing, err := h.service.EditListing(c.Request.Context(), listingType, id, actions)
	if err != nil {
		respondServiceError(c, err, "Failed to update listing")
		return
	}

	c.JSON(http.StatusOK, ListingResponse{Listing: h.toDTO(listing)})
}

// Delete handles DELETE /api/v1/admin/listings/:type/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	listingType, id, ok := bindListingItem(c)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), listingType, id); err != nil {
		respondServiceError(c, err, "Failed to delete listing")
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Listing removed by admin", map[string]interface{}{
			"listing_type": listingType,
			"listing_id":   id,
		})
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) toDTO(l *models.Listing) ListingData {
	return toListingData(l, h.media)
}

// createActions orders attribute keys so the replay is deterministic.
func createActions(req CreateListingRequest) []models.DraftAction {
	keys := make([]string, 0, len(req.Attributes))
	for k := range req.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	actions := make([]models.DraftAction, 0, len(keys)+len(req.Images))
	for _, k := range keys {
		actions = append(actions, models.DraftAction{Op: models.DraftOpSet, Field: k, Value: req.Attributes[k]})
	}
	for _, img := range req.Images {
		actions = append(actions, models.DraftAction{Op: models.DraftOpAddImage, Value: img})
	}
	return actions
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body", map[string]interface{}{"reason": err.Error()})
		return false
	}
	return true
}
