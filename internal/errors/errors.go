package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/estates/internal/middleware"
)

// Error codes returned in the "code" field of every error body.
const (
	ErrNotFound           = "NOT_FOUND"
	ErrBadRequest         = "BAD_REQUEST"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrValidation         = "VALIDATION_ERROR"
	ErrInvalidDraft       = "INVALID_DRAFT"
	ErrDatabaseConnection = "DATABASE_CONNECTION_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// requestFields returns the log fields shared by every error response.
func requestFields(c *gin.Context, requestID string) map[string]interface{} {
	fields := map[string]interface{}{
		"request_id": requestID,
		"path":       c.Request.URL.Path,
	}
	if listingType := c.Param("type"); listingType != "" {
		fields["listing_type"] = listingType
	}
	return fields
}

func respond(c *gin.Context, status int, code, message string, details map[string]interface{}, requestID string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestID,
		},
	})
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := requestFields(c, requestID)
		fields["message"] = message
		log.Warn("Resource not found", fields)
	}

	respond(c, http.StatusNotFound, ErrNotFound, message, nil, requestID)
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := requestFields(c, requestID)
		fields["message"] = message
		if details != nil {
			fields["details"] = details
		}
		log.Warn("Bad request", fields)
	}

	respond(c, http.StatusBadRequest, ErrBadRequest, message, details, requestID)
}

// InvalidDraft returns a 422 response for an edit that parsed but could not
// be applied to the listing (bad image index, missing name, ...).
func InvalidDraft(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := requestFields(c, requestID)
		fields["reason"] = err.Error()
		log.Warn("Invalid listing draft", fields)
	}

	respond(c, http.StatusUnprocessableEntity, ErrInvalidDraft, "The listing edit could not be applied",
		map[string]interface{}{"reason": err.Error()}, requestID)
}

// InternalServerError returns a 500 Internal Server Error response.
// err is logged but never sent to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := requestFields(c, requestID)
		fields["message"] = message
		fields["method"] = c.Request.Method
		log.Error("Internal server error", err, fields)
	}

	respond(c, http.StatusInternalServerError, ErrInternalServer, message, nil, requestID)
}

// ServiceUnavailable returns a 503 response when the database cannot be reached.
func ServiceUnavailable(c *gin.Context, message string, err error) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Error("Service unavailable", err, requestFields(c, requestID))
	}

	respond(c, http.StatusServiceUnavailable, ErrDatabaseConnection, message, nil, requestID)
}

// ValidationError returns a 400 Bad Request error response with field-specific validation errors.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	requestID := middleware.GetRequestID(c)

	details := make(map[string]interface{}, len(validationErrors))
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}

	if log := middleware.GetLogger(c); log != nil {
		fields := requestFields(c, requestID)
		fields["fields"] = details
		log.Warn("Validation error", fields)
	}

	respond(c, http.StatusBadRequest, ErrValidation, "Validation failed for one or more fields", details, requestID)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "uuid":
		return "Must be a valid UUID"
	case "listing_type":
		return "Must be a known listing type"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
