package handlers

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/estates/internal/models"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the listing-specific tags to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = v.RegisterValidation("listing_type", func(fl validator.FieldLevel) bool {
			_, err := models.ParseListingType(fl.Field().String())
			return err == nil
		})
	})
	return registerErr
}

// listingPath binds the :type segment.
type listingPath struct {
	Type string `uri:"type" binding:"required,listing_type"`
}

// listingItemPath binds the :type and :id segments.
type listingItemPath struct {
	Type string `uri:"type" binding:"required,listing_type"`
	ID   string `uri:"id" binding:"required,uuid"`
}
