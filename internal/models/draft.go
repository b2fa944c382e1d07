package models

import (
	"errors"
	"fmt"
	"strings"
)

// DraftOp names an edit that can be applied to a Draft.
type DraftOp string

// Supported draft operations.
const (
	DraftOpSet         DraftOp = "set"
	DraftOpClear       DraftOp = "clear"
	DraftOpAddImage    DraftOp = "add_image"
	DraftOpRemoveImage DraftOp = "remove_image"
	DraftOpMoveImage   DraftOp = "move_image"
)

// Draft errors
var (
	ErrUnknownDraftOp    = errors.New("unknown draft operation")
	ErrDraftFieldMissing = errors.New("draft field is required")
	ErrImageIndex        = errors.New("image index out of range")
)

// Draft is the editable form of a listing used by the admin screens.
// A Draft is a value: ReduceDraft returns a new Draft and leaves its input untouched.
type Draft struct {
	Attributes map[string]any `json:"attributes"`
	Type       ListingType    `json:"type"`
	Images     []string       `json:"images"`
}

// DraftAction is a single edit to a Draft.
// Field is used by set/clear, Value by set/add_image, Index by
// remove_image/move_image (Target is the destination index for move_image).
type DraftAction struct {
	Value  any     `json:"value,omitempty"`
	Op     DraftOp `json:"op"`
	Field  string  `json:"field,omitempty"`
	Index  int     `json:"index,omitempty"`
	Target int     `json:"target,omitempty"`
}

// NewDraft returns an empty draft for the given listing type.
func NewDraft(t ListingType) Draft {
	return Draft{
		Type:       t,
		Attributes: map[string]any{},
		Images:     []string{},
	}
}

// DraftFromListing copies a stored listing into an editable draft.
func DraftFromListing(l *Listing) Draft {
	d := NewDraft(l.Type)
	for k, v := range l.Attributes {
		d.Attributes[k] = v
	}
	d.Images = append(d.Images, l.Images...)
	return d
}

// clone returns a deep-enough copy of d: attribute map and image slice are new.
func (d Draft) clone() Draft {
	out := Draft{
		Type:       d.Type,
		Attributes: make(map[string]any, len(d.Attributes)),
		Images:     make([]string, len(d.Images)),
	}
	for k, v := range d.Attributes {
		out.Attributes[k] = v
	}
	copy(out.Images, d.Images)
	return out
}

// ReduceDraft applies a single action to d and returns the resulting draft.
func ReduceDraft(d Draft, a DraftAction) (Draft, error) {
	next := d.clone()

	switch a.Op {
	case DraftOpSet:
		if a.Field == "" {
			return d, fmt.Errorf("%w: set requires a field", ErrDraftFieldMissing)
		}
		next.Attributes[a.Field] = a.Value

	case DraftOpClear:
		if a.Field == "" {
			return d, fmt.Errorf("%w: clear requires a field", ErrDraftFieldMissing)
		}
		delete(next.Attributes, a.Field)

	case DraftOpAddImage:
		path, ok := a.Value.(string)
		if !ok || strings.TrimSpace(path) == "" {
			return d, fmt.Errorf("%w: add_image requires a non-empty path", ErrDraftFieldMissing)
		}
		next.Images = append(next.Images, strings.TrimSpace(path))

	case DraftOpRemoveImage:
		if a.Index < 0 || a.Index >= len(next.Images) {
			return d, fmt.Errorf("%w: %d (have %d images)", ErrImageIndex, a.Index, len(next.Images))
		}
		next.Images = append(next.Images[:a.Index], next.Images[a.Index+1:]...)

	case DraftOpMoveImage:
		n := len(next.Images)
		if a.Index < 0 || a.Index >= n || a.Target < 0 || a.Target >= n {
			return d, fmt.Errorf("%w: move %d -> %d (have %d images)", ErrImageIndex, a.Index, a.Target, n)
		}
		img := next.Images[a.Index]
		next.Images = append(next.Images[:a.Index], next.Images[a.Index+1:]...)
		next.Images = append(next.Images[:a.Target], append([]string{img}, next.Images[a.Target:]...)...)

	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownDraftOp, a.Op)
	}

	return next, nil
}

// ReduceDraftAll applies actions in order, stopping at the first failure.
func ReduceDraftAll(d Draft, actions []DraftAction) (Draft, error) {
	for i, a := range actions {
		next, err := ReduceDraft(d, a)
		if err != nil {
			return d, fmt.Errorf("action %d: %w", i, err)
		}
		d = next
	}
	return d, nil
}

// Validate checks the minimum a listing needs before it can be saved.
func (d Draft) Validate() error {
	if _, err := ParseListingType(string(d.Type)); err != nil {
		return err
	}
	name, _ := d.Attributes["name"].(string)
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name", ErrDraftFieldMissing)
	}
	return nil
}

// ApplyTo copies the draft's attributes and images onto l.
func (d Draft) ApplyTo(l *Listing) {
	c := d.clone()
	l.Type = c.Type
	l.Attributes = c.Attributes
	l.Images = c.Images
}
