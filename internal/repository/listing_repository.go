package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/estates/internal/database"
	"github.com/stwalsh4118/estates/internal/models"
)

// ListingRepository defines the interface for listing data access operations.
type ListingRepository interface {
	// ListByType returns every listing of the given type, newest first.
	// Returns an empty slice if there are none (not an error).
	ListByType(ctx context.Context, listingType models.ListingType) ([]models.Listing, error)

	// FindByID returns the listing with the given type and id.
	// Returns nil, nil if no listing is found (not an error).
	FindByID(ctx context.Context, listingType models.ListingType, id string) (*models.Listing, error)

	// Create inserts a new listing and fills in its timestamps.
	Create(ctx context.Context, listing *models.Listing) error

	// Update replaces the attributes and images of an existing listing.
	// Returns false if no listing matched.
	Update(ctx context.Context, listing *models.Listing) (bool, error)

	// Delete removes a listing. Returns false if no listing matched.
	Delete(ctx context.Context, listingType models.ListingType, id string) (bool, error)
}

// listingRepository is the pgx implementation of ListingRepository.
type listingRepository struct {
	db *database.Database
}

// NewListingRepository creates a new instance of ListingRepository.
func NewListingRepository(db *database.Database) ListingRepository {
	return &listingRepository{
		db: db,
	}
}

const listingColumns = `id::text, listing_type, attributes, images, created_at, updated_at`

func scanListing(row pgx.Row) (models.Listing, error) {
	var l models.Listing
	var listingType string

	err := row.Scan(
		&l.ID,
		&listingType,
		&l.Attributes,
		&l.Images,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}

	l.Type = models.ListingType(listingType)
	if l.Attributes == nil {
		l.Attributes = map[string]any{}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	return l, nil
}

// ListByType loads the full collection for one listing type. No filtering
// happens here; the filter package works on the whole collection.
func (r *listingRepository) ListByType(ctx context.Context, listingType models.ListingType) ([]models.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE listing_type = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Pool.Query(ctx, query, string(listingType))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s listings: %w", listingType, err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing rows: %w", err)
	}

	return listings, nil
}

// FindByID loads a single listing.
func (r *listingRepository) FindByID(ctx context.Context, listingType models.ListingType, id string) (*models.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE listing_type = $1 AND id = $2::uuid
	`

	l, err := scanListing(r.db.Pool.QueryRow(ctx, query, string(listingType), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query listing %s: %w", id, err)
	}

	return &l, nil
}

// Create inserts listing. The caller assigns the ID.
func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, listing_type, attributes, images, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		listing.ID,
		string(listing.Type),
		nonNilAttributes(listing.Attributes),
		nonNilImages(listing.Images),
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", listing.ID, err)
	}

	return nil
}

// Update writes attributes and images back and refreshes updated_at.
func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) (bool, error) {
	query := `
		UPDATE listings
		SET attributes = $3, images = $4, updated_at = NOW()
		WHERE listing_type = $1 AND id = $2::uuid
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		string(listing.Type),
		listing.ID,
		nonNilAttributes(listing.Attributes),
		nonNilImages(listing.Images),
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update listing %s: %w", listing.ID, err)
	}

	return true, nil
}

// Delete removes a listing row.
func (r *listingRepository) Delete(ctx context.Context, listingType models.ListingType, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM listings WHERE listing_type = $1 AND id = $2::uuid`,
		string(listingType), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func nonNilAttributes(attrs map[string]any) map[string]any {
	if attrs == nil {
		return map[string]any{}
	}
	return attrs
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
