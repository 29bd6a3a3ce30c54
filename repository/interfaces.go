// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/chitrakalakar/backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ProfileRepository defines operations for marketplace profiles
type ProfileRepository interface {
	Repository[models.Profile, models.ProfileFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Profile, error)
	ByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*models.Profile, error)
	ListCandidates(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error)
	UpdateFields(ctx context.Context, profileID uint, fields map[string]any) error
}

// ArtworkRepository defines operations for artworks
type ArtworkRepository interface {
	Repository[models.Artwork, models.ArtworkFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Artwork, error)
	TopByViews(ctx context.Context, artistID uint, limit int) ([]*models.Artwork, error)
	IncrementViews(ctx context.Context, artworkID uint) error
	SetApproval(ctx context.Context, artworkID uint, approved bool) error
}

// EnquiryRepository defines operations for art-class enquiries
type EnquiryRepository interface {
	Repository[models.Enquiry, models.EnquiryFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Enquiry, error)
	ByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Enquiry, error)
	CountCreatedSince(ctx context.Context, requesterID uint, since time.Time) (int64, error)
	MarkExpired(ctx context.Context, enquiryID uint) error
	// AppendRevealedContact appends artistID to revealed_artist_ids only when the
	// stored set still has exactly expectedRevealed entries. Returns false when the
	// guard fails, i.e. a concurrent reveal landed first.
	AppendRevealedContact(ctx context.Context, enquiryID, artistID uint, expectedRevealed int) (bool, error)
}

// ExhibitionRepository defines operations for exhibitions
type ExhibitionRepository interface {
	Repository[models.Exhibition, models.ExhibitionFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Exhibition, error)
	SetApproval(ctx context.Context, exhibitionID uint, approved bool) error
}
