package repository

import (
	"context"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"gorm.io/gorm"
)

// ArtworkRepositoryImpl implements ArtworkRepository interface
type ArtworkRepositoryImpl struct {
	*BaseRepository[models.Artwork, models.ArtworkFilter]
}

// NewArtworkRepository creates a new artwork repository
func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &ArtworkRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Artwork, models.ArtworkFilter](db),
	}
}

// ByUUID retrieves an artwork by UUID
func (r *ArtworkRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Artwork, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.ArtworkFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// TopByViews returns the artist's approved artworks with the most views
func (r *ArtworkRepositoryImpl) TopByViews(ctx context.Context, artistID uint, limit int) ([]*models.Artwork, error) {
	approved := true
	return r.ByFilter(ctx, models.ArtworkFilter{ArtistID: &artistID, IsApproved: &approved}, "views DESC, id DESC", limit, 0)
}

// IncrementViews bumps the artwork view counter atomically
func (r *ArtworkRepositoryImpl) IncrementViews(ctx context.Context, artworkID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// SetApproval records the review decision for an artwork
func (r *ArtworkRepositoryImpl) SetApproval(ctx context.Context, artworkID uint, approved bool) error {
	db := r.getDB(ctx)
	return db.Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		Updates(map[string]any{
			"is_approved": approved,
			"updated_at":  utils.UTCNow(),
		}).Error
}

// applyFilter applies filter criteria to a GORM query
func (r *ArtworkRepositoryImpl) applyFilter(query *gorm.DB, filter models.ArtworkFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ArtistID != nil {
		query = query.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves artworks based on filter criteria
func (r *ArtworkRepositoryImpl) ByFilter(ctx context.Context, filter models.ArtworkFilter, orderBy string, limit, offset int) ([]*models.Artwork, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Artwork{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Artwork
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of artworks matching filter
func (r *ArtworkRepositoryImpl) Count(ctx context.Context, filter models.ArtworkFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Artwork{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any artwork matches the filter
func (r *ArtworkRepositoryImpl) Exists(ctx context.Context, filter models.ArtworkFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
