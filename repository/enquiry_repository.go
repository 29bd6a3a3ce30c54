package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"gorm.io/gorm"
)

// EnquiryRepositoryImpl implements EnquiryRepository interface
type EnquiryRepositoryImpl struct {
	*BaseRepository[models.Enquiry, models.EnquiryFilter]
}

// NewEnquiryRepository creates a new enquiry repository
func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &EnquiryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Enquiry, models.EnquiryFilter](db),
	}
}

// ByUUID retrieves an enquiry by UUID
func (r *EnquiryRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Enquiry, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.EnquiryFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByIDAndRequester retrieves an enquiry only when it belongs to the requester
func (r *EnquiryRepositoryImpl) ByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Enquiry, error) {
	db := r.getDB(ctx)
	var row models.Enquiry
	if err := db.Where("id = ? AND requester_id = ?", id, requesterID).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CountCreatedSince counts the requester's enquiries created at or after the cutoff.
// The lower bound is inclusive: an enquiry created exactly at the cutoff counts.
func (r *EnquiryRepositoryImpl) CountCreatedSince(ctx context.Context, requesterID uint, since time.Time) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := db.Model(&models.Enquiry{}).
		Where("requester_id = ? AND created_at >= ?", requesterID, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkExpired transitions an enquiry to the terminal expired status
func (r *EnquiryRepositoryImpl) MarkExpired(ctx context.Context, enquiryID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.Enquiry{}).
		Where("id = ?", enquiryID).
		Updates(map[string]any{
			"status":     models.EnquiryStatusExpired,
			"updated_at": utils.UTCNow(),
		}).Error
}

// AppendRevealedContact appends artistID to revealed_artist_ids guarded by the
// expected current cardinality, so two concurrent reveals cannot both land.
func (r *EnquiryRepositoryImpl) AppendRevealedContact(ctx context.Context, enquiryID, artistID uint, expectedRevealed int) (bool, error) {
	db := r.getDB(ctx)
	res := db.Model(&models.Enquiry{}).
		Where("id = ? AND COALESCE(array_length(revealed_artist_ids, 1), 0) = ?", enquiryID, expectedRevealed).
		Updates(map[string]any{
			"revealed_artist_ids": gorm.Expr("array_append(revealed_artist_ids, ?)", int64(artistID)),
			"updated_at":          utils.UTCNow(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *EnquiryRepositoryImpl) applyFilter(query *gorm.DB, filter models.EnquiryFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves enquiries based on filter criteria
func (r *EnquiryRepositoryImpl) ByFilter(ctx context.Context, filter models.EnquiryFilter, orderBy string, limit, offset int) ([]*models.Enquiry, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Enquiry{})

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

	var rows []*models.Enquiry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of enquiries matching filter
func (r *EnquiryRepositoryImpl) Count(ctx context.Context, filter models.EnquiryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Enquiry{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any enquiry matches the filter
func (r *EnquiryRepositoryImpl) Exists(ctx context.Context, filter models.EnquiryFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
