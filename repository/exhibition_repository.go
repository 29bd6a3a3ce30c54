package repository

import (
	"context"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"gorm.io/gorm"
)

// ExhibitionRepositoryImpl implements ExhibitionRepository interface
type ExhibitionRepositoryImpl struct {
	*BaseRepository[models.Exhibition, models.ExhibitionFilter]
}

// NewExhibitionRepository creates a new exhibition repository
func NewExhibitionRepository(db *gorm.DB) ExhibitionRepository {
	return &ExhibitionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Exhibition, models.ExhibitionFilter](db),
	}
}

// ByUUID retrieves an exhibition by UUID
func (r *ExhibitionRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Exhibition, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.ExhibitionFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// SetApproval records the review decision for an exhibition
func (r *ExhibitionRepositoryImpl) SetApproval(ctx context.Context, exhibitionID uint, approved bool) error {
	db := r.getDB(ctx)
	return db.Model(&models.Exhibition{}).
		Where("id = ?", exhibitionID).
		Updates(map[string]any{
			"is_approved": approved,
			"updated_at":  utils.UTCNow(),
		}).Error
}

// applyFilter applies filter criteria to a GORM query
func (r *ExhibitionRepositoryImpl) applyFilter(query *gorm.DB, filter models.ExhibitionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CuratorID != nil {
		query = query.Where("curator_id = ?", *filter.CuratorID)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
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

// ByFilter retrieves exhibitions based on filter criteria
func (r *ExhibitionRepositoryImpl) ByFilter(ctx context.Context, filter models.ExhibitionFilter, orderBy string, limit, offset int) ([]*models.Exhibition, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Exhibition{})

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

	var rows []*models.Exhibition
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of exhibitions matching filter
func (r *ExhibitionRepositoryImpl) Count(ctx context.Context, filter models.ExhibitionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Exhibition{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any exhibition matches the filter
func (r *ExhibitionRepositoryImpl) Exists(ctx context.Context, filter models.ExhibitionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
