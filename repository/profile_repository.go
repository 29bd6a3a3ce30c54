package repository

import (
	"context"
	"errors"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"gorm.io/gorm"
)

// ProfileRepositoryImpl implements ProfileRepository interface
type ProfileRepositoryImpl struct {
	*BaseRepository[models.Profile, models.ProfileFilter]
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Profile, models.ProfileFilter](db),
	}
}

// ByUUID retrieves a profile by its identity-provider subject
func (r *ProfileRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Profile, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.ProfileFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByEmail retrieves a profile by email
func (r *ProfileRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Profile, error) {
	db := r.getDB(ctx)
	var row models.Profile
	if err := db.Where("email = ?", email).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// FindByIDs retrieves profiles for the given IDs
func (r *ProfileRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db := r.getDB(ctx)
	var rows []*models.Profile
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCandidates lists profiles matching the coarse candidate filter ordered by
// ascending teaching rate. Facet filtering and ranking happen in the matcher.
func (r *ProfileRepositoryImpl) ListCandidates(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	return r.ByFilter(ctx, filter, "teaching_rate ASC, id ASC", 0, 0)
}

// UpdateFields applies a partial update to a profile row
func (r *ProfileRepositoryImpl) UpdateFields(ctx context.Context, profileID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db := r.getDB(ctx)
	fields["updated_at"] = utils.UTCNow()
	return db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(fields).Error
}

// applyFilter applies filter criteria to a GORM query
func (r *ProfileRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProfileFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.TeachingRateSet != nil {
		if *filter.TeachingRateSet {
			query = query.Where("teaching_rate IS NOT NULL")
		} else {
			query = query.Where("teaching_rate IS NULL")
		}
	}
	if filter.TeachesOnline != nil {
		query = query.Where("teaches_online = ?", *filter.TeachesOnline)
	}
	if filter.TeachesOffline != nil {
		query = query.Where("teaches_offline = ?", *filter.TeachesOffline)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves profiles based on filter criteria
func (r *ProfileRepositoryImpl) ByFilter(ctx context.Context, filter models.ProfileFilter, orderBy string, limit, offset int) ([]*models.Profile, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Profile{})

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

	var rows []*models.Profile
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of profiles matching filter
func (r *ProfileRepositoryImpl) Count(ctx context.Context, filter models.ProfileFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Profile{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any profile matches the filter
func (r *ProfileRepositoryImpl) Exists(ctx context.Context, filter models.ProfileFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
