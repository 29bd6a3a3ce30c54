package businessflow

import (
	"context"
	"fmt"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/repository"
	"github.com/chitrakalakar/backend/utils"
	"github.com/lib/pq"
)

// ProfileFlow defines operations for account profiles
type ProfileFlow interface {
	GetOrCreateBySubject(ctx context.Context, subject, email, name string) (*models.Profile, error)
	GetProfile(ctx context.Context, profileID uint) (*dto.GetProfileResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest, profileID uint, metadata *ClientMetadata) (*dto.UpdateProfileResponse, error)
	ApplyAsArtist(ctx context.Context, req *dto.ApplyAsArtistRequest, profileID uint, metadata *ClientMetadata) (*dto.ApplyAsArtistResponse, error)
	ListArtists(ctx context.Context, page, pageSize uint) (*dto.ListArtistsResponse, error)
}

// ProfileFlowImpl implements ProfileFlow
type ProfileFlowImpl struct {
	profileRepo repository.ProfileRepository
}

func NewProfileFlow(profileRepo repository.ProfileRepository) ProfileFlow {
	return &ProfileFlowImpl{profileRepo: profileRepo}
}

// GetOrCreateBySubject resolves the identity-provider subject to a local
// profile, provisioning a plain user account on first sight.
func (f *ProfileFlowImpl) GetOrCreateBySubject(ctx context.Context, subject, email, name string) (*models.Profile, error) {
	profile, err := f.profileRepo.ByUUID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	parsed, err := utils.ParseUUID(subject)
	if err != nil {
		return nil, fmt.Errorf("malformed subject: %w", err)
	}
	if name == "" {
		name = email
	}
	profile = &models.Profile{
		UUID:       parsed,
		Role:       models.RoleUser,
		Name:       name,
		Email:      email,
		Categories: pq.StringArray{},
		IsApproved: utils.ToPtr(false),
		IsActive:   utils.ToPtr(true),
	}
	if err := f.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}
	return profile, nil
}

func (f *ProfileFlowImpl) GetProfile(ctx context.Context, profileID uint) (*dto.GetProfileResponse, error) {
	profile, err := getProfile(ctx, f.profileRepo, profileID)
	if err != nil {
		return nil, err
	}

	return &dto.GetProfileResponse{
		Message: "Profile retrieved successfully",
		Profile: ToProfileDTO(*profile),
	}, nil
}

func (f *ProfileFlowImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest, profileID uint, metadata *ClientMetadata) (*dto.UpdateProfileResponse, error) {
	profile, err := getProfile(ctx, f.profileRepo, profileID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}

	// Teaching fields only make sense for artists
	if profile.Role == models.RoleArtist {
		if req.Categories != nil {
			fields["categories"] = pq.StringArray(req.Categories)
		}
		if req.TeachingRate != nil {
			fields["teaching_rate"] = *req.TeachingRate
		}
		if req.TeachesOnline != nil {
			fields["teaches_online"] = *req.TeachesOnline
		}
		if req.TeachesOffline != nil {
			fields["teaches_offline"] = *req.TeachesOffline
		}
	}

	if len(fields) > 0 {
		if err := f.profileRepo.UpdateFields(ctx, profile.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		profile, err = f.profileRepo.ByID(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload profile: %w", err)
		}
		if profile == nil {
			return nil, ErrProfileNotFound
		}
	}

	return &dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		Profile: ToProfileDTO(*profile),
	}, nil
}

// ApplyAsArtist turns a plain user into a pending artist. The profile keeps
// is_approved=false until a reviewer decides; enquiries never match pending artists.
func (f *ProfileFlowImpl) ApplyAsArtist(ctx context.Context, req *dto.ApplyAsArtistRequest, profileID uint, metadata *ClientMetadata) (*dto.ApplyAsArtistResponse, error) {
	profile, err := getProfile(ctx, f.profileRepo, profileID)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleUser {
		return nil, ErrRoleNotAllowed
	}

	fields := map[string]any{
		"role":            models.RoleArtist,
		"phone":           req.Phone,
		"categories":      pq.StringArray(req.Categories),
		"teaches_online":  req.TeachesOnline,
		"teaches_offline": req.TeachesOffline,
		"is_approved":     false,
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.TeachingRate != nil {
		fields["teaching_rate"] = *req.TeachingRate
	}

	if err := f.profileRepo.UpdateFields(ctx, profile.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to apply as artist: %w", err)
	}
	profile, err = f.profileRepo.ByID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return &dto.ApplyAsArtistResponse{
		Message: "Artist application submitted for review",
		Profile: ToProfileDTO(*profile),
	}, nil
}

func (f *ProfileFlowImpl) ListArtists(ctx context.Context, page, pageSize uint) (*dto.ListArtistsResponse, error) {
	limit, offset, err := paginate(page, pageSize)
	if err != nil {
		return nil, err
	}

	filter := models.ProfileFilter{
		Role:       utils.ToPtr(models.RoleArtist),
		IsApproved: utils.ToPtr(true),
		IsActive:   utils.ToPtr(true),
	}

	rows, err := f.profileRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	total, err := f.profileRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count artists: %w", err)
	}

	items := make([]dto.ArtistPublicDTO, 0, len(rows))
	for _, artist := range rows {
		items = append(items, ToArtistPublicDTO(*artist))
	}

	return &dto.ListArtistsResponse{
		Message: "Artists retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}

// paginate converts 1-based page params to limit/offset; zero values take defaults
func paginate(page, pageSize uint) (limit, offset int, err error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return int(pageSize), int((page - 1) * pageSize), nil
}
