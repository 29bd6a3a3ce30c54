package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/repository"
	"github.com/chitrakalakar/backend/utils"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "stats:platform"

// StatsFlow serves the public landing-page counters
type StatsFlow interface {
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
}

// StatsFlowImpl implements StatsFlow with a short-lived Redis cache.
// A nil redis client disables caching; every call hits the database.
type StatsFlowImpl struct {
	profileRepo    repository.ProfileRepository
	artworkRepo    repository.ArtworkRepository
	exhibitionRepo repository.ExhibitionRepository
	enquiryRepo    repository.EnquiryRepository
	redisClient    *redis.Client
}

func NewStatsFlow(profileRepo repository.ProfileRepository, artworkRepo repository.ArtworkRepository, exhibitionRepo repository.ExhibitionRepository, enquiryRepo repository.EnquiryRepository, redisClient *redis.Client) StatsFlow {
	return &StatsFlowImpl{
		profileRepo:    profileRepo,
		artworkRepo:    artworkRepo,
		exhibitionRepo: exhibitionRepo,
		enquiryRepo:    enquiryRepo,
		redisClient:    redisClient,
	}
}

func (f *StatsFlowImpl) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	if cached := f.readCache(ctx); cached != nil {
		return cached, nil
	}

	resp := &dto.PlatformStatsResponse{Message: "Stats retrieved successfully"}

	var err error
	resp.TotalArtists, err = f.profileRepo.Count(ctx, models.ProfileFilter{
		Role:       utils.ToPtr(models.RoleArtist),
		IsApproved: utils.ToPtr(true),
		IsActive:   utils.ToPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count artists: %w", err)
	}
	resp.TotalArtworks, err = f.artworkRepo.Count(ctx, models.ArtworkFilter{IsApproved: utils.ToPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to count artworks: %w", err)
	}
	resp.TotalExhibitions, err = f.exhibitionRepo.Count(ctx, models.ExhibitionFilter{IsApproved: utils.ToPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to count exhibitions: %w", err)
	}
	resp.TotalEnquiries, err = f.enquiryRepo.Count(ctx, models.EnquiryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count enquiries: %w", err)
	}

	f.writeCache(ctx, resp)
	return resp, nil
}

// readCache returns cached stats or nil; cache errors fall back to the database
func (f *StatsFlowImpl) readCache(ctx context.Context) *dto.PlatformStatsResponse {
	if f.redisClient == nil {
		return nil
	}
	raw, err := f.redisClient.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.PlatformStatsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

// writeCache stores stats best-effort
func (f *StatsFlowImpl) writeCache(ctx context.Context, resp *dto.PlatformStatsResponse) {
	if f.redisClient == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = f.redisClient.Set(ctx, statsCacheKey, raw, utils.StatsCacheTTL).Err()
}
