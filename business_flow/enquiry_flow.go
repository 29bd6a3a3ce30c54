package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/repository"
	"github.com/chitrakalakar/backend/utils"
)

// EnquiryFlow defines operations for art-class enquiries: submitting, reading
// matches, unlocking artist contacts, and listing the requester's history.
type EnquiryFlow interface {
	SubmitEnquiry(ctx context.Context, req *dto.SubmitEnquiryRequest, requesterID uint, metadata *ClientMetadata) (*dto.SubmitEnquiryResponse, error)
	GetMatches(ctx context.Context, enquiryID, requesterID uint) (*dto.GetMatchesResponse, error)
	RevealContact(ctx context.Context, enquiryID, artistID, requesterID uint) (*dto.RevealContactResponse, error)
	ListMyEnquiries(ctx context.Context, requesterID uint) (*dto.ListEnquiriesResponse, error)
}

// EnquiryFlowImpl implements EnquiryFlow
type EnquiryFlowImpl struct {
	profileRepo repository.ProfileRepository
	enquiryRepo repository.EnquiryRepository
	artworkRepo repository.ArtworkRepository
}

func NewEnquiryFlow(profileRepo repository.ProfileRepository, enquiryRepo repository.EnquiryRepository, artworkRepo repository.ArtworkRepository) EnquiryFlow {
	return &EnquiryFlowImpl{profileRepo: profileRepo, enquiryRepo: enquiryRepo, artworkRepo: artworkRepo}
}

// getProfile loads a profile and rejects missing or deactivated accounts
func getProfile(ctx context.Context, repo repository.ProfileRepository, profileID uint) (*models.Profile, error) {
	profile, err := repo.ByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if !utils.IsTrue(profile.IsActive) {
		return nil, ErrAccountInactive
	}
	return profile, nil
}

func (f *EnquiryFlowImpl) SubmitEnquiry(ctx context.Context, req *dto.SubmitEnquiryRequest, requesterID uint, metadata *ClientMetadata) (*dto.SubmitEnquiryResponse, error) {
	requester, err := getProfile(ctx, f.profileRepo, requesterID)
	if err != nil {
		return nil, err
	}

	if req.ClassType != models.ClassModeOnline && req.ClassType != models.ClassModeOffline {
		return nil, ErrInvalidClassType
	}
	// Location is an optional hint; offline enquiries without one match on
	// delivery mode alone
	location := strings.TrimSpace(req.Location)

	now := utils.UTCNow()

	// One enquiry per requester per trailing window; the lower bound is inclusive
	recent, err := f.enquiryRepo.CountCreatedSince(ctx, requester.ID, now.Add(-utils.EnquiryWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent enquiries: %w", err)
	}
	if recent > 0 {
		return nil, ErrEnquiryRateLimited
	}

	candidates, err := f.listCandidates(ctx, req.ClassType)
	if err != nil {
		return nil, err
	}

	enquiry := models.Enquiry{
		RequesterID: requester.ID,
		ArtType:     req.ArtType,
		SkillLevel:  req.SkillLevel,
		Duration:    req.Duration,
		BudgetRange: req.BudgetRange,
		ClassType:   req.ClassType,
		Location:    location,
	}

	matched := MatchArtists(&enquiry, candidates)
	enquiry.MatchedArtistIDs = make([]int64, 0, len(matched))
	for _, artist := range matched {
		enquiry.MatchedArtistIDs = append(enquiry.MatchedArtistIDs, int64(artist.ID))
	}
	enquiry.RevealedArtistIDs = []int64{}
	if len(matched) > 0 {
		enquiry.Status = models.EnquiryStatusMatched
	} else {
		enquiry.Status = models.EnquiryStatusPending
	}

	if err := f.enquiryRepo.Save(ctx, &enquiry); err != nil {
		return nil, fmt.Errorf("failed to save enquiry: %w", err)
	}

	cards, err := f.buildArtistCards(ctx, &enquiry)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitEnquiryResponse{
		Message:        "Enquiry submitted successfully",
		ID:             enquiry.ID,
		UUID:           enquiry.UUID.String(),
		Status:         enquiry.Status,
		MatchedCount:   len(enquiry.MatchedArtistIDs),
		MatchedArtists: cards,
		CreatedAt:      enquiry.CreatedAt.Format(time.RFC3339),
		ExpiresAt:      enquiry.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// listCandidates pulls the coarse candidate pool from the database. Mode,
// approval, activity, and published-rate checks run as SQL filters; the finer
// facets (category, band, location) stay in MatchArtists.
func (f *EnquiryFlowImpl) listCandidates(ctx context.Context, classType string) ([]*models.Profile, error) {
	filter := models.ProfileFilter{
		Role:            utils.ToPtr(models.RoleArtist),
		IsApproved:      utils.ToPtr(true),
		IsActive:        utils.ToPtr(true),
		TeachingRateSet: utils.ToPtr(true),
	}
	switch classType {
	case models.ClassModeOnline:
		filter.TeachesOnline = utils.ToPtr(true)
	case models.ClassModeOffline:
		filter.TeachesOffline = utils.ToPtr(true)
	}

	candidates, err := f.profileRepo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate artists: %w", err)
	}
	return candidates, nil
}

func (f *EnquiryFlowImpl) GetMatches(ctx context.Context, enquiryID, requesterID uint) (*dto.GetMatchesResponse, error) {
	if _, err := getProfile(ctx, f.profileRepo, requesterID); err != nil {
		return nil, err
	}

	enquiry, err := f.loadOwnEnquiry(ctx, enquiryID, requesterID)
	if err != nil {
		return nil, err
	}
	if enquiry.Status == models.EnquiryStatusExpired {
		return nil, ErrEnquiryExpired
	}

	cards, err := f.buildArtistCards(ctx, enquiry)
	if err != nil {
		return nil, err
	}

	revealed := len(enquiry.RevealedArtistIDs)
	return &dto.GetMatchesResponse{
		Message:          "Matches retrieved successfully",
		EnquiryID:        enquiry.ID,
		Status:           enquiry.Status,
		MatchedArtists:   cards,
		RevealedCount:    revealed,
		RemainingReveals: utils.RevealQuota - revealed,
	}, nil
}

func (f *EnquiryFlowImpl) RevealContact(ctx context.Context, enquiryID, artistID, requesterID uint) (*dto.RevealContactResponse, error) {
	if _, err := getProfile(ctx, f.profileRepo, requesterID); err != nil {
		return nil, err
	}

	enquiry, err := f.loadOwnEnquiry(ctx, enquiryID, requesterID)
	if err != nil {
		return nil, err
	}

	// Two attempts: the optimistic one plus a single retry after a concurrent
	// reveal moves the revealed set under us.
	for attempt := 0; attempt < 2; attempt++ {
		if enquiry.Status == models.EnquiryStatusExpired {
			return nil, ErrEnquiryExpired
		}
		// Quota is checked before target validity, so a full quota always
		// surfaces as such regardless of which artist is asked for
		if len(enquiry.RevealedArtistIDs) >= utils.RevealQuota {
			return nil, ErrRevealQuotaExceeded
		}
		if !enquiry.HasMatched(artistID) {
			return nil, ErrArtistNotMatched
		}
		if enquiry.HasRevealed(artistID) {
			return nil, ErrContactAlreadyRevealed
		}

		ok, err := f.enquiryRepo.AppendRevealedContact(ctx, enquiry.ID, artistID, len(enquiry.RevealedArtistIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to reveal contact: %w", err)
		}
		if ok {
			return f.buildRevealResponse(ctx, artistID, len(enquiry.RevealedArtistIDs)+1)
		}

		enquiry, err = f.loadOwnEnquiry(ctx, enquiryID, requesterID)
		if err != nil {
			return nil, err
		}
	}

	return nil, ErrRevealConflict
}

func (f *EnquiryFlowImpl) buildRevealResponse(ctx context.Context, artistID uint, revealedCount int) (*dto.RevealContactResponse, error) {
	artist, err := f.profileRepo.ByID(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}
	if artist == nil {
		return nil, ErrProfileNotFound
	}

	phone := ""
	if artist.Phone != nil {
		phone = *artist.Phone
	}

	return &dto.RevealContactResponse{
		Message:          "Contact revealed successfully",
		ArtistID:         artist.ID,
		ArtistName:       artist.Name,
		Phone:            phone,
		Email:            artist.Email,
		RevealedCount:    revealedCount,
		RemainingReveals: utils.RevealQuota - revealedCount,
	}, nil
}

func (f *EnquiryFlowImpl) ListMyEnquiries(ctx context.Context, requesterID uint) (*dto.ListEnquiriesResponse, error) {
	if _, err := getProfile(ctx, f.profileRepo, requesterID); err != nil {
		return nil, err
	}

	rows, err := f.enquiryRepo.ByFilter(ctx, models.EnquiryFilter{RequesterID: &requesterID}, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}

	now := utils.UTCNow()
	items := make([]dto.EnquiryItem, 0, len(rows))
	for _, enquiry := range rows {
		if err := f.expireIfDue(ctx, enquiry, now); err != nil {
			return nil, err
		}
		items = append(items, ToEnquiryItem(*enquiry))
	}

	return &dto.ListEnquiriesResponse{
		Message: "Enquiries retrieved successfully",
		Items:   items,
	}, nil
}

// loadOwnEnquiry fetches the requester's enquiry and applies lazy expiry
func (f *EnquiryFlowImpl) loadOwnEnquiry(ctx context.Context, enquiryID, requesterID uint) (*models.Enquiry, error) {
	enquiry, err := f.enquiryRepo.ByIDAndRequester(ctx, enquiryID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiry: %w", err)
	}
	if enquiry == nil {
		return nil, ErrEnquiryNotFound
	}
	if err := f.expireIfDue(ctx, enquiry, utils.UTCNow()); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// expireIfDue records expiry in place the first time an expired enquiry is read
func (f *EnquiryFlowImpl) expireIfDue(ctx context.Context, enquiry *models.Enquiry, now time.Time) error {
	if enquiry.Status == models.EnquiryStatusExpired || !enquiry.IsExpiredAt(now) {
		return nil
	}
	if err := f.enquiryRepo.MarkExpired(ctx, enquiry.ID); err != nil {
		return fmt.Errorf("failed to mark enquiry expired: %w", err)
	}
	enquiry.Status = models.EnquiryStatusExpired
	return nil
}

// buildArtistCards assembles matched artist cards in stored match order.
// Phones stay redacted until the requester reveals them; each card carries the
// artist's most-viewed approved artworks as samples.
func (f *EnquiryFlowImpl) buildArtistCards(ctx context.Context, enquiry *models.Enquiry) ([]dto.MatchedArtistDTO, error) {
	ids := make([]uint, 0, len(enquiry.MatchedArtistIDs))
	for _, id := range enquiry.MatchedArtistIDs {
		ids = append(ids, uint(id))
	}

	profiles, err := f.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched artists: %w", err)
	}
	byID := make(map[uint]*models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	cards := make([]dto.MatchedArtistDTO, 0, len(ids))
	for _, id := range ids {
		artist, ok := byID[id]
		if !ok {
			continue
		}

		samples, err := f.artworkRepo.TopByViews(ctx, artist.ID, utils.SampleArtworkLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load sample artworks: %w", err)
		}
		sampleItems := make([]dto.ArtworkItem, 0, len(samples))
		for _, artwork := range samples {
			sampleItems = append(sampleItems, ToArtworkItem(*artwork))
		}

		revealed := enquiry.HasRevealed(artist.ID)
		phone := utils.HiddenPhoneSentinel
		if revealed && artist.Phone != nil {
			phone = *artist.Phone
		}

		rate := float64(0)
		if artist.TeachingRate != nil {
			rate = *artist.TeachingRate
		}

		cards = append(cards, dto.MatchedArtistDTO{
			ID:              artist.ID,
			UUID:            artist.UUID.String(),
			Name:            artist.Name,
			Bio:             artist.Bio,
			Avatar:          artist.Avatar,
			Location:        artist.Location,
			Categories:      artist.Categories,
			TeachingRate:    rate,
			TeachesOnline:   utils.IsTrue(artist.TeachesOnline),
			TeachesOffline:  utils.IsTrue(artist.TeachesOffline),
			Phone:           phone,
			ContactRevealed: revealed,
			SampleArtworks:  sampleItems,
		})
	}

	return cards, nil
}
