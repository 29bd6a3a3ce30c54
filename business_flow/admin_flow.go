package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/repository"
	"github.com/chitrakalakar/backend/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// AdminFlow defines review and platform-management operations. Every method
// checks the acting profile's capability; handlers only do coarse role gating.
type AdminFlow interface {
	Dashboard(ctx context.Context, actorID uint) (*dto.AdminDashboardResponse, error)
	ListPendingArtists(ctx context.Context, actorID uint) (*dto.ListPendingArtistsResponse, error)
	ReviewArtist(ctx context.Context, actorID, artistID uint, approve bool) (*dto.ReviewArtistResponse, error)
	ListPendingArtworks(ctx context.Context, actorID uint) (*dto.ListPendingArtworksResponse, error)
	ReviewArtwork(ctx context.Context, actorID, artworkID uint, approve bool) (*dto.ReviewArtworkResponse, error)
	ListPendingExhibitions(ctx context.Context, actorID uint) (*dto.ListPendingExhibitionsResponse, error)
	ReviewExhibition(ctx context.Context, actorID, exhibitionID uint, approve bool) (*dto.ReviewExhibitionResponse, error)
	CreateSubAdmin(ctx context.Context, req *dto.CreateSubAdminRequest, actorID uint) (*dto.CreateSubAdminResponse, error)
	ListEnquiries(ctx context.Context, actorID uint, page, pageSize uint) (*dto.AdminListEnquiriesResponse, error)
	ExportEnquiries(ctx context.Context, actorID uint) ([]byte, error)
}

// AdminFlowImpl implements AdminFlow
type AdminFlowImpl struct {
	profileRepo    repository.ProfileRepository
	artworkRepo    repository.ArtworkRepository
	exhibitionRepo repository.ExhibitionRepository
	enquiryRepo    repository.EnquiryRepository
}

func NewAdminFlow(profileRepo repository.ProfileRepository, artworkRepo repository.ArtworkRepository, exhibitionRepo repository.ExhibitionRepository, enquiryRepo repository.EnquiryRepository) AdminFlow {
	return &AdminFlowImpl{
		profileRepo:    profileRepo,
		artworkRepo:    artworkRepo,
		exhibitionRepo: exhibitionRepo,
		enquiryRepo:    enquiryRepo,
	}
}

// requireCapability loads the actor and checks a role capability
func (f *AdminFlowImpl) requireCapability(ctx context.Context, actorID uint, allowed func(models.Role) bool) (*models.Profile, error) {
	actor, err := getProfile(ctx, f.profileRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !allowed(actor.Role) {
		return nil, ErrRoleNotAllowed
	}
	return actor, nil
}

func (f *AdminFlowImpl) Dashboard(ctx context.Context, actorID uint) (*dto.AdminDashboardResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, func(r models.Role) bool {
		return r.CanReviewArtists() || r.CanReviewArtworks()
	}); err != nil {
		return nil, err
	}

	resp := &dto.AdminDashboardResponse{Message: "Dashboard retrieved successfully"}

	counts := []struct {
		dst    *int64
		count  func(context.Context) (int64, error)
		detail string
	}{
		{&resp.TotalUsers, func(ctx context.Context) (int64, error) {
			return f.profileRepo.Count(ctx, models.ProfileFilter{Role: utils.ToPtr(models.RoleUser)})
		}, "users"},
		{&resp.TotalArtists, func(ctx context.Context) (int64, error) {
			return f.profileRepo.Count(ctx, models.ProfileFilter{Role: utils.ToPtr(models.RoleArtist)})
		}, "artists"},
		{&resp.PendingArtists, func(ctx context.Context) (int64, error) {
			return f.profileRepo.Count(ctx, models.ProfileFilter{Role: utils.ToPtr(models.RoleArtist), IsApproved: utils.ToPtr(false), IsActive: utils.ToPtr(true)})
		}, "pending artists"},
		{&resp.TotalArtworks, func(ctx context.Context) (int64, error) {
			return f.artworkRepo.Count(ctx, models.ArtworkFilter{})
		}, "artworks"},
		{&resp.PendingArtworks, func(ctx context.Context) (int64, error) {
			return f.artworkRepo.Count(ctx, models.ArtworkFilter{IsApproved: utils.ToPtr(false)})
		}, "pending artworks"},
		{&resp.TotalExhibitions, func(ctx context.Context) (int64, error) {
			return f.exhibitionRepo.Count(ctx, models.ExhibitionFilter{})
		}, "exhibitions"},
		{&resp.PendingExhibitions, func(ctx context.Context) (int64, error) {
			return f.exhibitionRepo.Count(ctx, models.ExhibitionFilter{IsApproved: utils.ToPtr(false)})
		}, "pending exhibitions"},
		{&resp.TotalEnquiries, func(ctx context.Context) (int64, error) {
			return f.enquiryRepo.Count(ctx, models.EnquiryFilter{})
		}, "enquiries"},
		{&resp.MatchedEnquiries, func(ctx context.Context) (int64, error) {
			return f.enquiryRepo.Count(ctx, models.EnquiryFilter{Status: utils.ToPtr(models.EnquiryStatusMatched)})
		}, "matched enquiries"},
		{&resp.PendingEnquiries, func(ctx context.Context) (int64, error) {
			return f.enquiryRepo.Count(ctx, models.EnquiryFilter{Status: utils.ToPtr(models.EnquiryStatusPending)})
		}, "pending enquiries"},
		{&resp.ExpiredEnquiries, func(ctx context.Context) (int64, error) {
			return f.enquiryRepo.Count(ctx, models.EnquiryFilter{Status: utils.ToPtr(models.EnquiryStatusExpired)})
		}, "expired enquiries"},
	}

	for _, c := range counts {
		v, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.detail, err)
		}
		*c.dst = v
	}

	return resp, nil
}

func (f *AdminFlowImpl) ListPendingArtists(ctx context.Context, actorID uint) (*dto.ListPendingArtistsResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtists); err != nil {
		return nil, err
	}

	filter := models.ProfileFilter{
		Role:       utils.ToPtr(models.RoleArtist),
		IsApproved: utils.ToPtr(false),
		IsActive:   utils.ToPtr(true),
	}
	rows, err := f.profileRepo.ByFilter(ctx, filter, "created_at ASC, id ASC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending artists: %w", err)
	}

	items := make([]dto.PendingArtistItem, 0, len(rows))
	for _, artist := range rows {
		items = append(items, dto.PendingArtistItem{
			ID:           artist.ID,
			UUID:         artist.UUID.String(),
			Name:         artist.Name,
			Email:        artist.Email,
			Location:     artist.Location,
			Categories:   artist.Categories,
			TeachingRate: artist.TeachingRate,
			CreatedAt:    artist.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.ListPendingArtistsResponse{
		Message: "Pending artists retrieved successfully",
		Items:   items,
	}, nil
}

func (f *AdminFlowImpl) ReviewArtist(ctx context.Context, actorID, artistID uint, approve bool) (*dto.ReviewArtistResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtists); err != nil {
		return nil, err
	}

	artist, err := f.profileRepo.ByID(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}
	if artist == nil || artist.Role != models.RoleArtist {
		return nil, ErrProfileNotFound
	}

	if err := f.profileRepo.UpdateFields(ctx, artist.ID, map[string]any{"is_approved": approve}); err != nil {
		return nil, fmt.Errorf("failed to review artist: %w", err)
	}

	message := "Artist approved"
	if !approve {
		message = "Artist rejected"
	}
	return &dto.ReviewArtistResponse{
		Message:    message,
		ArtistID:   artist.ID,
		IsApproved: approve,
	}, nil
}

func (f *AdminFlowImpl) ListPendingArtworks(ctx context.Context, actorID uint) (*dto.ListPendingArtworksResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtworks); err != nil {
		return nil, err
	}

	rows, err := f.artworkRepo.ByFilter(ctx, models.ArtworkFilter{IsApproved: utils.ToPtr(false)}, "created_at ASC, id ASC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending artworks: %w", err)
	}

	items := make([]dto.ArtworkItem, 0, len(rows))
	for _, artwork := range rows {
		items = append(items, ToArtworkItem(*artwork))
	}

	return &dto.ListPendingArtworksResponse{
		Message: "Pending artworks retrieved successfully",
		Items:   items,
	}, nil
}

func (f *AdminFlowImpl) ReviewArtwork(ctx context.Context, actorID, artworkID uint, approve bool) (*dto.ReviewArtworkResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtworks); err != nil {
		return nil, err
	}

	artwork, err := f.artworkRepo.ByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}

	if err := f.artworkRepo.SetApproval(ctx, artwork.ID, approve); err != nil {
		return nil, fmt.Errorf("failed to review artwork: %w", err)
	}

	message := "Artwork approved"
	if !approve {
		message = "Artwork rejected"
	}
	return &dto.ReviewArtworkResponse{
		Message:    message,
		ArtworkID:  artwork.ID,
		IsApproved: approve,
	}, nil
}

func (f *AdminFlowImpl) ListPendingExhibitions(ctx context.Context, actorID uint) (*dto.ListPendingExhibitionsResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtworks); err != nil {
		return nil, err
	}

	rows, err := f.exhibitionRepo.ByFilter(ctx, models.ExhibitionFilter{IsApproved: utils.ToPtr(false)}, "created_at ASC, id ASC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending exhibitions: %w", err)
	}

	items := make([]dto.ExhibitionItem, 0, len(rows))
	for _, exhibition := range rows {
		items = append(items, ToExhibitionItem(*exhibition))
	}

	return &dto.ListPendingExhibitionsResponse{
		Message: "Pending exhibitions retrieved successfully",
		Items:   items,
	}, nil
}

func (f *AdminFlowImpl) ReviewExhibition(ctx context.Context, actorID, exhibitionID uint, approve bool) (*dto.ReviewExhibitionResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanReviewArtworks); err != nil {
		return nil, err
	}

	exhibition, err := f.exhibitionRepo.ByID(ctx, exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exhibition: %w", err)
	}
	if exhibition == nil {
		return nil, ErrExhibitionNotFound
	}

	if err := f.exhibitionRepo.SetApproval(ctx, exhibition.ID, approve); err != nil {
		return nil, fmt.Errorf("failed to review exhibition: %w", err)
	}

	message := "Exhibition approved"
	if !approve {
		message = "Exhibition rejected"
	}
	return &dto.ReviewExhibitionResponse{
		Message:      message,
		ExhibitionID: exhibition.ID,
		IsApproved:   approve,
	}, nil
}

func (f *AdminFlowImpl) CreateSubAdmin(ctx context.Context, req *dto.CreateSubAdminRequest, actorID uint) (*dto.CreateSubAdminResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanAdminister); err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if role != models.RoleLeadReviewer && role != models.RoleSeniorReviewer {
		return nil, ErrInvalidRole
	}

	existing, err := f.profileRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := models.Profile{
		UUID:         uuid.New(),
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
		Categories:   pq.StringArray{},
		PasswordHash: utils.ToPtr(string(hash)),
		IsApproved:   utils.ToPtr(true),
		IsActive:     utils.ToPtr(true),
	}
	if err := f.profileRepo.Save(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to create sub-admin: %w", err)
	}

	return &dto.CreateSubAdminResponse{
		Message:   "Sub-admin created successfully",
		ID:        profile.ID,
		UUID:      profile.UUID.String(),
		Email:     profile.Email,
		Role:      string(profile.Role),
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (f *AdminFlowImpl) ListEnquiries(ctx context.Context, actorID uint, page, pageSize uint) (*dto.AdminListEnquiriesResponse, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanAdminister); err != nil {
		return nil, err
	}

	limit, offset, err := paginate(page, pageSize)
	if err != nil {
		return nil, err
	}

	rows, err := f.enquiryRepo.ByFilter(ctx, models.EnquiryFilter{}, "created_at DESC, id DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	total, err := f.enquiryRepo.Count(ctx, models.EnquiryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count enquiries: %w", err)
	}

	items, err := f.withRequesters(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &dto.AdminListEnquiriesResponse{
		Message: "Enquiries retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}

// ExportEnquiries renders all enquiries as an xlsx workbook
func (f *AdminFlowImpl) ExportEnquiries(ctx context.Context, actorID uint) ([]byte, error) {
	if _, err := f.requireCapability(ctx, actorID, models.Role.CanAdminister); err != nil {
		return nil, err
	}

	rows, err := f.enquiryRepo.ByFilter(ctx, models.EnquiryFilter{}, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	items, err := f.withRequesters(ctx, rows)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	header := []any{"ID", "Requester", "Email", "Art Type", "Skill Level", "Duration", "Budget", "Class Type", "Location", "Status", "Matched", "Revealed", "Created At", "Expires At"}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell: %w", err)
		}
		row := []any{
			item.ID,
			item.RequesterName,
			item.RequesterEmail,
			item.ArtType,
			item.SkillLevel,
			item.Duration,
			item.BudgetRange,
			item.ClassType,
			item.Location,
			item.Status,
			item.MatchedCount,
			item.RevealedCount,
			item.CreatedAt,
			item.ExpiresAt,
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *AdminFlowImpl) withRequesters(ctx context.Context, rows []*models.Enquiry) ([]dto.AdminEnquiryItem, error) {
	idSet := make(map[uint]struct{}, len(rows))
	ids := make([]uint, 0, len(rows))
	for _, enquiry := range rows {
		if _, ok := idSet[enquiry.RequesterID]; !ok {
			idSet[enquiry.RequesterID] = struct{}{}
			ids = append(ids, enquiry.RequesterID)
		}
	}

	profiles, err := f.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesters: %w", err)
	}
	byID := make(map[uint]*models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	items := make([]dto.AdminEnquiryItem, 0, len(rows))
	for _, enquiry := range rows {
		item := dto.AdminEnquiryItem{EnquiryItem: ToEnquiryItem(*enquiry)}
		if requester, ok := byID[enquiry.RequesterID]; ok {
			item.RequesterName = requester.Name
			item.RequesterEmail = requester.Email
		}
		items = append(items, item)
	}
	return items, nil
}
