package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/repository"
	"github.com/chitrakalakar/backend/utils"
)

// ArtworkFlow defines operations for marketplace artworks
type ArtworkFlow interface {
	CreateArtwork(ctx context.Context, req *dto.CreateArtworkRequest, artistID uint, metadata *ClientMetadata) (*dto.CreateArtworkResponse, error)
	GetArtwork(ctx context.Context, artworkID uint) (*dto.ArtworkItem, error)
	ListArtworks(ctx context.Context, req *dto.ListArtworksRequest) (*dto.ListArtworksResponse, error)
	ListMyArtworks(ctx context.Context, artistID uint) (*dto.ListArtworksResponse, error)
}

// ArtworkFlowImpl implements ArtworkFlow
type ArtworkFlowImpl struct {
	profileRepo repository.ProfileRepository
	artworkRepo repository.ArtworkRepository
}

func NewArtworkFlow(profileRepo repository.ProfileRepository, artworkRepo repository.ArtworkRepository) ArtworkFlow {
	return &ArtworkFlowImpl{profileRepo: profileRepo, artworkRepo: artworkRepo}
}

func (f *ArtworkFlowImpl) CreateArtwork(ctx context.Context, req *dto.CreateArtworkRequest, artistID uint, metadata *ClientMetadata) (*dto.CreateArtworkResponse, error) {
	artist, err := getProfile(ctx, f.profileRepo, artistID)
	if err != nil {
		return nil, err
	}
	if artist.Role != models.RoleArtist {
		return nil, ErrRoleNotAllowed
	}

	artwork := models.Artwork{
		ArtistID:    artist.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		IsApproved:  utils.ToPtr(false),
	}

	if err := f.artworkRepo.Save(ctx, &artwork); err != nil {
		return nil, fmt.Errorf("failed to save artwork: %w", err)
	}

	return &dto.CreateArtworkResponse{
		Message:    "Artwork submitted for review",
		ID:         artwork.ID,
		UUID:       artwork.UUID.String(),
		IsApproved: false,
		CreatedAt:  artwork.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetArtwork returns a single approved artwork and bumps its view counter
func (f *ArtworkFlowImpl) GetArtwork(ctx context.Context, artworkID uint) (*dto.ArtworkItem, error) {
	artwork, err := f.artworkRepo.ByID(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}
	if artwork == nil || !utils.IsTrue(artwork.IsApproved) {
		return nil, ErrArtworkNotFound
	}

	if err := f.artworkRepo.IncrementViews(ctx, artwork.ID); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	artwork.Views++

	item := ToArtworkItem(*artwork)
	if artist, err := f.profileRepo.ByID(ctx, artwork.ArtistID); err == nil && artist != nil {
		item.ArtistName = artist.Name
	}
	return &item, nil
}

func (f *ArtworkFlowImpl) ListArtworks(ctx context.Context, req *dto.ListArtworksRequest) (*dto.ListArtworksResponse, error) {
	limit, offset, err := paginate(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.ArtworkFilter{
		Category:   req.Category,
		ArtistID:   req.ArtistID,
		IsApproved: utils.ToPtr(true),
	}

	rows, err := f.artworkRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	total, err := f.artworkRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count artworks: %w", err)
	}

	items, err := f.withArtistNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &dto.ListArtworksResponse{
		Message: "Artworks retrieved successfully",
		Items:   items,
		Total:   total,
	}, nil
}

// ListMyArtworks returns all of the artist's own artworks, approved or not
func (f *ArtworkFlowImpl) ListMyArtworks(ctx context.Context, artistID uint) (*dto.ListArtworksResponse, error) {
	artist, err := getProfile(ctx, f.profileRepo, artistID)
	if err != nil {
		return nil, err
	}
	if artist.Role != models.RoleArtist {
		return nil, ErrRoleNotAllowed
	}

	filter := models.ArtworkFilter{ArtistID: &artist.ID}
	rows, err := f.artworkRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}

	items := make([]dto.ArtworkItem, 0, len(rows))
	for _, artwork := range rows {
		item := ToArtworkItem(*artwork)
		item.ArtistName = artist.Name
		items = append(items, item)
	}

	return &dto.ListArtworksResponse{
		Message: "Artworks retrieved successfully",
		Items:   items,
		Total:   int64(len(items)),
	}, nil
}

// withArtistNames decorates listing rows with artist names in one lookup
func (f *ArtworkFlowImpl) withArtistNames(ctx context.Context, rows []*models.Artwork) ([]dto.ArtworkItem, error) {
	idSet := make(map[uint]struct{}, len(rows))
	ids := make([]uint, 0, len(rows))
	for _, artwork := range rows {
		if _, ok := idSet[artwork.ArtistID]; !ok {
			idSet[artwork.ArtistID] = struct{}{}
			ids = append(ids, artwork.ArtistID)
		}
	}

	profiles, err := f.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load artists: %w", err)
	}
	names := make(map[uint]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}

	items := make([]dto.ArtworkItem, 0, len(rows))
	for _, artwork := range rows {
		item := ToArtworkItem(*artwork)
		item.ArtistName = names[artwork.ArtistID]
		items = append(items, item)
	}
	return items, nil
}
