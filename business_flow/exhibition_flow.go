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

// ExhibitionFlow defines operations for curated exhibitions
type ExhibitionFlow interface {
	CreateExhibition(ctx context.Context, req *dto.CreateExhibitionRequest, curatorID uint, metadata *ClientMetadata) (*dto.CreateExhibitionResponse, error)
	ListExhibitions(ctx context.Context) (*dto.ListExhibitionsResponse, error)
	ListMyExhibitions(ctx context.Context, curatorID uint) (*dto.ListExhibitionsResponse, error)
}

// ExhibitionFlowImpl implements ExhibitionFlow
type ExhibitionFlowImpl struct {
	profileRepo    repository.ProfileRepository
	exhibitionRepo repository.ExhibitionRepository
}

func NewExhibitionFlow(profileRepo repository.ProfileRepository, exhibitionRepo repository.ExhibitionRepository) ExhibitionFlow {
	return &ExhibitionFlowImpl{profileRepo: profileRepo, exhibitionRepo: exhibitionRepo}
}

func (f *ExhibitionFlowImpl) CreateExhibition(ctx context.Context, req *dto.CreateExhibitionRequest, curatorID uint, metadata *ClientMetadata) (*dto.CreateExhibitionResponse, error) {
	curator, err := getProfile(ctx, f.profileRepo, curatorID)
	if err != nil {
		return nil, err
	}
	if curator.Role != models.RoleArtist {
		return nil, ErrRoleNotAllowed
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrExhibitionDatesInvalid
	}

	exhibitionType := req.Type
	if exhibitionType == "" {
		exhibitionType = "Kalakanksh"
	}

	exhibition := models.Exhibition{
		CuratorID:   curator.ID,
		Name:        req.Name,
		Description: req.Description,
		Type:        exhibitionType,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		IsApproved:  utils.ToPtr(false),
		Status:      models.ExhibitionStatusUpcoming,
	}

	if err := f.exhibitionRepo.Save(ctx, &exhibition); err != nil {
		return nil, fmt.Errorf("failed to save exhibition: %w", err)
	}

	return &dto.CreateExhibitionResponse{
		Message:    "Exhibition submitted for review",
		ID:         exhibition.ID,
		UUID:       exhibition.UUID.String(),
		Status:     exhibition.Status,
		IsApproved: false,
		CreatedAt:  exhibition.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListExhibitions returns approved exhibitions, soonest start first
func (f *ExhibitionFlowImpl) ListExhibitions(ctx context.Context) (*dto.ListExhibitionsResponse, error) {
	filter := models.ExhibitionFilter{IsApproved: utils.ToPtr(true)}
	rows, err := f.exhibitionRepo.ByFilter(ctx, filter, "start_date ASC, id ASC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list exhibitions: %w", err)
	}

	items, err := f.withCuratorNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &dto.ListExhibitionsResponse{
		Message: "Exhibitions retrieved successfully",
		Items:   items,
	}, nil
}

func (f *ExhibitionFlowImpl) ListMyExhibitions(ctx context.Context, curatorID uint) (*dto.ListExhibitionsResponse, error) {
	curator, err := getProfile(ctx, f.profileRepo, curatorID)
	if err != nil {
		return nil, err
	}

	rows, err := f.exhibitionRepo.ByFilter(ctx, models.ExhibitionFilter{CuratorID: &curator.ID}, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list exhibitions: %w", err)
	}

	items := make([]dto.ExhibitionItem, 0, len(rows))
	for _, exhibition := range rows {
		item := ToExhibitionItem(*exhibition)
		item.CuratorName = curator.Name
		items = append(items, item)
	}

	return &dto.ListExhibitionsResponse{
		Message: "Exhibitions retrieved successfully",
		Items:   items,
	}, nil
}

func (f *ExhibitionFlowImpl) withCuratorNames(ctx context.Context, rows []*models.Exhibition) ([]dto.ExhibitionItem, error) {
	idSet := make(map[uint]struct{}, len(rows))
	ids := make([]uint, 0, len(rows))
	for _, exhibition := range rows {
		if _, ok := idSet[exhibition.CuratorID]; !ok {
			idSet[exhibition.CuratorID] = struct{}{}
			ids = append(ids, exhibition.CuratorID)
		}
	}

	profiles, err := f.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load curators: %w", err)
	}
	names := make(map[uint]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}

	items := make([]dto.ExhibitionItem, 0, len(rows))
	for _, exhibition := range rows {
		item := ToExhibitionItem(*exhibition)
		item.CuratorName = names[exhibition.CuratorID]
		items = append(items, item)
	}
	return items, nil
}
