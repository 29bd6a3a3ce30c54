// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// ToProfileDTO converts a profile model to the caller-facing DTO
func ToProfileDTO(profile models.Profile) dto.ProfileDTO {
	return dto.ProfileDTO{
		ID:             profile.ID,
		UUID:           profile.UUID.String(),
		Role:           string(profile.Role),
		Name:           profile.Name,
		Email:          profile.Email,
		Phone:          profile.Phone,
		Bio:            profile.Bio,
		Avatar:         profile.Avatar,
		Location:       profile.Location,
		Categories:     profile.Categories,
		TeachingRate:   profile.TeachingRate,
		TeachesOnline:  profile.TeachesOnline,
		TeachesOffline: profile.TeachesOffline,
		IsApproved:     profile.IsApproved,
		IsActive:       profile.IsActive,
		CreatedAt:      profile.CreatedAt.Format(time.RFC3339),
	}
}

// ToArtistPublicDTO converts an artist profile to its public view. The phone
// number is deliberately absent; contacts surface only through enquiry reveals.
func ToArtistPublicDTO(profile models.Profile) dto.ArtistPublicDTO {
	return dto.ArtistPublicDTO{
		ID:             profile.ID,
		UUID:           profile.UUID.String(),
		Name:           profile.Name,
		Bio:            profile.Bio,
		Avatar:         profile.Avatar,
		Location:       profile.Location,
		Categories:     profile.Categories,
		TeachingRate:   profile.TeachingRate,
		TeachesOnline:  profile.TeachesOnline != nil && *profile.TeachesOnline,
		TeachesOffline: profile.TeachesOffline != nil && *profile.TeachesOffline,
	}
}

// ToArtworkItem converts an artwork model to a listing row
func ToArtworkItem(artwork models.Artwork) dto.ArtworkItem {
	item := dto.ArtworkItem{
		ID:          artwork.ID,
		UUID:        artwork.UUID.String(),
		ArtistID:    artwork.ArtistID,
		Title:       artwork.Title,
		Description: artwork.Description,
		Category:    artwork.Category,
		Price:       artwork.Price,
		Image:       artwork.Image,
		Views:       artwork.Views,
		IsApproved:  artwork.IsApproved,
		CreatedAt:   artwork.CreatedAt.Format(time.RFC3339),
	}
	if artwork.Artist != nil {
		item.ArtistName = artwork.Artist.Name
	}
	return item
}

// ToExhibitionItem converts an exhibition model to a listing row
func ToExhibitionItem(exhibition models.Exhibition) dto.ExhibitionItem {
	item := dto.ExhibitionItem{
		ID:          exhibition.ID,
		UUID:        exhibition.UUID.String(),
		CuratorID:   exhibition.CuratorID,
		Name:        exhibition.Name,
		Description: exhibition.Description,
		Type:        exhibition.Type,
		StartDate:   exhibition.StartDate.Format(time.RFC3339),
		EndDate:     exhibition.EndDate.Format(time.RFC3339),
		Status:      exhibition.Status,
		IsApproved:  exhibition.IsApproved,
		CreatedAt:   exhibition.CreatedAt.Format(time.RFC3339),
	}
	if exhibition.Curator != nil {
		item.CuratorName = exhibition.Curator.Name
	}
	return item
}

// ToEnquiryItem converts an enquiry model to a listing row
func ToEnquiryItem(enquiry models.Enquiry) dto.EnquiryItem {
	return dto.EnquiryItem{
		ID:            enquiry.ID,
		UUID:          enquiry.UUID.String(),
		ArtType:       enquiry.ArtType,
		SkillLevel:    enquiry.SkillLevel,
		Duration:      enquiry.Duration,
		BudgetRange:   enquiry.BudgetRange,
		ClassType:     enquiry.ClassType,
		Location:      enquiry.Location,
		Status:        enquiry.Status,
		MatchedCount:  len(enquiry.MatchedArtistIDs),
		RevealedCount: len(enquiry.RevealedArtistIDs),
		CreatedAt:     enquiry.CreatedAt.Format(time.RFC3339),
		ExpiresAt:     enquiry.ExpiresAt.Format(time.RFC3339),
	}
}
