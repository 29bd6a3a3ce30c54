// Package models contains domain entities and business models for the marketplace
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role is the closed set of account roles. Role checks go through the
// capability predicates below, never through ad-hoc string comparisons.
type Role string

const (
	RoleUser           Role = "user"
	RoleArtist         Role = "artist"
	RoleLeadReviewer   Role = "lead_reviewer"
	RoleSeniorReviewer Role = "senior_reviewer"
	RoleAdmin          Role = "admin"
)

// ValidRole reports whether r is a member of the closed role set
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleArtist, RoleLeadReviewer, RoleSeniorReviewer, RoleAdmin:
		return true
	}
	return false
}

// CanReviewArtists reports whether the role may approve or reject artist profiles
func (r Role) CanReviewArtists() bool {
	return r == RoleAdmin || r == RoleLeadReviewer
}

// CanReviewArtworks reports whether the role may approve or reject artworks
func (r Role) CanReviewArtworks() bool {
	return r == RoleAdmin || r == RoleSeniorReviewer
}

// CanAdminister reports whether the role may manage sub-admins and exports
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// Profile represents a marketplace account: plain users, artists, and reviewers.
// UUID is the identity-provider subject; the backend never issues credentials.
// Categories stored as TEXT[]
type Profile struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_profiles_uuid" json:"uuid"`
	Role Role      `gorm:"size:20;not null;default:'user';index:idx_profiles_role" json:"role"`

	Name     string  `gorm:"size:255;not null" json:"name"`
	Email    string  `gorm:"size:255;not null;uniqueIndex:uk_profiles_email" json:"email"`
	Phone    *string `gorm:"size:20" json:"phone,omitempty"`
	Bio      *string `gorm:"type:text" json:"bio,omitempty"`
	Avatar   *string `gorm:"size:512" json:"avatar,omitempty"`
	Location *string `gorm:"size:255" json:"location,omitempty"`

	// Teaching fields (artists only)
	Categories     pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"categories"`
	TeachingRate   *float64       `gorm:"index:idx_profiles_teaching_rate" json:"teaching_rate,omitempty"`
	TeachesOnline  *bool          `gorm:"default:false" json:"teaches_online"`
	TeachesOffline *bool          `gorm:"default:false" json:"teaches_offline"`

	// Sub-admin credentials are provisioned locally; regular accounts carry none
	PasswordHash *string `gorm:"size:255" json:"-"`

	IsApproved *bool `gorm:"default:false;index:idx_profiles_is_approved" json:"is_approved"`
	IsActive   *bool `gorm:"default:true;index:idx_profiles_is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_profiles_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Artworks []Artwork `gorm:"foreignKey:ArtistID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileFilter represents filter criteria for profile queries
type ProfileFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	Role            *Role
	Email           *string
	IsApproved      *bool
	IsActive        *bool
	TeachingRateSet *bool
	TeachesOnline   *bool
	TeachesOffline  *bool
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}

// HasCategory reports whether the profile lists the given art category
func (p *Profile) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
