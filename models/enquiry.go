package models

import (
	"time"

	"github.com/chitrakalakar/backend/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Enquiry statuses. An enquiry starts pending or matched and can only move to
// expired; expired is terminal.
const (
	EnquiryStatusPending = "pending"
	EnquiryStatusMatched = "matched"
	EnquiryStatusExpired = "expired"
)

// Class modes
const (
	ClassModeOnline  = "online"
	ClassModeOffline = "offline"
)

// Enquiry represents an art-class enquiry submitted by a user.
// MatchedArtistIDs is ordered (ascending teaching rate) and capped at 3.
// RevealedArtistIDs is always a subset of MatchedArtistIDs with at most 3 entries.
// Rows are never deleted; expiry is recorded in place.
type Enquiry struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_enquiries_uuid" json:"uuid"`
	RequesterID uint      `gorm:"not null;index:idx_enquiries_requester_id" json:"requester_id"`

	ArtType     string `gorm:"size:100;not null" json:"art_type"`
	SkillLevel  string `gorm:"size:50;not null" json:"skill_level"`
	Duration    string `gorm:"size:50;not null" json:"duration"`
	BudgetRange string `gorm:"size:20;not null" json:"budget_range"`
	ClassType   string `gorm:"size:10;not null" json:"class_type"`
	Location    string `gorm:"size:255" json:"location"`

	Status            string        `gorm:"size:10;not null;default:'pending';index:idx_enquiries_status" json:"status"`
	MatchedArtistIDs  pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'" json:"matched_artist_ids"`
	RevealedArtistIDs pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'" json:"revealed_artist_ids"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_enquiries_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	ExpiresAt time.Time `gorm:"not null;index:idx_enquiries_expires_at" json:"expires_at"`

	// Relations
	Requester *Profile `gorm:"foreignKey:RequesterID;references:ID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
}

func (Enquiry) TableName() string { return "art_class_enquiries" }

// BeforeCreate ensures UUID, timestamps, and expiry are set
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == uuid.Nil {
		e.UUID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = utils.UTCNow()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	if e.ExpiresAt.IsZero() {
		e.ExpiresAt = e.CreatedAt.Add(utils.EnquiryTTL)
	}
	return nil
}

// IsExpiredAt reports whether the enquiry's expiry has passed at the given instant
func (e *Enquiry) IsExpiredAt(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// HasMatched reports whether the artist is in the matched list
func (e *Enquiry) HasMatched(artistID uint) bool {
	for _, id := range e.MatchedArtistIDs {
		if uint(id) == artistID {
			return true
		}
	}
	return false
}

// HasRevealed reports whether the artist's contact has already been revealed
func (e *Enquiry) HasRevealed(artistID uint) bool {
	for _, id := range e.RevealedArtistIDs {
		if uint(id) == artistID {
			return true
		}
	}
	return false
}

// EnquiryFilter represents filter criteria for enquiry queries
type EnquiryFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	RequesterID   *uint
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
