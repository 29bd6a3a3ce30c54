package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artwork represents a piece listed by an artist.
// New artworks enter the approval queue; only approved rows reach the marketplace.
type Artwork struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_artworks_uuid" json:"uuid"`
	ArtistID uint      `gorm:"not null;index:idx_artworks_artist_id" json:"artist_id"`

	Title       string  `gorm:"size:255;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Category    string  `gorm:"size:100;not null;index:idx_artworks_category" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       *string `gorm:"size:512" json:"image,omitempty"`

	IsApproved *bool `gorm:"default:false;index:idx_artworks_is_approved" json:"is_approved"`
	Views      int64 `gorm:"not null;default:0;index:idx_artworks_views" json:"views"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_artworks_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Artist *Profile `gorm:"foreignKey:ArtistID;references:ID;constraint:OnDelete:CASCADE" json:"artist,omitempty"`
}

func (Artwork) TableName() string { return "artworks" }

// BeforeCreate ensures UUID and timestamps are set
func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}

// ArtworkFilter represents filter criteria for artwork queries
type ArtworkFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	ArtistID      *uint
	Category      *string
	IsApproved    *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
