package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exhibition statuses
const (
	ExhibitionStatusUpcoming = "upcoming"
	ExhibitionStatusActive   = "active"
	ExhibitionStatusArchived = "archived"
)

// Exhibition represents a curated show proposed by an artist and approved by reviewers
type Exhibition struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_exhibitions_uuid" json:"uuid"`
	CuratorID uint      `gorm:"not null;index:idx_exhibitions_curator_id" json:"curator_id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Type        string  `gorm:"size:100;not null;default:'Kalakanksh'" json:"type"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	IsApproved *bool  `gorm:"default:false;index:idx_exhibitions_is_approved" json:"is_approved"`
	Status     string `gorm:"size:20;not null;default:'upcoming';index:idx_exhibitions_status" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_exhibitions_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Curator *Profile `gorm:"foreignKey:CuratorID;references:ID;constraint:OnDelete:CASCADE" json:"curator,omitempty"`
}

func (Exhibition) TableName() string { return "exhibitions" }

// BeforeCreate ensures UUID is set
func (e *Exhibition) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == uuid.Nil {
		e.UUID = uuid.New()
	}
	return nil
}

// ExhibitionFilter represents filter criteria for exhibition queries
type ExhibitionFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	CuratorID     *uint
	IsApproved    *bool
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
