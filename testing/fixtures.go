package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data in a database
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// BuildUser returns an active plain-user profile that has not been saved
func BuildUser() *models.Profile {
	n := rand.Intn(10000000)
	return &models.Profile{
		UUID:       uuid.New(),
		Role:       models.RoleUser,
		Name:       "Test User",
		Email:      fmt.Sprintf("user%d@example.com", n),
		IsApproved: utils.ToPtr(false),
		IsActive:   utils.ToPtr(true),
		CreatedAt:  utils.UTCNow(),
		UpdatedAt:  utils.UTCNow(),
	}
}

// BuildArtist returns an approved, active artist profile with teaching fields set.
// Callers adjust rate, modes, and location per scenario.
func BuildArtist(rate float64, online, offline bool, location string, categories ...string) *models.Profile {
	n := rand.Intn(10000000)
	phone := fmt.Sprintf("+9198%08d", rand.Intn(100000000))
	p := &models.Profile{
		UUID:           uuid.New(),
		Role:           models.RoleArtist,
		Name:           fmt.Sprintf("Artist %d", n),
		Email:          fmt.Sprintf("artist%d@example.com", n),
		Phone:          &phone,
		Categories:     pq.StringArray(categories),
		TeachingRate:   &rate,
		TeachesOnline:  utils.ToPtr(online),
		TeachesOffline: utils.ToPtr(offline),
		IsApproved:     utils.ToPtr(true),
		IsActive:       utils.ToPtr(true),
		CreatedAt:      utils.UTCNow(),
		UpdatedAt:      utils.UTCNow(),
	}
	if location != "" {
		p.Location = &location
	}
	return p
}

// BuildReviewer returns an active reviewer or admin profile with hashed credentials
func BuildReviewer(role models.Role) *models.Profile {
	n := rand.Intn(10000000)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	hash := string(hashed)
	return &models.Profile{
		UUID:         uuid.New(),
		Role:         role,
		Name:         fmt.Sprintf("Reviewer %d", n),
		Email:        fmt.Sprintf("reviewer%d@example.com", n),
		PasswordHash: &hash,
		IsApproved:   utils.ToPtr(true),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
}

// BuildEnquiry returns a pending online enquiry for the given requester
func BuildEnquiry(requesterID uint) *models.Enquiry {
	now := utils.UTCNow()
	return &models.Enquiry{
		UUID:              uuid.New(),
		RequesterID:       requesterID,
		ArtType:           "painting",
		SkillLevel:        "beginner",
		Duration:          "1 month",
		BudgetRange:       "250-350",
		ClassType:         models.ClassModeOnline,
		Status:            models.EnquiryStatusPending,
		MatchedArtistIDs:  pq.Int64Array{},
		RevealedArtistIDs: pq.Int64Array{},
		CreatedAt:         now,
		UpdatedAt:         now,
		ExpiresAt:         now.Add(utils.EnquiryTTL),
	}
}

// BuildArtwork returns an approved artwork for the given artist
func BuildArtwork(artistID uint, title string, views int64) *models.Artwork {
	return &models.Artwork{
		UUID:       uuid.New(),
		ArtistID:   artistID,
		Title:      title,
		Category:   "painting",
		Price:      5000,
		IsApproved: utils.ToPtr(true),
		Views:      views,
		CreatedAt:  utils.UTCNow(),
		UpdatedAt:  utils.UTCNow(),
	}
}

// BuildExhibition returns an upcoming exhibition proposed by the given curator
func BuildExhibition(curatorID uint, name string) *models.Exhibition {
	now := utils.UTCNow()
	return &models.Exhibition{
		UUID:       uuid.New(),
		CuratorID:  curatorID,
		Name:       name,
		Type:       "Kalakanksh",
		StartDate:  now.Add(7 * 24 * time.Hour),
		EndDate:    now.Add(14 * 24 * time.Hour),
		IsApproved: utils.ToPtr(false),
		Status:     models.ExhibitionStatusUpcoming,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateUser persists a plain-user profile
func (tf *TestFixtures) CreateUser() (*models.Profile, error) {
	p := BuildUser()
	if err := tf.DB.DB.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return p, nil
}

// CreateArtist persists an approved artist profile
func (tf *TestFixtures) CreateArtist(rate float64, online, offline bool, location string, categories ...string) (*models.Profile, error) {
	p := BuildArtist(rate, online, offline, location, categories...)
	if err := tf.DB.DB.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create test artist: %w", err)
	}
	return p, nil
}

// CreateEnquiry persists a pending enquiry for the requester
func (tf *TestFixtures) CreateEnquiry(requesterID uint) (*models.Enquiry, error) {
	e := BuildEnquiry(requesterID)
	if err := tf.DB.DB.Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create test enquiry: %w", err)
	}
	return e, nil
}

// CreateArtwork persists an approved artwork for the artist
func (tf *TestFixtures) CreateArtwork(artistID uint, title string, views int64) (*models.Artwork, error) {
	a := BuildArtwork(artistID, title, views)
	if err := tf.DB.DB.Create(a).Error; err != nil {
		return nil, fmt.Errorf("failed to create test artwork: %w", err)
	}
	return a, nil
}
