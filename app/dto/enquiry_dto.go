package dto

// SubmitEnquiryRequest carries data to create a new art-class enquiry.
// Location is an optional hint used only to narrow offline matches.
type SubmitEnquiryRequest struct {
	ArtType     string `json:"art_type" validate:"required,min=1,max=100"`
	SkillLevel  string `json:"skill_level" validate:"required,min=1,max=50"`
	Duration    string `json:"duration" validate:"required,min=1,max=50"`
	BudgetRange string `json:"budget_range" validate:"required,min=1,max=20"`
	ClassType   string `json:"class_type" validate:"required,oneof=online offline"`
	Location    string `json:"location" validate:"omitempty,max=255"`
}

// MatchedArtistDTO is an artist card on an enquiry. Phone carries the real
// number only after the requester reveals it; otherwise it is redacted.
type MatchedArtistDTO struct {
	ID              uint          `json:"id"`
	UUID            string        `json:"uuid"`
	Name            string        `json:"name"`
	Bio             *string       `json:"bio,omitempty"`
	Avatar          *string       `json:"avatar,omitempty"`
	Location        *string       `json:"location,omitempty"`
	Categories      []string      `json:"categories"`
	TeachingRate    float64       `json:"teaching_rate"`
	TeachesOnline   bool          `json:"teaches_online"`
	TeachesOffline  bool          `json:"teaches_offline"`
	Phone           string        `json:"phone"`
	ContactRevealed bool          `json:"contact_revealed"`
	SampleArtworks  []ArtworkItem `json:"sample_artworks"`
}

// SubmitEnquiryResponse returns the created enquiry with its matches
type SubmitEnquiryResponse struct {
	Message        string             `json:"message"`
	ID             uint               `json:"id"`
	UUID           string             `json:"uuid"`
	Status         string             `json:"status"`
	MatchedCount   int                `json:"matched_count"`
	MatchedArtists []MatchedArtistDTO `json:"matched_artists"`
	CreatedAt      string             `json:"created_at"`
	ExpiresAt      string             `json:"expires_at"`
}

// GetMatchesResponse returns the matched artists for an enquiry
type GetMatchesResponse struct {
	Message          string             `json:"message"`
	EnquiryID        uint               `json:"enquiry_id"`
	Status           string             `json:"status"`
	MatchedArtists   []MatchedArtistDTO `json:"matched_artists"`
	RevealedCount    int                `json:"revealed_count"`
	RemainingReveals int                `json:"remaining_reveals"`
}

// RevealContactResponse returns the artist's contact after a successful reveal
type RevealContactResponse struct {
	Message          string `json:"message"`
	ArtistID         uint   `json:"artist_id"`
	ArtistName       string `json:"artist_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	RevealedCount    int    `json:"revealed_count"`
	RemainingReveals int    `json:"remaining_reveals"`
}

// EnquiryItem represents an enquiry row in listings
type EnquiryItem struct {
	ID            uint   `json:"id"`
	UUID          string `json:"uuid"`
	ArtType       string `json:"art_type"`
	SkillLevel    string `json:"skill_level"`
	Duration      string `json:"duration"`
	BudgetRange   string `json:"budget_range"`
	ClassType     string `json:"class_type"`
	Location      string `json:"location,omitempty"`
	Status        string `json:"status"`
	MatchedCount  int    `json:"matched_count"`
	RevealedCount int    `json:"revealed_count"`
	CreatedAt     string `json:"created_at"`
	ExpiresAt     string `json:"expires_at"`
}

// ListEnquiriesResponse returns the requester's enquiries, newest first
type ListEnquiriesResponse struct {
	Message string        `json:"message"`
	Items   []EnquiryItem `json:"items"`
}
