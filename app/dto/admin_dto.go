package dto

// AdminDashboardResponse aggregates platform counters for the admin dashboard
type AdminDashboardResponse struct {
	Message            string `json:"message"`
	TotalUsers         int64  `json:"total_users"`
	TotalArtists       int64  `json:"total_artists"`
	PendingArtists     int64  `json:"pending_artists"`
	TotalArtworks      int64  `json:"total_artworks"`
	PendingArtworks    int64  `json:"pending_artworks"`
	TotalExhibitions   int64  `json:"total_exhibitions"`
	PendingExhibitions int64  `json:"pending_exhibitions"`
	TotalEnquiries     int64  `json:"total_enquiries"`
	MatchedEnquiries   int64  `json:"matched_enquiries"`
	PendingEnquiries   int64  `json:"pending_enquiries"`
	ExpiredEnquiries   int64  `json:"expired_enquiries"`
}

// PendingArtistItem represents an artist awaiting review
type PendingArtistItem struct {
	ID           uint     `json:"id"`
	UUID         string   `json:"uuid"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Location     *string  `json:"location,omitempty"`
	Categories   []string `json:"categories"`
	TeachingRate *float64 `json:"teaching_rate,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// ListPendingArtistsResponse returns artists awaiting review
type ListPendingArtistsResponse struct {
	Message string              `json:"message"`
	Items   []PendingArtistItem `json:"items"`
}

// ReviewArtistRequest carries an approve/reject decision for an artist
type ReviewArtistRequest struct {
	Approve bool `json:"approve"`
}

// ReviewArtistResponse confirms the decision
type ReviewArtistResponse struct {
	Message    string `json:"message"`
	ArtistID   uint   `json:"artist_id"`
	IsApproved bool   `json:"is_approved"`
}

// ListPendingArtworksResponse returns artworks awaiting review
type ListPendingArtworksResponse struct {
	Message string        `json:"message"`
	Items   []ArtworkItem `json:"items"`
}

// ReviewArtworkRequest carries an approve/reject decision for an artwork
type ReviewArtworkRequest struct {
	Approve bool `json:"approve"`
}

// ReviewArtworkResponse confirms the decision
type ReviewArtworkResponse struct {
	Message    string `json:"message"`
	ArtworkID  uint   `json:"artwork_id"`
	IsApproved bool   `json:"is_approved"`
}

// ListPendingExhibitionsResponse returns exhibitions awaiting review
type ListPendingExhibitionsResponse struct {
	Message string           `json:"message"`
	Items   []ExhibitionItem `json:"items"`
}

// ReviewExhibitionRequest carries an approve/reject decision for an exhibition
type ReviewExhibitionRequest struct {
	Approve bool `json:"approve"`
}

// ReviewExhibitionResponse confirms the decision
type ReviewExhibitionResponse struct {
	Message      string `json:"message"`
	ExhibitionID uint   `json:"exhibition_id"`
	IsApproved   bool   `json:"is_approved"`
}

// CreateSubAdminRequest carries data to create a reviewer account
// Role must be lead_reviewer or senior_reviewer
type CreateSubAdminRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=lead_reviewer senior_reviewer"`
}

// CreateSubAdminResponse returns the created reviewer account
type CreateSubAdminResponse struct {
	Message   string `json:"message"`
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AdminEnquiryItem represents an enquiry row in the admin listing
type AdminEnquiryItem struct {
	EnquiryItem
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

// AdminListEnquiriesResponse returns all enquiries for the admin view
type AdminListEnquiriesResponse struct {
	Message string             `json:"message"`
	Items   []AdminEnquiryItem `json:"items"`
	Total   int64              `json:"total"`
}
