package dto

// CreateArtworkRequest carries data to list a new artwork
type CreateArtworkRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=512"`
}

// CreateArtworkResponse returns created artwork identifiers
type CreateArtworkResponse struct {
	Message    string `json:"message"`
	ID         uint   `json:"id"`
	UUID       string `json:"uuid"`
	IsApproved bool   `json:"is_approved"`
	CreatedAt  string `json:"created_at"`
}

// ArtworkItem represents an artwork row in listings
type ArtworkItem struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	ArtistID    uint    `json:"artist_id"`
	ArtistName  string  `json:"artist_name,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
	Views       int64   `json:"views"`
	IsApproved  *bool   `json:"is_approved,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListArtworksRequest filters the marketplace listing
type ListArtworksRequest struct {
	Category *string `json:"category,omitempty"`
	ArtistID *uint   `json:"artist_id,omitempty"`
	Page     uint    `json:"page,omitempty"`
	PageSize uint    `json:"page_size,omitempty"`
}

// ListArtworksResponse returns approved artworks
type ListArtworksResponse struct {
	Message string        `json:"message"`
	Items   []ArtworkItem `json:"items"`
	Total   int64         `json:"total"`
}
