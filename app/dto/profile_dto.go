package dto

// ProfileDTO represents the caller's own profile
type ProfileDTO struct {
	ID             uint     `json:"id"`
	UUID           string   `json:"uuid"`
	Role           string   `json:"role"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Avatar         *string  `json:"avatar,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Categories     []string `json:"categories"`
	TeachingRate   *float64 `json:"teaching_rate,omitempty"`
	TeachesOnline  *bool    `json:"teaches_online,omitempty"`
	TeachesOffline *bool    `json:"teaches_offline,omitempty"`
	IsApproved     *bool    `json:"is_approved"`
	IsActive       *bool    `json:"is_active"`
	CreatedAt      string   `json:"created_at"`
}

// GetProfileResponse wraps the caller's profile
type GetProfileResponse struct {
	Message string     `json:"message"`
	Profile ProfileDTO `json:"profile"`
}

// UpdateProfileRequest carries a partial profile update; nil fields are untouched
type UpdateProfileRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone          *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Bio            *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Avatar         *string  `json:"avatar,omitempty" validate:"omitempty,max=512"`
	Location       *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Categories     []string `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=100"`
	TeachingRate   *float64 `json:"teaching_rate,omitempty" validate:"omitempty,gt=0"`
	TeachesOnline  *bool    `json:"teaches_online,omitempty"`
	TeachesOffline *bool    `json:"teaches_offline,omitempty"`
}

// UpdateProfileResponse returns the updated profile
type UpdateProfileResponse struct {
	Message string     `json:"message"`
	Profile ProfileDTO `json:"profile"`
}

// ApplyAsArtistRequest upgrades a user account to a pending artist profile
type ApplyAsArtistRequest struct {
	Phone          string   `json:"phone" validate:"required,max=20"`
	Bio            *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Location       *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Categories     []string `json:"categories" validate:"required,min=1,dive,min=1,max=100"`
	TeachingRate   *float64 `json:"teaching_rate,omitempty" validate:"omitempty,gt=0"`
	TeachesOnline  bool     `json:"teaches_online"`
	TeachesOffline bool     `json:"teaches_offline"`
}

// ApplyAsArtistResponse confirms the application was queued for review
type ApplyAsArtistResponse struct {
	Message string     `json:"message"`
	Profile ProfileDTO `json:"profile"`
}

// ArtistPublicDTO is the public view of an artist profile; phone is never included
type ArtistPublicDTO struct {
	ID             uint     `json:"id"`
	UUID           string   `json:"uuid"`
	Name           string   `json:"name"`
	Bio            *string  `json:"bio,omitempty"`
	Avatar         *string  `json:"avatar,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Categories     []string `json:"categories"`
	TeachingRate   *float64 `json:"teaching_rate,omitempty"`
	TeachesOnline  bool     `json:"teaches_online"`
	TeachesOffline bool     `json:"teaches_offline"`
}

// ListArtistsResponse returns approved, active artists
type ListArtistsResponse struct {
	Message string            `json:"message"`
	Items   []ArtistPublicDTO `json:"items"`
	Total   int64             `json:"total"`
}
