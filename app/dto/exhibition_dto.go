package dto

import "time"

// CreateExhibitionRequest carries data to propose a new exhibition
type CreateExhibitionRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type        string    `json:"type" validate:"omitempty,max=100"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// CreateExhibitionResponse returns created exhibition identifiers
type CreateExhibitionResponse struct {
	Message    string `json:"message"`
	ID         uint   `json:"id"`
	UUID       string `json:"uuid"`
	Status     string `json:"status"`
	IsApproved bool   `json:"is_approved"`
	CreatedAt  string `json:"created_at"`
}

// ExhibitionItem represents an exhibition row in listings
type ExhibitionItem struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	CuratorID   uint    `json:"curator_id"`
	CuratorName string  `json:"curator_name,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	IsApproved  *bool   `json:"is_approved,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListExhibitionsResponse returns approved exhibitions
type ListExhibitionsResponse struct {
	Message string           `json:"message"`
	Items   []ExhibitionItem `json:"items"`
}
