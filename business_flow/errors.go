// Package businessflow contains the core business logic for the marketplace
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Profile-related errors
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrArtistNotApproved  = errors.New("artist is not approved")
	ErrRoleNotAllowed     = errors.New("role is not allowed to perform this action")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")

	// Enquiry-related errors
	ErrEnquiryNotFound        = errors.New("enquiry not found")
	ErrEnquiryExpired         = errors.New("enquiry has expired")
	ErrEnquiryRateLimited     = errors.New("enquiry limit for this period reached")
	ErrInvalidClassType       = errors.New("class type must be online or offline")
	ErrRevealQuotaExceeded    = errors.New("contact reveal quota exceeded")
	ErrArtistNotMatched       = errors.New("artist is not matched on this enquiry")
	ErrContactAlreadyRevealed = errors.New("contact has already been revealed")
	ErrRevealConflict         = errors.New("concurrent reveal detected, retry")

	// Artwork-related errors
	ErrArtworkNotFound = errors.New("artwork not found")

	// Exhibition-related errors
	ErrExhibitionNotFound     = errors.New("exhibition not found")
	ErrExhibitionDatesInvalid = errors.New("exhibition end date must be after start date")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsArtistNotApproved(err error) bool {
	return errors.Is(err, ErrArtistNotApproved)
}

func IsRoleNotAllowed(err error) bool {
	return errors.Is(err, ErrRoleNotAllowed)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsInvalidRole(err error) bool {
	return errors.Is(err, ErrInvalidRole)
}

func IsEnquiryNotFound(err error) bool {
	return errors.Is(err, ErrEnquiryNotFound)
}

func IsEnquiryExpired(err error) bool {
	return errors.Is(err, ErrEnquiryExpired)
}

func IsEnquiryRateLimited(err error) bool {
	return errors.Is(err, ErrEnquiryRateLimited)
}

func IsInvalidClassType(err error) bool {
	return errors.Is(err, ErrInvalidClassType)
}

func IsRevealQuotaExceeded(err error) bool {
	return errors.Is(err, ErrRevealQuotaExceeded)
}

func IsArtistNotMatched(err error) bool {
	return errors.Is(err, ErrArtistNotMatched)
}

func IsContactAlreadyRevealed(err error) bool {
	return errors.Is(err, ErrContactAlreadyRevealed)
}

func IsRevealConflict(err error) bool {
	return errors.Is(err, ErrRevealConflict)
}

func IsArtworkNotFound(err error) bool {
	return errors.Is(err, ErrArtworkNotFound)
}

func IsExhibitionNotFound(err error) bool {
	return errors.Is(err, ErrExhibitionNotFound)
}

func IsExhibitionDatesInvalid(err error) bool {
	return errors.Is(err, ErrExhibitionDatesInvalid)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
