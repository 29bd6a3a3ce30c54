package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ProfileHandlerInterface defines the contract for profile handlers
type ProfileHandlerInterface interface {
	Get(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	ApplyAsArtist(c fiber.Ctx) error
	ListArtists(c fiber.Ctx) error
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	flow      businessflow.ProfileFlow
	validator *validator.Validate
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(flow businessflow.ProfileFlow) *ProfileHandler {
	return &ProfileHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *ProfileHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ProfileHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	profileID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.GetProfile(h.createRequestContext(c, "/api/v1/profile"), profileID)
	if err != nil {
		return h.mapProfileError(c, err, "Failed to get profile")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	profileID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateProfile(h.createRequestContext(c, "/api/v1/profile"), &req, profileID, metadata)
	if err != nil {
		return h.mapProfileError(c, err, "Failed to update profile")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ProfileHandler) ApplyAsArtist(c fiber.Ctx) error {
	var req dto.ApplyAsArtistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	profileID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.ApplyAsArtist(h.createRequestContext(c, "/api/v1/profile/apply-artist"), &req, profileID, metadata)
	if err != nil {
		if businessflow.IsRoleNotAllowed(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Only plain user accounts can apply as artists", "ROLE_NOT_ALLOWED", nil)
		}
		return h.mapProfileError(c, err, "Failed to apply as artist")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ProfileHandler) ListArtists(c fiber.Ctx) error {
	page := queryUint(c, "page")
	pageSize := queryUint(c, "page_size")

	result, err := h.flow.ListArtists(h.createRequestContext(c, "/api/v1/artists"), page, pageSize)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid page size", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list artists", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ProfileHandler) mapProfileError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case businessflow.IsProfileNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallback, "INTERNAL_ERROR", nil)
}

func (h *ProfileHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// queryUint parses a query param as uint, returning 0 when absent or malformed
func queryUint(c fiber.Ctx, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
