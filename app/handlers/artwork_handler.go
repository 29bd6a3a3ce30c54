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

// ArtworkHandlerInterface defines the contract for artwork handlers
type ArtworkHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	ListMine(c fiber.Ctx) error
}

// ArtworkHandler handles artwork-related HTTP requests
type ArtworkHandler struct {
	flow      businessflow.ArtworkFlow
	validator *validator.Validate
}

// NewArtworkHandler creates a new artwork handler
func NewArtworkHandler(flow businessflow.ArtworkFlow) *ArtworkHandler {
	return &ArtworkHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *ArtworkHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ArtworkHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ArtworkHandler) Create(c fiber.Ctx) error {
	var req dto.CreateArtworkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	artistID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.CreateArtwork(h.createRequestContext(c, "/api/v1/artworks"), &req, artistID, metadata)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsRoleNotAllowed(err):
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only artists can list artworks", "ROLE_NOT_ALLOWED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create artwork", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

func (h *ArtworkHandler) Get(c fiber.Ctx) error {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid artwork ID", "INVALID_ARTWORK_ID", nil)
	}

	result, err := h.flow.GetArtwork(h.createRequestContext(c, "/api/v1/artworks/:id"), uint(raw))
	if err != nil {
		if businessflow.IsArtworkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Artwork not found", "ARTWORK_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get artwork", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Artwork retrieved successfully", result)
}

func (h *ArtworkHandler) List(c fiber.Ctx) error {
	req := dto.ListArtworksRequest{
		Page:     queryUint(c, "page"),
		PageSize: queryUint(c, "page_size"),
	}
	if category := c.Query("category"); category != "" {
		req.Category = &category
	}
	if artistID := queryUint(c, "artist_id"); artistID != 0 {
		req.ArtistID = &artistID
	}

	result, err := h.flow.ListArtworks(h.createRequestContext(c, "/api/v1/artworks"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid page size", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list artworks", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ArtworkHandler) ListMine(c fiber.Ctx) error {
	artistID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListMyArtworks(h.createRequestContext(c, "/api/v1/artworks/mine"), artistID)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsRoleNotAllowed(err):
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only artists have artwork listings", "ROLE_NOT_ALLOWED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list artworks", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ArtworkHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
