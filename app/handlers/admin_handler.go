package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/chitrakalakar/backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdminHandlerInterface defines the contract for admin handlers
type AdminHandlerInterface interface {
	Dashboard(c fiber.Ctx) error
	ListPendingArtists(c fiber.Ctx) error
	ReviewArtist(c fiber.Ctx) error
	ListPendingArtworks(c fiber.Ctx) error
	ReviewArtwork(c fiber.Ctx) error
	ListPendingExhibitions(c fiber.Ctx) error
	ReviewExhibition(c fiber.Ctx) error
	CreateSubAdmin(c fiber.Ctx) error
	ListEnquiries(c fiber.Ctx) error
	ExportEnquiries(c fiber.Ctx) error
}

// AdminHandler handles admin and reviewer HTTP requests
type AdminHandler struct {
	flow      businessflow.AdminFlow
	validator *validator.Validate
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(flow businessflow.AdminFlow) *AdminHandler {
	return &AdminHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *AdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.Dashboard(h.createRequestContext(c, "/api/v1/admin/dashboard"), actorID)
	if err != nil {
		return h.mapAdminError(c, err, "Failed to load dashboard")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ListPendingArtists(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListPendingArtists(h.createRequestContext(c, "/api/v1/admin/artists/pending"), actorID)
	if err != nil {
		return h.mapAdminError(c, err, "Failed to list pending artists")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ReviewArtist(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	artistID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid artist ID", "INVALID_ARTIST_ID", nil)
	}

	var req dto.ReviewArtistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.flow.ReviewArtist(h.createRequestContext(c, "/api/v1/admin/artists/:id/review"), actorID, artistID, req.Approve)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Artist not found", "ARTIST_NOT_FOUND", nil)
		}
		return h.mapAdminError(c, err, "Failed to review artist")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ListPendingArtworks(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListPendingArtworks(h.createRequestContext(c, "/api/v1/admin/artworks/pending"), actorID)
	if err != nil {
		return h.mapAdminError(c, err, "Failed to list pending artworks")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ReviewArtwork(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	artworkID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid artwork ID", "INVALID_ARTWORK_ID", nil)
	}

	var req dto.ReviewArtworkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.flow.ReviewArtwork(h.createRequestContext(c, "/api/v1/admin/artworks/:id/review"), actorID, artworkID, req.Approve)
	if err != nil {
		if businessflow.IsArtworkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Artwork not found", "ARTWORK_NOT_FOUND", nil)
		}
		return h.mapAdminError(c, err, "Failed to review artwork")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ListPendingExhibitions(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListPendingExhibitions(h.createRequestContext(c, "/api/v1/admin/exhibitions/pending"), actorID)
	if err != nil {
		return h.mapAdminError(c, err, "Failed to list pending exhibitions")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ReviewExhibition(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	exhibitionID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid exhibition ID", "INVALID_EXHIBITION_ID", nil)
	}

	var req dto.ReviewExhibitionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.flow.ReviewExhibition(h.createRequestContext(c, "/api/v1/admin/exhibitions/:id/review"), actorID, exhibitionID, req.Approve)
	if err != nil {
		if businessflow.IsExhibitionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Exhibition not found", "EXHIBITION_NOT_FOUND", nil)
		}
		return h.mapAdminError(c, err, "Failed to review exhibition")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) CreateSubAdmin(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	var req dto.CreateSubAdminRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	result, err := h.flow.CreateSubAdmin(h.createRequestContext(c, "/api/v1/admin/sub-admins"), &req, actorID)
	if err != nil {
		switch {
		case businessflow.IsEmailAlreadyExists(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Email already exists", "EMAIL_ALREADY_EXISTS", nil)
		case businessflow.IsInvalidRole(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid reviewer role", "INVALID_ROLE", nil)
		}
		return h.mapAdminError(c, err, "Failed to create sub-admin")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

func (h *AdminHandler) ListEnquiries(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListEnquiries(h.createRequestContext(c, "/api/v1/admin/enquiries"), actorID, queryUint(c, "page"), queryUint(c, "page_size"))
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid page size", "INVALID_PAGE_SIZE", nil)
		}
		return h.mapAdminError(c, err, "Failed to list enquiries")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) ExportEnquiries(c fiber.Ctx) error {
	actorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	workbook, err := h.flow.ExportEnquiries(h.createRequestContext(c, "/api/v1/admin/enquiries/export"), actorID)
	if err != nil {
		return h.mapAdminError(c, err, "Failed to export enquiries")
	}

	filename := fmt.Sprintf("enquiries-%s.xlsx", utils.UTCNow().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(workbook)
}

func (h *AdminHandler) mapAdminError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case businessflow.IsProfileNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsRoleNotAllowed(err):
		return h.ErrorResponse(c, fiber.StatusForbidden, "Insufficient privileges", "ROLE_NOT_ALLOWED", nil)
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallback, "INTERNAL_ERROR", nil)
}

func (h *AdminHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func pathID(c fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
