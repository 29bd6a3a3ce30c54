package handlers

import (
	"context"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ExhibitionHandlerInterface defines the contract for exhibition handlers
type ExhibitionHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	ListMine(c fiber.Ctx) error
}

// ExhibitionHandler handles exhibition-related HTTP requests
type ExhibitionHandler struct {
	flow      businessflow.ExhibitionFlow
	validator *validator.Validate
}

// NewExhibitionHandler creates a new exhibition handler
func NewExhibitionHandler(flow businessflow.ExhibitionFlow) *ExhibitionHandler {
	return &ExhibitionHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *ExhibitionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ExhibitionHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ExhibitionHandler) Create(c fiber.Ctx) error {
	var req dto.CreateExhibitionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	curatorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.CreateExhibition(h.createRequestContext(c, "/api/v1/exhibitions"), &req, curatorID, metadata)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsRoleNotAllowed(err):
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only artists can propose exhibitions", "ROLE_NOT_ALLOWED", nil)
		case businessflow.IsExhibitionDatesInvalid(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Exhibition end date must be after start date", "EXHIBITION_DATES_INVALID", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create exhibition", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

func (h *ExhibitionHandler) List(c fiber.Ctx) error {
	result, err := h.flow.ListExhibitions(h.createRequestContext(c, "/api/v1/exhibitions"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list exhibitions", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ExhibitionHandler) ListMine(c fiber.Ctx) error {
	curatorID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListMyExhibitions(h.createRequestContext(c, "/api/v1/exhibitions/mine"), curatorID)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list exhibitions", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ExhibitionHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
