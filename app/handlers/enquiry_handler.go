package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/chitrakalakar/backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// EnquiryHandlerInterface defines the contract for enquiry handlers
type EnquiryHandlerInterface interface {
	Submit(c fiber.Ctx) error
	GetMatches(c fiber.Ctx) error
	RevealContact(c fiber.Ctx) error
	ListMine(c fiber.Ctx) error
}

// EnquiryHandler handles enquiry-related HTTP requests
type EnquiryHandler struct {
	flow      businessflow.EnquiryFlow
	validator *validator.Validate
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(flow businessflow.EnquiryFlow) *EnquiryHandler {
	return &EnquiryHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *EnquiryHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *EnquiryHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *EnquiryHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitEnquiryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", getValidationErrorMessage(validationErrors[0]))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	requesterID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.SubmitEnquiry(h.createRequestContext(c, "/api/v1/enquiries"), &req, requesterID, metadata)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsInvalidClassType(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid class type", "INVALID_CLASS_TYPE", err.Error())
		case businessflow.IsEnquiryRateLimited(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Enquiry limit reached for this period", "ENQUIRY_RATE_LIMITED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit enquiry", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *EnquiryHandler) GetMatches(c fiber.Ctx) error {
	enquiryID, err := h.enquiryIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid enquiry ID", "INVALID_ENQUIRY_ID", nil)
	}

	requesterID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.GetMatches(h.createRequestContext(c, "/api/v1/enquiries/:id/matches"), enquiryID, requesterID)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsEnquiryNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "Enquiry not found", "ENQUIRY_NOT_FOUND", nil)
		case businessflow.IsEnquiryExpired(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Enquiry has expired", "ENQUIRY_EXPIRED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get matches", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *EnquiryHandler) RevealContact(c fiber.Ctx) error {
	enquiryID, err := h.enquiryIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid enquiry ID", "INVALID_ENQUIRY_ID", nil)
	}

	artistIDRaw, err := strconv.ParseUint(c.Params("artist_id"), 10, 64)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid artist ID", "INVALID_ARTIST_ID", nil)
	}

	requesterID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.RevealContact(h.createRequestContext(c, "/api/v1/enquiries/:id/reveal/:artist_id"), enquiryID, uint(artistIDRaw), requesterID)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		case businessflow.IsEnquiryNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "Enquiry not found", "ENQUIRY_NOT_FOUND", nil)
		case businessflow.IsEnquiryExpired(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Enquiry has expired", "ENQUIRY_EXPIRED", nil)
		case businessflow.IsArtistNotMatched(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Artist is not matched on this enquiry", "ARTIST_NOT_MATCHED", nil)
		case businessflow.IsContactAlreadyRevealed(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact has already been revealed", "CONTACT_ALREADY_REVEALED", nil)
		case businessflow.IsRevealQuotaExceeded(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact reveal quota exceeded", "REVEAL_QUOTA_EXCEEDED", nil)
		case businessflow.IsRevealConflict(err):
			return h.ErrorResponse(c, fiber.StatusConflict, "Concurrent reveal detected, retry", "REVEAL_CONFLICT", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reveal contact", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *EnquiryHandler) ListMine(c fiber.Ctx) error {
	requesterID, ok := c.Locals("profile_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile ID not found in context", "MISSING_PROFILE_ID", nil)
	}

	result, err := h.flow.ListMyEnquiries(h.createRequestContext(c, "/api/v1/enquiries"), requesterID)
	if err != nil {
		switch {
		case businessflow.IsProfileNotFound(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Profile not found", "PROFILE_NOT_FOUND", nil)
		case businessflow.IsAccountInactive(err):
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list enquiries", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *EnquiryHandler) enquiryIDParam(c fiber.Ctx) (uint, error) {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}

func (h *EnquiryHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
