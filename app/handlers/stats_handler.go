package handlers

import (
	"context"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/gofiber/fiber/v3"
)

// StatsHandlerInterface defines the contract for public stats handlers
type StatsHandlerInterface interface {
	PlatformStats(c fiber.Ctx) error
}

// StatsHandler serves public platform counters
type StatsHandler struct {
	flow businessflow.StatsFlow
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(flow businessflow.StatsFlow) *StatsHandler {
	return &StatsHandler{flow: flow}
}

func (h *StatsHandler) PlatformStats(c fiber.Ctx) error {
	result, err := h.flow.PlatformStats(h.createRequestContext(c, "/api/v1/stats"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load stats",
			Error:   dto.ErrorDetail{Code: "INTERNAL_ERROR"},
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: result.Message,
		Data:    result,
	})
}

func (h *StatsHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}
