// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/app/services"
	businessflow "github.com/chitrakalakar/backend/business_flow"
	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware validates bearer tokens and resolves them to local profiles
type AuthMiddleware struct {
	tokenService services.TokenService
	profileFlow  businessflow.ProfileFlow
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, profileFlow businessflow.ProfileFlow) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		profileFlow:  profileFlow,
	}
}

// Authenticate validates the bearer token and loads the caller's profile.
// First-time subjects get a plain user profile provisioned on the spot.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authorization header is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_AUTHORIZATION_HEADER",
				},
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Error: dto.ErrorDetail{
					Code: "INVALID_AUTHORIZATION_FORMAT",
				},
			})
		}

		// Extract the token (remove "Bearer " prefix)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Access token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_ACCESS_TOKEN",
				},
			})
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			var errorCode string
			var message string

			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenInvalid) {
				errorCode = "TOKEN_INVALID"
				message = "Invalid access token"
			} else {
				errorCode = "TOKEN_VALIDATION_FAILED"
				message = "Token validation failed"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		profile, err := m.profileFlow.GetOrCreateBySubject(ctx, claims.Subject, claims.Email, "")
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Failed to resolve account",
				Error: dto.ErrorDetail{
					Code: "PROFILE_RESOLUTION_FAILED",
				},
			})
		}
		if !utils.IsTrue(profile.IsActive) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Account is inactive",
				Error: dto.ErrorDetail{
					Code: "ACCOUNT_INACTIVE",
				},
			})
		}

		// Store profile information in context for downstream handlers
		c.Locals("profile_id", profile.ID)
		c.Locals("profile_uuid", profile.UUID.String())
		c.Locals("role", profile.Role)
		c.Locals("is_approved", utils.IsTrue(profile.IsApproved))

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// RequireCapability gates a route on a role capability predicate. It assumes
// Authenticate already ran; missing role context is treated as unauthorized.
func RequireCapability(allowed func(models.Role) bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Role not found in context",
				Error: dto.ErrorDetail{
					Code: "MISSING_ROLE",
				},
			})
		}
		if !allowed(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Insufficient privileges",
				Error: dto.ErrorDetail{
					Code: "ROLE_NOT_ALLOWED",
				},
			})
		}
		return c.Next()
	}
}
