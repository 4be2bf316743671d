package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
}

// HandleGetProfile retrieves the authenticated user's profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	profile, err := h.service.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(profile)
}

// HandleUpdateProfile replaces the authenticated user's profile fields.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var profile models.Profile
	if err := c.BodyParser(&profile); err != nil {
		log.Printf("Error parsing profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
		})
	}

	if err := h.service.UpdateProfile(userID, &profile); err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(profile)
}
