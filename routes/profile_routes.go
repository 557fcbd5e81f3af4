package routes

import (
	"github.com/anjiri1684/workhub/handlers"
	"github.com/gofiber/fiber/v2"
)

// ProfileRoutes covers onboarding of new colleagues.
func ProfileRoutes(api fiber.Router, h *handlers.OnboardingHandler) {
	api.Post("/onboarding", h.Onboard)
}
