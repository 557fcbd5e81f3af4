package routes

import (
	"github.com/anjiri1684/workhub/handlers"
	"github.com/anjiri1684/workhub/middleware"
	"github.com/anjiri1684/workhub/relay"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Messaging  *handlers.MessagingHandler
	Uploads    *handlers.UploadHandler
	Reports    *handlers.ReportHandler
	Onboarding *handlers.OnboardingHandler
}

// Register mounts every API route under /api/v1. All of them require a
// bearer token carrying a user_id claim; the header is captured for
// relaying to peer services.
func Register(app *fiber.App, jwtSecret string, h Handlers) {
	PublicRoutes(app)

	api := app.Group("/api/v1", middleware.Protected(jwtSecret), middleware.RequireCaller(), relay.Capture())
	MessagingRoutes(api, h.Messaging)
	UploadRoutes(api, h.Uploads)
	ReportRoutes(api, h.Reports)
	ProfileRoutes(api, h.Onboarding)
}
