package routes

import (
	"github.com/anjiri1684/workhub/handlers"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(api fiber.Router, h *handlers.UploadHandler) {
	api.Post("/documents", h.UploadDocuments)
	api.Post("/conversations/:conversationId/documents", h.UploadConversationDocuments)
}
