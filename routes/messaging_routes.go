package routes

import (
	"github.com/anjiri1684/workhub/handlers"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(api fiber.Router, h *handlers.MessagingHandler) {
	conversations := api.Group("/conversations")
	conversations.Get("", h.GetUserConversations)
	conversations.Post("/direct", h.CreateOrGetDirectConversation)
	conversations.Post("/group", h.CreateGroupConversation)
	conversations.Get("/:conversationId", h.GetConversation)
	conversations.Post("/:conversationId/members", h.AddMembers)
	conversations.Get("/:conversationId/messages", h.GetConversationMessages)
	conversations.Post("/:conversationId/messages", h.SendMessage)

	api.Post("/projects/:projectId/conversation", h.CreateProjectConversation)
	api.Post("/departments/:departmentId/conversation", h.CreateDepartmentConversation)
}
