package routes

import (
	"github.com/anjiri1684/workhub/handlers"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(api fiber.Router, h *handlers.ReportHandler) {
	reports := api.Group("/reports")
	reports.Post("", h.PublishReport)
	reports.Get("/received", h.ListReceivedReports)
	reports.Get("/:reportId", h.GetReport)
	reports.Post("/:reportId/read", h.MarkReportRead)
}
