package handlers

import (
	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	Reports *services.ReportService
	Tasks   TaskPeer
}

type PublishReportRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	FileRef     string   `json:"file_ref" validate:"required"`
	TaskID      *string  `json:"task_id,omitempty"`
	ReceiverIDs []string `json:"receiver_ids"`
}

// PublishReport distributes a report. A task_id, when given, must name a
// task the task service knows.
func (h *ReportHandler) PublishReport(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req PublishReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.TaskID != nil && *req.TaskID != "" {
		if _, err := h.Tasks.GetTask(c.UserContext(), *req.TaskID); err != nil {
			return peerNotFound(err, "Task not found")
		}
	} else {
		req.TaskID = nil
	}

	report, err := h.Reports.Publish(c.UserContext(), services.PublishReport{
		Title:       req.Title,
		FileRef:     req.FileRef,
		TaskID:      req.TaskID,
		CreatedBy:   userID,
		ReceiverIDs: req.ReceiverIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReport is visible to the author and to the receivers.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	reportID, err := reportIDParam(c)
	if err != nil {
		return err
	}
	report, err := h.Reports.Get(c.UserContext(), reportID)
	if err != nil {
		return err
	}

	allowed := report.CreatedBy == userID
	for _, r := range report.Receivers {
		if r.ReceiverID == userID {
			allowed = true
		}
	}
	if !allowed {
		return fiber.NewError(fiber.StatusForbidden, "You do not have access to this report")
	}
	return c.JSON(report)
}

func (h *ReportHandler) ListReceivedReports(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	list := h.Reports.ListForReceiver
	if c.QueryBool("unread", false) {
		list = h.Reports.ListUnreadForReceiver
	}
	rows, err := list(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (h *ReportHandler) MarkReportRead(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	reportID, err := reportIDParam(c)
	if err != nil {
		return err
	}
	row, err := h.Reports.MarkRead(c.UserContext(), reportID, userID)
	if err != nil {
		return err
	}
	return c.JSON(row)
}

func reportIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("Invalid report ID")
	}
	return id, nil
}
