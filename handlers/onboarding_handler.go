package handlers

import (
	"fmt"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/services"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// OnboardingHandler creates an account for a new colleague, places them in
// a department and opens a direct conversation with whoever onboarded them.
type OnboardingHandler struct {
	Users         UserPeer
	Departments   DepartmentPeer
	Conversations *services.ConversationService
	Messages      *services.MessageService
	Logger        *log.Logger
}

type OnboardRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID string `json:"department_id"`
}

type StepResult struct {
	Done bool           `json:"done"`
	Kind apperrors.Kind `json:"kind,omitempty"`
}

type OnboardResponse struct {
	Account        *models.Account `json:"account"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Department     StepResult      `json:"department"`
	Welcome        StepResult      `json:"welcome"`
}

// Onboard fails only when the account cannot be created. Later steps are
// reported individually so the caller can retry them.
func (h *OnboardingHandler) Onboard(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req OnboardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()

	account, err := h.Users.CreateAccount(ctx, models.CreateAccountRequest{
		FullName:     req.FullName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	newUserID := account.UserID
	if newUserID == "" {
		newUserID = account.ID
	}
	resp := OnboardResponse{Account: account}

	if req.DepartmentID != "" {
		if err := h.Departments.AddUser(ctx, req.DepartmentID, newUserID); err != nil {
			h.Logger.Warn("onboarding: department assignment failed",
				"user_id", newUserID, "department_id", req.DepartmentID, "kind", apperrors.KindOf(err))
			resp.Department.Kind = apperrors.KindOf(err)
		} else {
			resp.Department.Done = true
		}
	}

	resp.Welcome = h.welcome(c, userID, newUserID, req.FullName, &resp.ConversationID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *OnboardingHandler) welcome(c *fiber.Ctx, fromID, toID, name string, conversationID *string) StepResult {
	if fromID == toID {
		return StepResult{}
	}
	conv, _, err := h.Conversations.CreateDirectOrReuse(c.UserContext(), fromID, toID)
	if err != nil {
		h.Logger.Warn("onboarding: welcome conversation failed", "user_id", toID, "err", err)
		return StepResult{Kind: apperrors.KindOf(err)}
	}
	*conversationID = conv.ID

	text := fmt.Sprintf("Welcome aboard, %s!", name)
	if _, err := h.Messages.Append(c.UserContext(), conv.ID, fromID, text, nil); err != nil {
		h.Logger.Warn("onboarding: welcome message failed", "conversation_id", conv.ID, "err", err)
		return StepResult{Kind: apperrors.KindOf(err)}
	}
	return StepResult{Done: true}
}
