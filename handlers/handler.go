package handlers

import (
	"context"
	"errors"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/middleware"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/peers"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Peer surfaces the handlers depend on. The clients in package peers
// implement them.

type UserPeer interface {
	GetUser(ctx context.Context, userID string) (*models.UserProfile, error)
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error)
}

type DepartmentPeer interface {
	GetDepartment(ctx context.Context, departmentID string) (*models.Department, error)
	AddUser(ctx context.Context, departmentID, userID string) error
}

type ProjectPeer interface {
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
}

type TaskPeer interface {
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
}

type DocumentPeer interface {
	UploadDocuments(ctx context.Context, files []peers.File) ([]models.Document, error)
	UploadForConversation(ctx context.Context, conversationID string, files []peers.File) ([]models.Document, error)
}

// parseBody decodes and validates the request body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.Validation("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

func callerID(c *fiber.Ctx) (string, error) {
	id, ok := middleware.CallerID(c)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

// peerNotFound turns a peer's 404 into a local NOT_FOUND so the client sees
// the missing resource rather than a gateway failure.
func peerNotFound(err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindPeerRejected && appErr.Status == fiber.StatusNotFound {
		return apperrors.Wrap(apperrors.KindNotFound, msg, err)
	}
	return err
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindPeerUnavailable, apperrors.KindPeerRejected, apperrors.KindPeerFaulted:
		return fiber.StatusBadGateway
	case apperrors.KindTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a handler as
// {"status":"error","code":..,"kind":..,"message":..}.
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		kind := apperrors.KindInternal
		message := "Internal server error"

		var fiberErr *fiber.Error
		var appErr *apperrors.AppError
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
			kind = ""
		case errors.As(err, &appErr):
			kind = appErr.Kind
			code = statusFor(kind)
			message = appErr.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", "err", err, "path", c.Path(), "method", c.Method(), "kind", kind)
		} else {
			logger.Debug("request rejected", "err", err, "path", c.Path(), "method", c.Method())
		}

		body := fiber.Map{
			"status":  "error",
			"code":    code,
			"message": message,
		}
		if kind != "" {
			body["kind"] = kind
		}
		return c.Status(code).JSON(body)
	}
}
