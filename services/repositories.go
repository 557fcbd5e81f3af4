package services

import (
	"context"
	"time"

	"github.com/anjiri1684/workhub/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks . ReportRepository

// Lookups report a missing row as a NOT_FOUND apperror. ConversationRepository
// implementations must reject a second DIRECT conversation for the same pair
// with a CONFLICT error.

type ConversationRepository interface {
	Insert(ctx context.Context, conv *models.Conversation) error
	FindByID(ctx context.Context, id string) (*models.Conversation, error)
	FindByMember(ctx context.Context, userID string) ([]models.Conversation, error)
	FindDirect(ctx context.Context, userA, userB string) (*models.Conversation, error)
	AddMembers(ctx context.Context, id string, userIDs []string, at time.Time) (*models.Conversation, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type MessageRepository interface {
	Insert(ctx context.Context, msg *models.Message) error
	Page(ctx context.Context, conversationID string, skip, limit int64) ([]models.Message, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	MarkRead(ctx context.Context, reportID uuid.UUID, receiverID string, at time.Time) (*models.ReportReceiver, error)
	ListForReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]models.ReportReceiver, error)
	ListUnreadBefore(ctx context.Context, cutoff time.Time) ([]models.ReportReceiver, error)
}
