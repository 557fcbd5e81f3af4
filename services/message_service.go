package services

import (
	"context"
	"math"
	"strings"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type MessageService struct {
	messages      MessageRepository
	conversations ConversationRepository
	clock         Clock
	logger        *log.Logger
}

func NewMessageService(messages MessageRepository, conversations ConversationRepository, clock Clock, logger *log.Logger) *MessageService {
	return &MessageService{
		messages:      messages,
		conversations: conversations,
		clock:         clock,
		logger:        logger.With("component", "messages"),
	}
}

// Append stores a new message at the end of the conversation's log.
func (s *MessageService) Append(ctx context.Context, conversationID, senderID, content string, attachments []string) (*models.Message, error) {
	if conversationID == "" {
		return nil, apperrors.ErrMissingConversation
	}
	if senderID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	attachments = models.UniqueMembers(attachments...)
	if strings.TrimSpace(content) == "" && len(attachments) == 0 {
		return nil, apperrors.ErrEmptyMessage
	}
	if _, err := s.conversations.FindByID(ctx, conversationID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Internal("generate message id", err)
	}
	msg := &models.Message{
		ID:             id.String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Attachments:    attachments,
		SentAt:         s.clock.Now(),
	}
	if len(msg.Attachments) == 0 {
		msg.Attachments = nil
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "messageService.Append")
	}
	// The message is stored; a failed touch only affects listing order.
	if err := s.conversations.Touch(ctx, conversationID, msg.SentAt); err != nil {
		s.logger.Warn("touch conversation", "conversation", conversationID, "err", err)
	}
	return msg, nil
}

// Page returns one page of the conversation newest first. Page p holds
// messages [p*pageSize, (p+1)*pageSize) counted from the most recent; a page
// past the end is empty.
func (s *MessageService) Page(ctx context.Context, conversationID string, page, pageSize int) ([]models.Message, error) {
	if conversationID == "" {
		return nil, apperrors.ErrMissingConversation
	}
	if page < 0 || pageSize <= 0 {
		return nil, apperrors.ErrInvalidPage
	}
	if _, err := s.conversations.FindByID(ctx, conversationID); err != nil {
		return nil, err
	}

	if int64(page) > math.MaxInt64/int64(pageSize) {
		return []models.Message{}, nil
	}
	messages, err := s.messages.Page(ctx, conversationID, int64(page)*int64(pageSize), int64(pageSize))
	if err != nil {
		return nil, errors.Wrap(err, "messageService.Page")
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
