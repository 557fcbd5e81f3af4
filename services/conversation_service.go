package services

import (
	"context"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type ConversationService struct {
	repo   ConversationRepository
	clock  Clock
	logger *log.Logger
}

func NewConversationService(repo ConversationRepository, clock Clock, logger *log.Logger) *ConversationService {
	return &ConversationService{repo: repo, clock: clock, logger: logger.With("component", "conversations")}
}

func (s *ConversationService) Get(ctx context.Context, id string) (*models.Conversation, error) {
	if id == "" {
		return nil, apperrors.ErrMissingConversation
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ConversationService) FindByMember(ctx context.Context, userID string) ([]models.Conversation, error) {
	if userID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	return s.repo.FindByMember(ctx, userID)
}

func (s *ConversationService) FindDirect(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	if userA == "" || userB == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	if userA == userB {
		return nil, apperrors.ErrSelfConversation
	}
	return s.repo.FindDirect(ctx, userA, userB)
}

// CreateDirectOrReuse returns the DIRECT conversation between the two users,
// creating it if needed. created reports whether this call stored it.
//
// Two concurrent callers may both miss the lookup; the store's unique pair
// key lets exactly one insert through and the other re-reads the winner.
func (s *ConversationService) CreateDirectOrReuse(ctx context.Context, userA, userB string) (conv *models.Conversation, created bool, err error) {
	existing, err := s.FindDirect(ctx, userA, userB)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, false, err
	}

	now := s.clock.Now()
	conv = &models.Conversation{
		ID:        uuid.NewString(),
		Type:      models.ConversationDirect,
		Members:   []string{userA, userB},
		PairKey:   models.PairKey(userA, userB),
		CreatedBy: userA,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.repo.Insert(ctx, conv)
	if err == nil {
		s.logger.Info("direct conversation created", "conversation_id", conv.ID)
		return conv, true, nil
	}
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		return nil, false, err
	}

	winner, err := s.repo.FindDirect(ctx, userA, userB)
	if err != nil {
		return nil, false, err
	}
	s.logger.Debug("direct conversation created concurrently, reusing", "conversation_id", winner.ID)
	return winner, false, nil
}

// CreateGroup always stores a new GROUP conversation. The creator is always a
// member.
func (s *ConversationService) CreateGroup(ctx context.Context, creatorID string, memberIDs []string, name string) (*models.Conversation, error) {
	if creatorID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	members := models.UniqueMembers(append([]string{creatorID}, memberIDs...)...)
	if len(members) < 2 {
		return nil, apperrors.ErrGroupTooSmall
	}

	now := s.clock.Now()
	conv := &models.Conversation{
		ID:        uuid.NewString(),
		Type:      models.ConversationGroup,
		Members:   members,
		Name:      name,
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, conv); err != nil {
		return nil, err
	}
	s.logger.Info("group conversation created", "conversation_id", conv.ID, "members", len(members))
	return conv, nil
}

func (s *ConversationService) AddMembers(ctx context.Context, conversationID string, userIDs []string) (*models.Conversation, error) {
	ids := models.UniqueMembers(userIDs...)
	if len(ids) == 0 {
		return nil, apperrors.ErrEmptyMemberList
	}
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.IsDirect() {
		return nil, apperrors.ErrDirectMembership
	}
	return s.repo.AddMembers(ctx, conversationID, ids, s.clock.Now())
}
