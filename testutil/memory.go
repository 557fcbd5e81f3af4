// Package testutil holds in-memory stores with the same contracts as the
// MongoDB and PostgreSQL repositories, for service and handler tests.
package testutil

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/google/uuid"
)

type Conversations struct {
	mu    sync.Mutex
	byID  map[string]models.Conversation
	pairs map[string]string
}

func NewConversations() *Conversations {
	return &Conversations{byID: map[string]models.Conversation{}, pairs: map[string]string{}}
}

func (s *Conversations) Insert(_ context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv.PairKey != "" {
		if _, exists := s.pairs[conv.PairKey]; exists {
			return apperrors.ErrDirectPairExists
		}
		s.pairs[conv.PairKey] = conv.ID
	}
	s.byID[conv.ID] = cloneConversation(*conv)
	return nil
}

func (s *Conversations) FindByID(_ context.Context, id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	out := cloneConversation(conv)
	return &out, nil
}

func (s *Conversations) FindByMember(_ context.Context, userID string) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Conversation{}
	for _, conv := range s.byID {
		if conv.HasMember(userID) {
			out = append(out, cloneConversation(conv))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Conversations) FindDirect(_ context.Context, userA, userB string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.byID {
		if conv.IsDirect() && conv.HasMember(userA) && conv.HasMember(userB) {
			out := cloneConversation(conv)
			return &out, nil
		}
	}
	return nil, apperrors.ErrConversationNotFound
}

func (s *Conversations) AddMembers(_ context.Context, id string, userIDs []string, at time.Time) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byID[id]
	if !ok || conv.Type != models.ConversationGroup {
		return nil, apperrors.ErrConversationNotFound
	}
	conv.Members = models.UniqueMembers(append(conv.Members, userIDs...)...)
	conv.UpdatedAt = at
	s.byID[id] = conv
	out := cloneConversation(conv)
	return &out, nil
}

func (s *Conversations) Touch(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byID[id]
	if !ok {
		return apperrors.ErrConversationNotFound
	}
	if at.After(conv.UpdatedAt) {
		conv.UpdatedAt = at
		s.byID[id] = conv
	}
	return nil
}

// Count returns how many stored conversations match the type.
func (s *Conversations) Count(t models.ConversationType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, conv := range s.byID {
		if conv.Type == t {
			n++
		}
	}
	return n
}

func cloneConversation(c models.Conversation) models.Conversation {
	c.Members = slices.Clone(c.Members)
	return c
}

type Messages struct {
	mu   sync.Mutex
	rows []models.Message
}

func NewMessages() *Messages { return &Messages{} }

func (s *Messages) Insert(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *msg)
	return nil
}

func (s *Messages) Page(_ context.Context, conversationID string, skip, limit int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Message
	for _, m := range s.rows {
		if m.ConversationID == conversationID {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].SentAt.Equal(matched[j].SentAt) {
			return matched[i].SentAt.After(matched[j].SentAt)
		}
		return matched[i].ID > matched[j].ID
	})
	out := []models.Message{}
	if skip >= int64(len(matched)) {
		return out, nil
	}
	end := skip + limit
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return append(out, matched[skip:end]...), nil
}

type Reports struct {
	mu      sync.Mutex
	reports map[uuid.UUID]models.Report
}

func NewReports() *Reports { return &Reports{reports: map[uuid.UUID]models.Report{}} }

func (s *Reports) Create(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	for _, r := range report.Receivers {
		if seen[r.ReceiverID] {
			return apperrors.ErrDuplicateReceiver
		}
		seen[r.ReceiverID] = true
	}
	stored := *report
	stored.Receivers = slices.Clone(report.Receivers)
	s.reports[report.ID] = stored
	return nil
}

func (s *Reports) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, apperrors.ErrReportNotFound
	}
	report.Receivers = slices.Clone(report.Receivers)
	return &report, nil
}

func (s *Reports) MarkRead(_ context.Context, reportID uuid.UUID, receiverID string, at time.Time) (*models.ReportReceiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[reportID]
	if !ok {
		return nil, apperrors.ErrReceiverNotFound
	}
	for i := range report.Receivers {
		r := &report.Receivers[i]
		if r.ReceiverID != receiverID {
			continue
		}
		if !r.IsRead {
			readAt := at
			r.IsRead = true
			r.ReadAt = &readAt
		}
		out := *r
		return &out, nil
	}
	return nil, apperrors.ErrReceiverNotFound
}

func (s *Reports) ListForReceiver(_ context.Context, receiverID string, unreadOnly bool) ([]models.ReportReceiver, error) {
	return s.list(func(r models.ReportReceiver, _ models.Report) bool {
		return r.ReceiverID == receiverID && (!unreadOnly || !r.IsRead)
	}), nil
}

func (s *Reports) ListUnreadBefore(_ context.Context, cutoff time.Time) ([]models.ReportReceiver, error) {
	return s.list(func(r models.ReportReceiver, report models.Report) bool {
		return !r.IsRead && report.CreatedAt.Before(cutoff)
	}), nil
}

func (s *Reports) list(keep func(models.ReportReceiver, models.Report) bool) []models.ReportReceiver {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ReportReceiver{}
	for _, report := range s.reports {
		for _, r := range report.Receivers {
			if keep(r, report) {
				parent := report
				parent.Receivers = nil
				r.Report = &parent
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Report.CreatedAt.Equal(out[j].Report.CreatedAt) {
			return out[i].Report.CreatedAt.After(out[j].Report.CreatedAt)
		}
		return out[i].ReceiverID < out[j].ReceiverID
	})
	return out
}
