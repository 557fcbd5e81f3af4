package services

import (
	"context"
	"strings"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type PublishReport struct {
	Title       string
	FileRef     string
	TaskID      *string
	CreatedBy   string
	ReceiverIDs []string
}

type ReportService struct {
	repo   ReportRepository
	clock  Clock
	logger *log.Logger
}

func NewReportService(repo ReportRepository, clock Clock, logger *log.Logger) *ReportService {
	return &ReportService{repo: repo, clock: clock, logger: logger.With("component", "reports")}
}

// Publish stores the report together with one unread row per distinct
// receiver.
func (s *ReportService) Publish(ctx context.Context, in PublishReport) (*models.Report, error) {
	receivers := models.UniqueMembers(in.ReceiverIDs...)
	if len(receivers) == 0 {
		return nil, apperrors.ErrEmptyReceiverList
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.FileRef) == "" {
		return nil, apperrors.Validation("title and file_ref are required")
	}
	if in.CreatedBy == "" {
		return nil, apperrors.ErrMissingParticipantID
	}

	report := &models.Report{
		ID:        uuid.New(),
		Title:     in.Title,
		FileRef:   in.FileRef,
		TaskID:    in.TaskID,
		CreatedBy: in.CreatedBy,
		CreatedAt: s.clock.Now(),
		Receivers: make([]models.ReportReceiver, 0, len(receivers)),
	}
	for _, id := range receivers {
		report.Receivers = append(report.Receivers, models.ReportReceiver{
			ID:         uuid.New(),
			ReportID:   report.ID,
			ReceiverID: id,
		})
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("report published", "report_id", report.ID, "receivers", len(receivers))
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	return s.repo.FindByID(ctx, reportID)
}

// MarkRead is idempotent: an already read row keeps its original read time.
func (s *ReportService) MarkRead(ctx context.Context, reportID uuid.UUID, receiverID string) (*models.ReportReceiver, error) {
	if receiverID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	return s.repo.MarkRead(ctx, reportID, receiverID, s.clock.Now())
}

func (s *ReportService) ListForReceiver(ctx context.Context, receiverID string) ([]models.ReportReceiver, error) {
	if receiverID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	return s.repo.ListForReceiver(ctx, receiverID, false)
}

func (s *ReportService) ListUnreadForReceiver(ctx context.Context, receiverID string) ([]models.ReportReceiver, error) {
	if receiverID == "" {
		return nil, apperrors.ErrMissingParticipantID
	}
	return s.repo.ListForReceiver(ctx, receiverID, true)
}

// UnreadOlderThan lists unread rows of reports published more than age ago.
func (s *ReportService) UnreadOlderThan(ctx context.Context, age time.Duration) ([]models.ReportReceiver, error) {
	return s.repo.ListUnreadBefore(ctx, s.clock.Now().Add(-age))
}
