package repository

import (
	"context"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts the report and all of its receiver rows in one transaction.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(report).Error; err != nil {
			return errors.Wrap(err, "reportRepo.Create.Report")
		}
		if len(report.Receivers) == 0 {
			return nil
		}
		for i := range report.Receivers {
			report.Receivers[i].ReportID = report.ID
		}
		if err := tx.Create(&report.Receivers).Error; err != nil {
			return errors.Wrap(err, "reportRepo.Create.Receivers")
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(apperrors.ErrDuplicateReceiver, err.Error())
	}
	return err
}

func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("Receivers", func(db *gorm.DB) *gorm.DB { return db.Order("receiver_id") }).
		First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, errors.Wrap(err, "reportRepo.FindByID")
	}
	return &report, nil
}

// MarkRead flips one receiver row to read. The update only matches unread
// rows, so a repeated call keeps the first read_at.
func (r *ReportRepository) MarkRead(ctx context.Context, reportID uuid.UUID, receiverID string, at time.Time) (*models.ReportReceiver, error) {
	db := r.db.WithContext(ctx)
	err := db.Model(&models.ReportReceiver{}).
		Where("report_id = ? AND receiver_id = ? AND is_read = ?", reportID, receiverID, false).
		Updates(map[string]any{"is_read": true, "read_at": at}).Error
	if err != nil {
		return nil, errors.Wrap(err, "reportRepo.MarkRead.Update")
	}

	var receiver models.ReportReceiver
	if err := db.Where("report_id = ? AND receiver_id = ?", reportID, receiverID).First(&receiver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReceiverNotFound
		}
		return nil, errors.Wrap(err, "reportRepo.MarkRead.First")
	}
	return &receiver, nil
}

func (r *ReportRepository) ListForReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]models.ReportReceiver, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN reports ON reports.id = report_receivers.report_id").
		Preload("Report").
		Where("report_receivers.receiver_id = ?", receiverID)
	if unreadOnly {
		query = query.Where("report_receivers.is_read = ?", false)
	}

	receivers := []models.ReportReceiver{}
	if err := query.Order("reports.created_at DESC").Find(&receivers).Error; err != nil {
		return nil, errors.Wrap(err, "reportRepo.ListForReceiver")
	}
	return receivers, nil
}

// ListUnreadBefore returns unread rows of reports published before cutoff.
func (r *ReportRepository) ListUnreadBefore(ctx context.Context, cutoff time.Time) ([]models.ReportReceiver, error) {
	receivers := []models.ReportReceiver{}
	err := r.db.WithContext(ctx).
		Joins("JOIN reports ON reports.id = report_receivers.report_id").
		Preload("Report").
		Where("report_receivers.is_read = ? AND reports.created_at < ?", false, cutoff).
		Order("report_receivers.receiver_id, reports.created_at").
		Find(&receivers).Error
	if err != nil {
		return nil, errors.Wrap(err, "reportRepo.ListUnreadBefore")
	}
	return receivers, nil
}
