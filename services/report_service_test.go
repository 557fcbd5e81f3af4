package services

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/logging"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/services/mocks"
	"github.com/anjiri1684/workhub/testutil"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestPublishCollapsesDuplicateReceivers(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewReportService(repo, fixedClock{now}, logging.Discard())

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report *models.Report) error {
			require.Len(t, report.Receivers, 2)
			assert.Equal(t, "u1", report.Receivers[0].ReceiverID)
			assert.Equal(t, "u2", report.Receivers[1].ReceiverID)
			for _, r := range report.Receivers {
				assert.Equal(t, report.ID, r.ReportID)
				assert.False(t, r.IsRead)
				assert.Nil(t, r.ReadAt)
			}
			assert.Equal(t, now, report.CreatedAt)
			return nil
		})

	report, err := svc.Publish(context.Background(), PublishReport{
		Title:       "Q1",
		FileRef:     "doc-7",
		CreatedBy:   "manager",
		ReceiverIDs: []string{"u1", "u2", "u1"},
	})
	require.NoError(t, err)
	assert.Len(t, report.Receivers, 2)
}

func TestPublishValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(repo, NewClock(), logging.Discard())
	ctx := context.Background()

	tests := []struct {
		name string
		in   PublishReport
		want error
	}{
		{"no receivers", PublishReport{Title: "t", FileRef: "f", CreatedBy: "m"}, apperrors.ErrEmptyReceiverList},
		{"blank receivers", PublishReport{Title: "t", FileRef: "f", CreatedBy: "m", ReceiverIDs: []string{"", ""}}, apperrors.ErrEmptyReceiverList},
		{"no creator", PublishReport{Title: "t", FileRef: "f", ReceiverIDs: []string{"u1"}}, apperrors.ErrMissingParticipantID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Publish(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.Publish(ctx, PublishReport{FileRef: "f", CreatedBy: "m", ReceiverIDs: []string{"u1"}})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestPublishSurfacesStoreConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(repo, NewClock(), logging.Discard())

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrDuplicateReceiver)

	_, err := svc.Publish(context.Background(), PublishReport{
		Title: "t", FileRef: "f", CreatedBy: "m", ReceiverIDs: []string{"u1"},
	})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestMarkReadPassesClockTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	svc := NewReportService(repo, fixedClock{now}, logging.Discard())
	reportID := uuid.New()

	repo.EXPECT().
		MarkRead(gomock.Any(), reportID, "u1", now).
		Return(&models.ReportReceiver{ReportID: reportID, ReceiverID: "u1", IsRead: true, ReadAt: &now}, nil)

	row, err := svc.MarkRead(context.Background(), reportID, "u1")
	require.NoError(t, err)
	assert.True(t, row.IsRead)

	_, err = svc.MarkRead(context.Background(), reportID, "")
	assert.ErrorIs(t, err, apperrors.ErrMissingParticipantID)
}

func TestUnreadOlderThanUsesCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	now := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)
	svc := NewReportService(repo, fixedClock{now}, logging.Discard())

	repo.EXPECT().ListUnreadBefore(gomock.Any(), now.Add(-24*time.Hour)).Return(nil, nil)

	_, err := svc.UnreadOlderThan(context.Background(), 24*time.Hour)
	require.NoError(t, err)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	readings := []time.Time{first, first, first.Add(time.Hour), first.Add(2 * time.Hour)}
	i := 0
	clock := NewMonotonicClock(func() time.Time {
		now := readings[i]
		i++
		return now
	})
	svc := NewReportService(testutil.NewReports(), clock, logging.Discard())

	report, err := svc.Publish(ctx, PublishReport{
		Title: "weekly", FileRef: "doc-1", CreatedBy: "m", ReceiverIDs: []string{"u1", "u2"},
	})
	require.NoError(t, err)

	row, err := svc.MarkRead(ctx, report.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, row.ReadAt)
	readAt := *row.ReadAt

	again, err := svc.MarkRead(ctx, report.ID, "u1")
	require.NoError(t, err)
	assert.True(t, again.IsRead)
	assert.Equal(t, readAt, *again.ReadAt)

	unread, err := svc.ListUnreadForReceiver(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, unread)

	unread, err = svc.ListUnreadForReceiver(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	all, err := svc.ListForReceiver(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.MarkRead(ctx, report.ID, "stranger")
	assert.ErrorIs(t, err, apperrors.ErrReceiverNotFound)
}
