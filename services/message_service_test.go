package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/logging"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	svc    *MessageService
	convID string
}

func newMessageFixture(t *testing.T) messageFixture {
	t.Helper()
	conversations := testutil.NewConversations()
	clock := NewClock()
	conv, _, err := NewConversationService(conversations, clock, logging.Discard()).
		CreateDirectOrReuse(context.Background(), "alice", "bob")
	require.NoError(t, err)
	return messageFixture{
		svc:    NewMessageService(testutil.NewMessages(), conversations, clock, logging.Discard()),
		convID: conv.ID,
	}
}

func TestMessagePaging(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	const total = 7
	for i := 0; i < total; i++ {
		_, err := f.svc.Append(ctx, f.convID, "alice", fmt.Sprintf("m%d", i), nil)
		require.NoError(t, err)
	}

	page, err := f.svc.Page(ctx, f.convID, 0, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, []string{"m6", "m5", "m4"}, contents(page))
	for i := 1; i < len(page); i++ {
		assert.True(t, page[i-1].SentAt.After(page[i].SentAt))
	}

	page, err = f.svc.Page(ctx, f.convID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"m0"}, contents(page))

	for _, tc := range []struct{ page, size int }{{3, 3}, {1, 7}, {100, 1}} {
		page, err := f.svc.Page(ctx, f.convID, tc.page, tc.size)
		require.NoError(t, err)
		assert.NotNil(t, page)
		assert.Empty(t, page, "page %d size %d", tc.page, tc.size)
	}
}

func TestMessagePageValidation(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	_, err := f.svc.Page(ctx, f.convID, -1, 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPage)
	_, err = f.svc.Page(ctx, f.convID, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPage)
	_, err = f.svc.Page(ctx, "missing", 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}

func TestMessagePageWithLargeSize(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	const total = 150
	for i := 0; i < total; i++ {
		_, err := f.svc.Append(ctx, f.convID, "bob", fmt.Sprintf("m%d", i), nil)
		require.NoError(t, err)
	}

	page, err := f.svc.Page(ctx, f.convID, 0, total)
	require.NoError(t, err)
	require.Len(t, page, total)
	assert.Equal(t, "m149", page[0].Content)
	assert.Equal(t, "m0", page[total-1].Content)

	page, err = f.svc.Page(ctx, f.convID, 1, total)
	require.NoError(t, err)
	assert.Empty(t, page)

	page, err = f.svc.Page(ctx, f.convID, 1, 120)
	require.NoError(t, err)
	require.Len(t, page, 30)
	assert.Equal(t, "m29", page[0].Content)
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	msg, err := f.svc.Append(ctx, f.convID, "alice", "", []string{"doc-1", "doc-1", "doc-2"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, []string{"doc-1", "doc-2"}, msg.Attachments)
	assert.False(t, msg.SentAt.IsZero())

	_, err = f.svc.Append(ctx, f.convID, "alice", "   ", nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	_, err = f.svc.Append(ctx, "missing", "alice", "hello", nil)
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = f.svc.Append(ctx, f.convID, "", "hello", nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingParticipantID)
}

func TestAppendMovesConversationToTop(t *testing.T) {
	ctx := context.Background()
	conversations := testutil.NewConversations()
	clock := NewClock()
	convSvc := NewConversationService(conversations, clock, logging.Discard())
	svc := NewMessageService(testutil.NewMessages(), conversations, clock, logging.Discard())

	older, _, err := convSvc.CreateDirectOrReuse(ctx, "alice", "bob")
	require.NoError(t, err)
	newer, err := convSvc.CreateGroup(ctx, "alice", []string{"carol"}, "ops")
	require.NoError(t, err)

	convs, err := convSvc.FindByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, newer.ID, convs[0].ID)

	msg, err := svc.Append(ctx, older.ID, "bob", "ping", nil)
	require.NoError(t, err)

	convs, err = convSvc.FindByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, older.ID, convs[0].ID)
	assert.Equal(t, msg.SentAt, convs[0].UpdatedAt)
}

func TestMessagesSentInSameInstantKeepOrder(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	conversations := testutil.NewConversations()
	clock := NewMonotonicClock(func() time.Time { return frozen })
	conv, err := NewConversationService(conversations, clock, logging.Discard()).
		CreateGroup(ctx, "alice", []string{"bob", "carol"}, "")
	require.NoError(t, err)
	svc := NewMessageService(testutil.NewMessages(), conversations, clock, logging.Discard())

	for _, c := range []string{"a", "b", "c"} {
		_, err := svc.Append(ctx, conv.ID, "alice", c, nil)
		require.NoError(t, err)
	}
	page, err := svc.Page(ctx, conv.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, contents(page))
}

func contents(msgs []models.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}
