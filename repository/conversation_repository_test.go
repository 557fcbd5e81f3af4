package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func directConversation(a, b string) *models.Conversation {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.Conversation{
		ID:        uuid.NewString(),
		Type:      models.ConversationDirect,
		Members:   []string{a, b},
		PairKey:   models.PairKey(a, b),
		CreatedBy: a,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func groupConversation(name string, members ...string) *models.Conversation {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.Conversation{
		ID:        uuid.NewString(),
		Type:      models.ConversationGroup,
		Members:   members,
		Name:      name,
		CreatedBy: members[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestConversationRepository_FindDirect(t *testing.T) {
	requireMongo(t)
	repo := NewConversationRepository(testMongo)
	ctx := context.Background()

	conv := directConversation("alice", "bob")
	require.NoError(t, repo.Insert(ctx, conv))
	// A group with the same two people must never be mistaken for the DM.
	require.NoError(t, repo.Insert(ctx, groupConversation("pair group", "alice", "bob")))

	ab, err := repo.FindDirect(ctx, "alice", "bob")
	require.NoError(t, err)
	ba, err := repo.FindDirect(ctx, "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, conv.ID, ab.ID)
	assert.Equal(t, ab.ID, ba.ID)

	_, err = repo.FindDirect(ctx, "alice", "carol")
	assert.True(t, errors.Is(err, apperrors.ErrConversationNotFound))
}

func TestConversationRepository_UniquePair(t *testing.T) {
	requireMongo(t)
	repo := NewConversationRepository(testMongo)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, directConversation("alice", "bob")))
	err := repo.Insert(ctx, directConversation("bob", "alice"))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Groups carry no pair key and are never deduplicated.
	g1 := groupConversation("g1", "alice", "bob")
	require.NoError(t, repo.Insert(ctx, g1))
	require.NoError(t, repo.Insert(ctx, groupConversation("g2", "alice", "bob")))

	// Reusing an id is a duplicate key too, but not a pair conflict.
	again := groupConversation("g3", "carol", "dan")
	again.ID = g1.ID
	err = repo.Insert(ctx, again)
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
	assert.False(t, errors.Is(err, apperrors.ErrDirectPairExists))
	assert.NotEqual(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestConversationRepository_FindByMember(t *testing.T) {
	requireMongo(t)
	repo := NewConversationRepository(testMongo)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, directConversation("alice", "bob")))
	require.NoError(t, repo.Insert(ctx, groupConversation("ops", "alice", "carol", "dan")))
	require.NoError(t, repo.Insert(ctx, directConversation("carol", "dan")))

	convs, err := repo.FindByMember(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, convs, 2)

	convs, err = repo.FindByMember(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, convs)
	assert.Empty(t, convs)
}

func TestConversationRepository_TouchReordersListing(t *testing.T) {
	requireMongo(t)
	repo := NewConversationRepository(testMongo)
	ctx := context.Background()

	older := directConversation("alice", "bob")
	newer := groupConversation("ops", "alice", "carol")
	older.UpdatedAt = newer.UpdatedAt.Add(-time.Minute)
	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))

	convs, err := repo.FindByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, newer.ID, convs[0].ID)

	at := newer.UpdatedAt.Add(time.Second)
	require.NoError(t, repo.Touch(ctx, older.ID, at))
	// An older timestamp must not move it back.
	require.NoError(t, repo.Touch(ctx, older.ID, at.Add(-time.Hour)))

	convs, err = repo.FindByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, older.ID, convs[0].ID)
	assert.True(t, at.Equal(convs[0].UpdatedAt))

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(repo.Touch(ctx, "missing", at)))
}

func TestConversationRepository_AddMembers(t *testing.T) {
	requireMongo(t)
	repo := NewConversationRepository(testMongo)
	ctx := context.Background()

	group := groupConversation("ops", "alice", "bob")
	require.NoError(t, repo.Insert(ctx, group))

	updated, err := repo.AddMembers(ctx, group.ID, []string{"bob", "carol"}, time.Now().UTC())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, updated.Members)

	direct := directConversation("alice", "bob")
	require.NoError(t, repo.Insert(ctx, direct))
	_, err = repo.AddMembers(ctx, direct.ID, []string{"carol"}, time.Now().UTC())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	stored, err := repo.FindByID(ctx, direct.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Members, 2)
}
