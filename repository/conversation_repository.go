package repository

import (
	"context"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ConversationRepository struct {
	coll *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{coll: db.Collection(ConversationsCollection)}
}

// Insert stores a new conversation. A second DIRECT conversation for the same
// pair is rejected by the unique pair_key index and reported as CONFLICT.
func (r *ConversationRepository) Insert(ctx context.Context, conv *models.Conversation) error {
	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		if isPairConflict(err) {
			return errors.Wrap(apperrors.ErrDirectPairExists, "conversationRepo.Insert")
		}
		return errors.Wrap(err, "conversationRepo.Insert.InsertOne")
	}
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*models.Conversation, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, "conversationRepo.FindByID")
}

func (r *ConversationRepository) FindByMember(ctx context.Context, userID string) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "members", Value: userID}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "conversationRepo.FindByMember.Find")
	}
	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, errors.Wrap(err, "conversationRepo.FindByMember.All")
	}
	return conversations, nil
}

// FindDirect matches conversations whose members contain both ids. Only
// DIRECT conversations qualify and those have exactly two members, so the
// containment query is an exact pair match.
func (r *ConversationRepository) FindDirect(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	filter := bson.D{
		{Key: "type", Value: models.ConversationDirect},
		{Key: "members", Value: bson.D{{Key: "$all", Value: bson.A{userA, userB}}}},
	}
	return r.findOne(ctx, filter, "conversationRepo.FindDirect")
}

// AddMembers adds ids to a GROUP conversation's member set.
func (r *ConversationRepository) AddMembers(ctx context.Context, id string, userIDs []string, at time.Time) (*models.Conversation, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "type", Value: models.ConversationGroup},
	}
	update := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "members", Value: bson.D{{Key: "$each", Value: userIDs}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: at}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv models.Conversation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "conversationRepo.AddMembers.FindOneAndUpdate")
	}
	return &conv, nil
}

const duplicateKeyCode = 11000

// isPairConflict reports a duplicate key on the DIRECT pair index only. Other
// duplicate keys (an _id collision) are not a pair conflict.
func isPairConflict(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCodeWithMessage(duplicateKeyCode, DirectPairIndex)
}

// Touch moves updated_at forward to at. An older timestamp leaves it as is.
func (r *ConversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	update := bson.D{{Key: "$max", Value: bson.D{{Key: "updated_at", Value: at}}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return errors.Wrap(err, "conversationRepo.Touch.UpdateOne")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}

func (r *ConversationRepository) findOne(ctx context.Context, filter bson.D, op string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.coll.FindOne(ctx, filter).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, errors.Wrap(err, op)
	}
	return &conv, nil
}
