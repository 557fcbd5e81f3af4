package repository

import (
	"context"

	"github.com/anjiri1684/workhub/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(MessagesCollection)}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *models.Message) error {
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return errors.Wrap(err, "messageRepo.Insert.InsertOne")
	}
	return nil
}

// Page returns up to limit messages newest first, skipping the first skip.
func (r *MessageRepository) Page(ctx context.Context, conversationID string, skip, limit int64) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.D{{Key: "conversation_id", Value: conversationID}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.Page.Find")
	}
	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, errors.Wrap(err, "messageRepo.Page.All")
	}
	return messages, nil
}
