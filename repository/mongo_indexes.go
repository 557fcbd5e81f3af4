package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ConversationsCollection = "conversations"
	MessagesCollection      = "messages"

	DirectPairIndex = "unique_direct_pair"
)

// EnsureMongoIndexes creates the indexes the stores rely on. The pair_key
// index is what keeps DIRECT conversations unique per member pair.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		ConversationsCollection: {
			{Keys: bson.D{{Key: "members", Value: 1}, {Key: "updated_at", Value: -1}}},
			{
				Keys: bson.D{{Key: "pair_key", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName(DirectPairIndex).
					SetPartialFilterExpression(bson.D{{Key: "pair_key", Value: bson.D{{Key: "$exists", Value: true}}}}),
			},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return errors.Wrapf(err, "repository.EnsureMongoIndexes(%s)", name)
		}
	}
	return nil
}
