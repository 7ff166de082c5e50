package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application depends on for
// correctness. The unique index on payments.transactionId is the storage-side
// idempotency guard: without it, two concurrent verifications of the same
// checkout session could both insert a payment record.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("payments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Non-unique lookup indexes for the hot query paths.
	_, err = db.Collection("applications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "scholarshipId", Value: 1}}},
		{Keys: bson.D{{Key: "appliedAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "scholarshipId", Value: 1}},
	})
	return err
}
