package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collection names used by the Mongo store.
const (
	CollectionTransactions          = "transactions"
	CollectionDebts                 = "debts"
	CollectionRecurringTransactions = "recurring_transactions"
	CollectionCategories            = "categories"
)

// MongoStore counts documents keyed by a string user_id field.
// A document is soft-deleted when deleted_at is set to a non-null value.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore returns a Store backed by MongoDB.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("usage: mongo database is required")
	}
	return &MongoStore{db: db}
}

// ownedBy matches the user's documents that are not soft-deleted.
// {deleted_at: null} matches both a missing field and an explicit null.
func ownedBy(userID uuid.UUID, extra ...bson.E) bson.D {
	filter := bson.D{
		{Key: "user_id", Value: userID.String()},
		{Key: "deleted_at", Value: nil},
	}
	return append(filter, extra...)
}

func (s *MongoStore) CountTransactions(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	return s.db.Collection(CollectionTransactions).CountDocuments(ctx, transactionsFilter(userID, from, to))
}

func (s *MongoStore) CountDebts(ctx context.Context, userID uuid.UUID, statuses []DebtStatus) (int64, error) {
	return s.db.Collection(CollectionDebts).CountDocuments(ctx, debtsFilter(userID, statuses))
}

func (s *MongoStore) CountRecurringTransactions(ctx context.Context, userID uuid.UUID, includePaused bool) (int64, error) {
	return s.db.Collection(CollectionRecurringTransactions).CountDocuments(ctx, recurringFilter(userID, includePaused))
}

func (s *MongoStore) CountCustomCategories(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.db.Collection(CollectionCategories).CountDocuments(ctx, categoriesFilter(userID))
}

func transactionsFilter(userID uuid.UUID, from, to time.Time) bson.D {
	return ownedBy(userID, bson.E{Key: "date", Value: bson.D{
		{Key: "$gte", Value: from},
		{Key: "$lt", Value: to},
	}})
}

func debtsFilter(userID uuid.UUID, statuses []DebtStatus) bson.D {
	raw := make(bson.A, 0, len(statuses))
	for _, st := range statuses {
		raw = append(raw, string(st))
	}
	return ownedBy(userID, bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: raw}}})
}

func recurringFilter(userID uuid.UUID, includePaused bool) bson.D {
	if includePaused {
		return ownedBy(userID)
	}
	return ownedBy(userID, bson.E{Key: "is_active", Value: true})
}

func categoriesFilter(userID uuid.UUID) bson.D {
	return ownedBy(userID, bson.E{Key: "is_system", Value: bson.D{{Key: "$ne", Value: true}}})
}
