package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// EnsureIndexes makes the user field the unique key of the dashboards collection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "create dashboard indexes")
}

// CreateRecord creates an empty dashboard for the user; an existing one is left untouched.
func (s *MongoStore) CreateRecord(ctx context.Context, userID string) error {
	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"user": userID},
		bson.M{"$setOnInsert": bson.M{
			"revenues":    bson.A{},
			"receivables": bson.A{},
			"expenses":    bson.A{},
		}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "create dashboard record")
}

func (s *MongoStore) Overview(ctx context.Context, userID string, filter PeriodFilter) ([]OverviewTotals, error) {
	cursor, err := s.collection.Aggregate(ctx, overviewPipeline(userID, filter))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate overview")
	}
	defer cursor.Close(ctx)

	rows := make([]OverviewTotals, 0, 1)
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode overview")
	}
	return rows, nil
}

func (s *MongoStore) Charts(ctx context.Context, userID string, filter RangeFilter, now time.Time) ([]ChartBundle, error) {
	cursor, err := s.collection.Aggregate(ctx, chartsPipeline(userID, filter, newChartLayout(now)))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate charts")
	}
	defer cursor.Close(ctx)

	rows := make([]ChartBundle, 0, 1)
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode charts")
	}
	return rows, nil
}

func (s *MongoStore) AppendRevenue(ctx context.Context, userID string, entry RevenueEntry) (*Record, error) {
	return s.addToSet(ctx, userID, "revenues", entry)
}

func (s *MongoStore) AppendReceivable(ctx context.Context, userID string, entry ReceivableEntry) (*Record, error) {
	return s.addToSet(ctx, userID, "receivables", entry)
}

func (s *MongoStore) AppendExpense(ctx context.Context, userID string, entry ExpenseEntry) (*Record, error) {
	return s.addToSet(ctx, userID, "expenses", entry)
}

func (s *MongoStore) addToSet(ctx context.Context, userID, field string, entry interface{}) (*Record, error) {
	var rec Record
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$addToSet": bson.M{field: entry}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "append to %s", field)
	}
	return &rec, nil
}
