package attendance

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	attendanceCollection = "attendance_records"
	countersCollection   = "counters"
)

// MongoStore persists attendance records in MongoDB with counter-allocated
// integer ids, matching the employees service.
type MongoStore struct {
	db *mongo.Database
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	collection := s.db.Collection(attendanceCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: -1},
			{Key: "time", Value: -1},
		},
	})
	return err
}

func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": attendanceCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate attendance id: %w", err)
	}
	return counter.Seq, nil
}

func (s *MongoStore) Create(ctx context.Context, rec *Record) error {
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	rec.ID = id

	_, err = s.db.Collection(attendanceCollection).InsertOne(ctx, rec)
	return err
}

func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cursor, err := s.db.Collection(attendanceCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{
			{Key: "date", Value: -1},
			{Key: "time", Value: -1},
		}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Record
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
