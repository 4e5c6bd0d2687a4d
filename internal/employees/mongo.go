package employees

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	employeesCollection = "employees"
	countersCollection  = "counters"
)

// MongoStore persists employees in MongoDB. Protocol-visible ids are small
// integers, so ids come from a findOneAndUpdate counter rather than ObjectIDs.
type MongoStore struct {
	db *mongo.Database
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	collection := s.db.Collection(employeesCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": employeesCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate employee id: %w", err)
	}
	return counter.Seq, nil
}

func (s *MongoStore) Create(ctx context.Context, e *Employee) error {
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	e.ID = id

	_, err = s.db.Collection(employeesCollection).InsertOne(ctx, e)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) Get(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := s.db.Collection(employeesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *MongoStore) Update(ctx context.Context, e *Employee) error {
	res, err := s.db.Collection(employeesCollection).ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Employee, error) {
	cursor, err := s.db.Collection(employeesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Employee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Collection(employeesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, id int64) (bool, error) {
	count, err := s.db.Collection(employeesCollection).CountDocuments(ctx,
		bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
