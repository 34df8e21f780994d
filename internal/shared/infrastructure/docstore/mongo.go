package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps collections to Mongo collections and keys to _id. Documents
// are stored as native BSON so they stay queryable from the mongo shell.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to url and selects database.
func OpenMongo(ctx context.Context, url, database string) (*MongoStore, error) {
	if database == "" {
		database = "chronosync"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var doc bson.D
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s/%s: %w", collection, key, err)
	}
	return fromBSON(doc)
}

func (s *MongoStore) Put(ctx context.Context, collection, key string, doc []byte) error {
	d, err := toBSON(key, doc)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": key}, d, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *MongoStore) PutIfAbsent(ctx context.Context, collection, key string, doc []byte) (bool, error) {
	d, err := toBSON(key, doc)
	if err != nil {
		return false, err
	}
	_, err = s.db.Collection(collection).InsertOne(ctx, d)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo insert %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *MongoStore) Scan(ctx context.Context, collection, prefix string) ([]Entry, error) {
	filter := bson.M{}
	if prefix != "" {
		filter["_id"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var out []Entry
	for cur.Next(ctx) {
		var doc bson.D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		key, _ := idOf(doc)
		val, err := fromBSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key, Value: val})
	}
	return out, cur.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toBSON(key string, doc []byte) (bson.D, error) {
	var fields bson.D
	if err := bson.UnmarshalExtJSON(doc, false, &fields); err != nil {
		return nil, fmt.Errorf("convert document %s: %w", key, err)
	}
	out := make(bson.D, 0, len(fields)+1)
	out = append(out, bson.E{Key: "_id", Value: key})
	for _, f := range fields {
		if f.Key != "_id" {
			out = append(out, f)
		}
	}
	return out, nil
}

func fromBSON(doc bson.D) ([]byte, error) {
	fields := make(bson.D, 0, len(doc))
	for _, f := range doc {
		if f.Key != "_id" {
			fields = append(fields, f)
		}
	}
	b, err := bson.MarshalExtJSON(fields, false, false)
	if err != nil {
		return nil, fmt.Errorf("convert bson document: %w", err)
	}
	return b, nil
}

func idOf(doc bson.D) (string, bool) {
	for _, f := range doc {
		if f.Key == "_id" {
			s, ok := f.Value.(string)
			return s, ok
		}
	}
	return "", false
}
