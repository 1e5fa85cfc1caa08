package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scanform/scanform/pkg/errors"
)

// Mongo is a Catalog backed by a MongoDB collection, for deployments where
// counts must survive restarts and several serve processes share one
// catalog. Products are stored with the key as _id.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeIO, err, "ping mongodb")
	}

	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// List returns all products sorted by key.
func (s *Mongo) List(ctx context.Context) ([]Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list products")
	}
	defer cur.Close(ctx)

	var out []Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "decode products")
	}
	return out, nil
}

// Get returns the product with the given key.
func (s *Mongo) Get(ctx context.Context, key string) (Product, error) {
	var p Product
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return Product{}, errors.New(errors.ErrCodeNotFound, "product %q not found", key)
	}
	if err != nil {
		return Product{}, errors.Wrap(errors.ErrCodeIO, err, "get product %q", key)
	}
	return p, nil
}

// Put creates or replaces a product entry.
func (s *Mongo) Put(ctx context.Context, p Product) error {
	if p.Key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "product key must not be empty")
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.Key}}, p, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "put product %q", p.Key)
	}
	return nil
}

// Rename updates the name of an existing product.
func (s *Mongo) Rename(ctx context.Context, key, name string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: name}}}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename product %q", key)
	}
	if res.MatchedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "product %q not found", key)
	}
	return nil
}

// Increment adds delta to the product's count atomically. Unknown keys
// are created with the key as provisional name.
func (s *Mongo) Increment(ctx context.Context, key string, delta int) (Product, error) {
	if key == "" {
		return Product{}, errors.New(errors.ErrCodeInvalidInput, "product key must not be empty")
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "count", Value: delta}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "name", Value: key}}},
	}

	var p Product
	err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: key}}, update, opts).Decode(&p)
	if err != nil {
		return Product{}, errors.Wrap(errors.ErrCodeIO, err, "increment product %q", key)
	}
	return p, nil
}

// Close disconnects from MongoDB.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Catalog = (*Mongo)(nil)
