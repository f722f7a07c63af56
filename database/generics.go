package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindOneGeneric decodes the single document matching filter. notFound is
// returned when nothing matches.
func FindOneGeneric[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, notFound error) (*T, error) {
	var doc T
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindManyGeneric decodes every document matching filter in opts order.
func FindManyGeneric[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
