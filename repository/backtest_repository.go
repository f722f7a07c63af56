package repository

import (
	"context"
	"dashboard/customerrors"
	"dashboard/database"
	"dashboard/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BacktestRepository struct {
	collection *mongo.Collection
}

func NewBacktestRepository(db *mongo.Database) *BacktestRepository {
	return &BacktestRepository{
		collection: db.Collection(model.BacktestCollectionName),
	}
}

func (r *BacktestRepository) Save(ctx context.Context, run *model.BacktestRun) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": run.ID},
		bson.M{"$set": run},
		opts,
	)
	return err
}

func (r *BacktestRepository) FindByID(ctx context.Context, id string) (*model.BacktestRun, error) {
	return database.FindOneGeneric[model.BacktestRun](ctx, r.collection, bson.M{"_id": id}, customerrors.ErrBacktestNotFound)
}

// FindRecent returns the newest runs first
func (r *BacktestRepository) FindRecent(ctx context.Context, limit int) ([]model.BacktestRun, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return database.FindManyGeneric[model.BacktestRun](ctx, r.collection, bson.M{}, opts)
}
