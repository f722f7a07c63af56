package repository

import (
	"context"
	"dashboard/database"
	"dashboard/model"
	"time"
)

type IndexRepository struct {
	table seriesTable
}

func NewIndexRepository(store *database.SQLStore) *IndexRepository {
	return &IndexRepository{
		table: seriesTable{store: store, table: model.IndexTableName, key: "name", column: "value"},
	}
}

// FindAll returns every row up to upTo (all rows when nil) ordered by name and date
func (r *IndexRepository) FindAll(ctx context.Context, upTo *time.Time) ([]model.IndexValue, error) {
	return r.FindByName(ctx, "", upTo)
}

func (r *IndexRepository) FindByName(ctx context.Context, name string, upTo *time.Time) ([]model.IndexValue, error) {
	rows, err := r.table.find(ctx, name, upTo)
	if err != nil {
		return nil, err
	}
	values := make([]model.IndexValue, len(rows))
	for i, row := range rows {
		values[i] = model.IndexValue{Name: row.Key, Value: row.Value, Date: row.Date}
	}
	return values, nil
}

func (r *IndexRepository) Names(ctx context.Context) ([]string, error) {
	return r.table.names(ctx)
}

func (r *IndexRepository) SaveAll(ctx context.Context, values []model.IndexValue) (int, error) {
	rows := make([]seriesRow, len(values))
	for i, v := range values {
		rows[i] = seriesRow{Key: v.Name, Value: v.Value, Date: v.Date}
	}
	return r.table.saveAll(ctx, rows)
}

// LatestDate reports the newest stored date of an instrument
func (r *IndexRepository) LatestDate(ctx context.Context, name string) (time.Time, bool, error) {
	return r.table.latest(ctx, name)
}
