package repository

import (
	"context"
	"dashboard/database"
	"dashboard/model"
)

type PortfolioRepository struct {
	table seriesTable
}

func NewPortfolioRepository(store *database.SQLStore) *PortfolioRepository {
	return &PortfolioRepository{
		table: seriesTable{store: store, table: model.PortfolioTableName, key: "portfolio", column: "nav"},
	}
}

// FindByName returns the NAV curve of a portfolio in date order
func (r *PortfolioRepository) FindByName(ctx context.Context, name string) ([]model.PortfolioNav, error) {
	rows, err := r.table.find(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	navs := make([]model.PortfolioNav, len(rows))
	for i, row := range rows {
		navs[i] = model.PortfolioNav{Portfolio: row.Key, Nav: row.Value, Date: row.Date}
	}
	return navs, nil
}

func (r *PortfolioRepository) Names(ctx context.Context) ([]string, error) {
	return r.table.names(ctx)
}

func (r *PortfolioRepository) SaveAll(ctx context.Context, navs []model.PortfolioNav) (int, error) {
	rows := make([]seriesRow, len(navs))
	for i, n := range navs {
		rows[i] = seriesRow{Key: n.Portfolio, Value: n.Nav, Date: n.Date}
	}
	return r.table.saveAll(ctx, rows)
}
