package repository

import (
	"context"
	"dashboard/database"
	"dashboard/util"
	"database/sql"
	"fmt"
	"time"
)

// seriesTable is a (key, value, date) table keyed on (key, date)
type seriesTable struct {
	store  *database.SQLStore
	table  string
	key    string
	column string
}

type seriesRow struct {
	Key   string
	Value float64
	Date  time.Time
}

func (t seriesTable) find(ctx context.Context, key string, upTo *time.Time) ([]seriesRow, error) {
	query := fmt.Sprintf("SELECT %s, %s, date FROM %s WHERE 1=1", t.key, t.column, t.table)
	var args []any
	if key != "" {
		query += fmt.Sprintf(" AND %s = ?", t.key)
		args = append(args, key)
	}
	if upTo != nil {
		query += " AND date <= ?"
		args = append(args, util.FormatDate(*upTo))
	}
	query += fmt.Sprintf(" ORDER BY %s, date", t.key)

	rows, err := t.store.DB.QueryContext(ctx, t.store.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.table, err)
	}
	defer rows.Close()

	result := make([]seriesRow, 0)
	for rows.Next() {
		var row seriesRow
		var raw any
		if err := rows.Scan(&row.Key, &row.Value, &raw); err != nil {
			return nil, err
		}
		date, ok, err := scanDate(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		row.Date = date
		result = append(result, row)
	}
	return result, rows.Err()
}

func (t seriesTable) names(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", t.key, t.table, t.key)
	rows, err := t.store.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s names: %w", t.table, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// saveAll upserts rows in one transaction and reports how many were written
func (t seriesTable) saveAll(ctx context.Context, rows []seriesRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := t.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, date) VALUES (?, ?, ?) ON CONFLICT (%s, date) DO UPDATE SET %s = excluded.%s",
		t.table, t.key, t.column, t.key, t.column, t.column,
	)
	stmt, err := tx.PrepareContext(ctx, t.store.Rebind(query))
	if err != nil {
		return 0, fmt.Errorf("prepare upsert %s: %w", t.table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.Key, row.Value, util.FormatDate(row.Date)); err != nil {
			return 0, fmt.Errorf("upsert %s %s: %w", t.table, row.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (t seriesTable) latest(ctx context.Context, key string) (time.Time, bool, error) {
	query := fmt.Sprintf("SELECT MAX(date) FROM %s WHERE %s = ?", t.table, t.key)
	var raw any
	err := t.store.DB.QueryRowContext(ctx, t.store.Rebind(query), key).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return scanDate(raw)
}

// scanDate accepts what the drivers hand back for a DATE column: time.Time
// from pq and typed sqlite columns, text from sqlite aggregates.
func scanDate(raw any) (time.Time, bool, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return util.Truncate(v), true, nil
	case string:
		d, err := util.ParseDate(v)
		return d, err == nil, err
	case []byte:
		d, err := util.ParseDate(string(v))
		return d, err == nil, err
	default:
		return time.Time{}, false, fmt.Errorf("unsupported date value %T", raw)
	}
}
