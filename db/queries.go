package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs the record statements against a connection or transaction.
type Queries struct {
	db DBTX
}

// New wraps a connection.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Record is a row of the records table.
type Record struct {
	Year    int64
	Weekday int64
	Value   float64
}

const insertRecord = `
INSERT OR IGNORE INTO records (year, weekday, value) VALUES (?, ?, ?)
`

// InsertRecordParams are the columns of a new row.
type InsertRecordParams struct {
	Year    int64
	Weekday int64
	Value   float64
}

// InsertRecord adds a row. A row with an existing (year, weekday) key is
// ignored.
func (q *Queries) InsertRecord(ctx context.Context, arg InsertRecordParams) error {
	_, err := q.db.ExecContext(ctx, insertRecord, arg.Year, arg.Weekday, arg.Value)
	return err
}

const listRecordsInRange = `
SELECT year, weekday, value FROM records
WHERE year BETWEEN ? AND ?
ORDER BY year ASC, weekday ASC
`

// ListRecordsInRangeParams bound the years, inclusive.
type ListRecordsInRangeParams struct {
	Start int64
	End   int64
}

// ListRecordsInRange returns the rows within the years, ordered by year then
// weekday.
func (q *Queries) ListRecordsInRange(ctx context.Context, arg ListRecordsInRangeParams) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, listRecordsInRange, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Record
	for rows.Next() {
		var i Record
		if err := rows.Scan(&i.Year, &i.Weekday, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getYearBounds = `
SELECT COALESCE(MIN(year), 0), COALESCE(MAX(year), 0) FROM records
`

// GetYearBounds returns the smallest and largest year, or zeros when empty.
func (q *Queries) GetYearBounds(ctx context.Context) (int64, int64, error) {
	var lo, hi int64
	err := q.db.QueryRowContext(ctx, getYearBounds).Scan(&lo, &hi)
	return lo, hi, err
}

const countRecords = `
SELECT COUNT(*) FROM records
`

// CountRecords returns the number of rows.
func (q *Queries) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRecords).Scan(&n)
	return n, err
}

const deleteAllRecords = `
DELETE FROM records
`

// DeleteAllRecords empties the records table.
func (q *Queries) DeleteAllRecords(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllRecords)
	return err
}
