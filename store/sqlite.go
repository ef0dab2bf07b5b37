package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stsysd/collisionviz/db"
	"github.com/stsysd/collisionviz/model"
)

// MigrationFunc prepares the schema of a fresh connection.
type MigrationFunc func(*sql.DB) error

// SQLiteStore はSQLiteを使用したRecordStoreの実装です。
type SQLiteStore struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。dataDir が空の場合は
// プロセス内のメモリ上にデータベースを作成します。
func NewSQLiteStore(dataDir string, migrate MigrationFunc) (*SQLiteStore, error) {
	dsn := ":memory:"
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "collisionviz.db")
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	// メモリDBは接続ごとに別物になるため一本に絞る
	conn.SetMaxOpenConns(1)

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	// レコードは毎回CSVから作り直すため、前回の内容は破棄する
	queries := db.New(conn)
	if err := queries.DeleteAllRecords(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to clear records: %w", err)
	}

	return &SQLiteStore{
		conn:    conn,
		queries: queries,
	}, nil
}

// Insert はレコードを一つのトランザクションで保存します。
func (s *SQLiteStore) Insert(ctx context.Context, records []model.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	q := s.queries.WithTx(tx)
	for _, r := range records {
		err := q.InsertRecord(ctx, db.InsertRecordParams{
			Year:    int64(r.Year),
			Weekday: int64(r.Weekday),
			Value:   r.Value,
		})
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return nil
}

// Select は指定した年の範囲内のレコードを取得します。ゼロ値の範囲は全件です。
func (s *SQLiteStore) Select(ctx context.Context, r model.YearRange) ([]model.Record, error) {
	if r.IsZero() {
		lo, hi, err := s.queries.GetYearBounds(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get year bounds: %w", err)
		}
		r = model.YearRange{Start: int(lo), End: int(hi)}
	}
	r = r.Ordered()

	rows, err := s.queries.ListRecordsInRange(ctx, db.ListRecordsInRangeParams{
		Start: int64(r.Start),
		End:   int64(r.End),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.Record{
			Year:    int(row.Year),
			Weekday: model.Weekday(row.Weekday),
			Value:   row.Value,
		})
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	n, err := s.queries.CountRecords(ctx)
	return int(n), err
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
