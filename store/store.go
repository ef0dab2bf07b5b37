// Package store は、レコードとビューアセッションの保持機能を提供します。
package store

import (
	"context"

	"github.com/stsysd/collisionviz/model"
)

// RecordStore はレコードの保存と範囲選択を行うインターフェースです。
// Select must return records ordered by year, then Monday..Sunday.
type RecordStore interface {
	// Insert はレコードを追加します。同じ (year, weekday) の二件目以降は無視されます。
	Insert(ctx context.Context, records []model.Record) error
	// Select は指定した年の範囲内のレコードを返します。
	Select(ctx context.Context, r model.YearRange) ([]model.Record, error)
	// Close はストアを閉じます。
	Close() error
}
