package gateway

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/yungbote/estatehub-backend/internal/pkg/errors"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type Model interface {
	TableName() string
}

// Gateway is the typed command/query surface shared by every entity repo.
// Every method takes an optional transaction; nil runs on the base handle.
type Gateway[T Model] interface {
	Find(ctx context.Context, tx *gorm.DB, f Filter) (*T, error)
	FindMany(ctx context.Context, tx *gorm.DB, f Filter) ([]*T, error)
	Count(ctx context.Context, tx *gorm.DB, f Filter) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, f Filter) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, rows []*T) ([]*T, error)
	Update(ctx context.Context, tx *gorm.DB, row *T) error
	UpdateColumns(ctx context.Context, tx *gorm.DB, f Filter, values map[string]any) (int64, error)
	Upsert(ctx context.Context, tx *gorm.DB, rows []*T, conflictColumns, updateColumns []string) error
	DeleteMany(ctx context.Context, tx *gorm.DB, f Filter) (int64, error)
}

type Table[T Model] struct {
	db    *gorm.DB
	log   *logger.Logger
	table string
}

func NewTable[T Model](db *gorm.DB, log *logger.Logger) *Table[T] {
	var zero T
	return &Table[T]{db: db, log: log, table: zero.TableName()}
}

func (t *Table[T]) DB() *gorm.DB { return t.db }

func (t *Table[T]) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = t.db
	}
	return transaction.WithContext(ctx)
}

func (t *Table[T]) Find(ctx context.Context, tx *gorm.DB, f Filter) (*T, error) {
	var out T
	if err := f.apply(t.conn(ctx, tx).Model(new(T)), t.table).Take(&out).Error; err != nil {
		return nil, t.classify(err)
	}
	return &out, nil
}

func (t *Table[T]) FindMany(ctx context.Context, tx *gorm.DB, f Filter) ([]*T, error) {
	results := []*T{}
	if err := f.apply(t.conn(ctx, tx).Model(new(T)), t.table).Find(&results).Error; err != nil {
		return nil, t.classify(err)
	}
	return results, nil
}

func (t *Table[T]) Count(ctx context.Context, tx *gorm.DB, f Filter) (int64, error) {
	f.Order, f.Limit, f.Offset, f.ForUpdate = "", 0, 0, false
	var n int64
	if err := f.apply(t.conn(ctx, tx).Model(new(T)), t.table).Count(&n).Error; err != nil {
		return 0, t.classify(err)
	}
	return n, nil
}

func (t *Table[T]) Exists(ctx context.Context, tx *gorm.DB, f Filter) (bool, error) {
	n, err := t.Count(ctx, tx, f)
	return n > 0, err
}

func (t *Table[T]) Create(ctx context.Context, tx *gorm.DB, rows []*T) ([]*T, error) {
	if len(rows) == 0 {
		return []*T{}, nil
	}
	if err := t.conn(ctx, tx).CreateInBatches(rows, 100).Error; err != nil {
		return nil, t.classify(err)
	}
	return rows, nil
}

func (t *Table[T]) Update(ctx context.Context, tx *gorm.DB, row *T) error {
	if row == nil {
		return fmt.Errorf("%s: nil row", t.table)
	}
	if err := t.conn(ctx, tx).Save(row).Error; err != nil {
		return t.classify(err)
	}
	return nil
}

func (t *Table[T]) UpdateColumns(ctx context.Context, tx *gorm.DB, f Filter, values map[string]any) (int64, error) {
	if f.IsEmpty() {
		return 0, fmt.Errorf("%s: refusing unscoped update", t.table)
	}
	if len(values) == 0 {
		return 0, nil
	}
	res := f.apply(t.conn(ctx, tx).Model(new(T)), t.table).Updates(values)
	if res.Error != nil {
		return 0, t.classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (t *Table[T]) Upsert(ctx context.Context, tx *gorm.DB, rows []*T, conflictColumns, updateColumns []string) error {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, c := range conflictColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	onConflict := clause.OnConflict{Columns: cols}
	if len(updateColumns) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(updateColumns)
	}
	if err := t.conn(ctx, tx).Clauses(onConflict).Create(rows).Error; err != nil {
		return t.classify(err)
	}
	return nil
}

func (t *Table[T]) DeleteMany(ctx context.Context, tx *gorm.DB, f Filter) (int64, error) {
	if f.IsEmpty() {
		return 0, fmt.Errorf("%s: refusing unscoped delete", t.table)
	}
	res := f.apply(t.conn(ctx, tx), t.table).Delete(new(T))
	if res.Error != nil {
		return 0, t.classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (t *Table[T]) classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", t.table, pkgerrors.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", t.table, pkgerrors.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", t.table, err)
	}
}
