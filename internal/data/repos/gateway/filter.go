package gateway

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Range bounds a column inclusively. A nil bound is open.
type Range struct {
	Column string
	Min    any
	Max    any
}

// Exists requires at least one row in Table whose ForeignKey points at the
// filtered row's id and which matches Eq.
type Exists struct {
	Table      string
	ForeignKey string
	Eq         map[string]any
}

// Filter scopes a gateway operation. Column names come from code, never from
// request input.
type Filter struct {
	Eq     map[string]any
	In     map[string]any
	Ranges []Range
	Has    []Exists
	Order  string
	Limit  int
	Offset int
	// ForUpdate row-locks the selected rows until the transaction ends. Only
	// meaningful on Find and FindMany inside a transaction.
	ForUpdate bool
}

func ByID(id uuid.UUID) Filter {
	return Filter{Eq: map[string]any{"id": id}}
}

func ByIDs(ids []uuid.UUID) Filter {
	return Filter{In: map[string]any{"id": ids}}
}

func Where(column string, value any) Filter {
	return Filter{Eq: map[string]any{column: value}}
}

func (f Filter) IsEmpty() bool {
	return len(f.Eq) == 0 && len(f.In) == 0 && len(f.Ranges) == 0 && len(f.Has) == 0
}

func (f Filter) apply(q *gorm.DB, table string) *gorm.DB {
	for _, k := range sortedKeys(f.Eq) {
		q = q.Where(clause.Eq{Column: clause.Column{Table: table, Name: k}, Value: f.Eq[k]})
	}
	for _, k := range sortedKeys(f.In) {
		q = q.Where(clause.IN{Column: clause.Column{Table: table, Name: k}, Values: toAnySlice(f.In[k])})
	}
	for _, r := range f.Ranges {
		col := clause.Column{Table: table, Name: r.Column}
		if r.Min != nil {
			q = q.Where(clause.Gte{Column: col, Value: r.Min})
		}
		if r.Max != nil {
			q = q.Where(clause.Lte{Column: col, Value: r.Max})
		}
	}
	for _, e := range f.Has {
		sub := q.Session(&gorm.Session{NewDB: true}).
			Table(e.Table).
			Select("1").
			Where(fmt.Sprintf("%s.%s = %s.id", e.Table, e.ForeignKey, table))
		for _, k := range sortedKeys(e.Eq) {
			sub = sub.Where(clause.Eq{Column: clause.Column{Table: e.Table, Name: k}, Value: e.Eq[k]})
		}
		q = q.Where("EXISTS (?)", sub)
	}
	if f.Order != "" {
		q = q.Order(f.Order)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.ForUpdate {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return q
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toAnySlice(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
