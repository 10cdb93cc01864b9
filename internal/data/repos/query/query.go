// Package query holds the small generic helpers shared by the repositories.
package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

// CreateAll inserts rows in one statement. Empty input is a no-op.
func CreateAll[T any](dbc dbctx.Context, db *gorm.DB, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	return dbc.DB(db).Create(&rows).Error
}

// InsertIgnoringConflicts inserts rows and silently skips any that collide on
// the given unique columns. It returns how many rows were actually written.
func InsertIgnoringConflicts[T any](dbc dbctx.Context, db *gorm.DB, rows []*T, columns ...string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	cols := make([]clause.Column, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, clause.Column{Name: c})
	}
	res := dbc.DB(db).Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// List returns every row matching where, sorted by order.
func List[T any](dbc dbctx.Context, db *gorm.DB, order string, where string, args ...any) ([]*T, error) {
	var out []*T
	q := dbc.DB(db).Where(where, args...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first matching row, or nil when nothing matches.
func First[T any](dbc dbctx.Context, db *gorm.DB, order string, where string, args ...any) (*T, error) {
	var out []*T
	q := dbc.DB(db).Where(where, args...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// DeleteWhere hard-deletes every matching row of model.
func DeleteWhere(dbc dbctx.Context, db *gorm.DB, model any, where string, args ...any) (int64, error) {
	res := dbc.DB(db).Where(where, args...).Delete(model)
	return res.RowsAffected, res.Error
}
