// Package orm is a small chainable query layer over the shared GORM handle,
// with optional cache-through reads.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/ucqdev/cuahquick/pkg/cache"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/metrics"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the shared connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// With starts a chain on an explicit handle (tests, transactions).
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Select(columns string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(columns, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Count(count).Error
}

func (q *Query) Create(value interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(value).Error
}

func (q *Query) Updates(values interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Updates(values).Error
}

// Update sets a single column on the matched rows and reports how many
// rows were matched, so callers can tell a no-op from a miss.
func (q *Query) Update(column string, value interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	tx := q.db.Update(column, value)
	return tx.RowsAffected, tx.Error
}

// Cache reads through the Redis cache: on a hit dest is filled from cache,
// on a miss the query runs and the result is stored for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.Get(dest); err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// Paginate runs the chain twice: once for the total count, once for the
// requested page. Page numbers start at 1.
func (q *Query) Paginate(page, perPage int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * perPage
	if err := q.db.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{Page: page, PerPage: perPage, Total: total}, nil
}
