// Package repository provides a small generic gorm store shared by services.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Option customizes a query before execution.
type Option func(*gorm.DB) *gorm.DB

// WithLimit caps the number of rows returned by Find.
func WithLimit(limit int) Option {
	return func(q *gorm.DB) *gorm.DB {
		if limit > 0 {
			return q.Limit(limit)
		}
		return q
	}
}

// WithOrder applies an ORDER BY clause.
func WithOrder(order string) Option {
	return func(q *gorm.DB) *gorm.DB {
		if order == "" {
			return q
		}
		return q.Order(order)
	}
}

// Repository exposes the persistence operations services need for one model.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	FindOne(ctx context.Context, filter *T) (*T, error)
	Find(ctx context.Context, filter *T, opts ...Option) ([]*T, error)
	Count(ctx context.Context, filter *T) (int64, error)
	Updates(ctx context.Context, filter *T, values map[string]any) (int64, error)
	WithTx(tx *gorm.DB) Repository[T]
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return store[T]{db: db}
}

func (s store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// FindOne returns (nil, nil) when no row matches the filter.
func (s store[T]) FindOne(ctx context.Context, filter *T) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).Where(filter).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s store[T]) Find(ctx context.Context, filter *T, opts ...Option) ([]*T, error) {
	q := s.db.WithContext(ctx).Where(filter)
	for _, opt := range opts {
		q = opt(q)
	}
	var records []*T
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s store[T]) Count(ctx context.Context, filter *T) (int64, error) {
	var model T
	var count int64
	err := s.db.WithContext(ctx).Model(&model).Where(filter).Count(&count).Error
	return count, err
}

// Updates writes the given columns directly, bypassing gorm auto-timestamps.
func (s store[T]) Updates(ctx context.Context, filter *T, values map[string]any) (int64, error) {
	var model T
	result := s.db.WithContext(ctx).Model(&model).Where(filter).UpdateColumns(values)
	return result.RowsAffected, result.Error
}

// WithTx rebinds the repository to a transaction handle.
func (s store[T]) WithTx(tx *gorm.DB) Repository[T] {
	return store[T]{db: tx}
}
