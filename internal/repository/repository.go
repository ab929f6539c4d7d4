package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrStorageTimeout = errors.New("storage operation timed out")
)

// Filter selects records by field value, keyed by the field's json tag.
// In Update calls it carries the partial document to apply.
type Filter map[string]any

// Adapter is the capability set a storage backend must provide for one entity
// type. Any implementation — relational table, document store, in-memory map —
// substitutes without changing repository callers.
type Adapter[T any] interface {
	GetAll(ctx context.Context, filter Filter) ([]T, error)
	GetBy(ctx context.Context, filter Filter) (*T, error)
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, id string, changes Filter) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Repository forwards the five generic operations to an injected adapter.
// It owns no data and holds no entity-specific logic; entity repositories
// compose it and add typed lookups. Every call is bounded by the configured
// timeout, and a deadline hit surfaces as ErrStorageTimeout rather than a
// hung request.
type Repository[T any] struct {
	adapter Adapter[T]
	timeout time.Duration
}

// NewRepository creates a Repository over the given adapter. A zero timeout
// disables call bounding.
func NewRepository[T any](adapter Adapter[T], timeout time.Duration) *Repository[T] {
	return &Repository[T]{adapter: adapter, timeout: timeout}
}

// GetAll returns every record matching the filter. An empty filter matches all.
func (r *Repository[T]) GetAll(ctx context.Context, filter Filter) ([]T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	docs, err := r.adapter.GetAll(ctx, filter)
	return docs, mapTimeout(err)
}

// GetBy returns the first record matching the filter, or ErrNotFound.
func (r *Repository[T]) GetBy(ctx context.Context, filter Filter) (*T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	doc, err := r.adapter.GetBy(ctx, filter)
	return doc, mapTimeout(err)
}

// Create persists a new record. The adapter assigns the ID and timestamps.
func (r *Repository[T]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	return mapTimeout(r.adapter.Create(ctx, doc))
}

// Update applies a partial document to the record with the given ID and
// returns the updated record, or ErrNotFound.
func (r *Repository[T]) Update(ctx context.Context, id string, changes Filter) (*T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	doc, err := r.adapter.Update(ctx, id, changes)
	return doc, mapTimeout(err)
}

// Delete removes the record with the given ID, or returns ErrNotFound.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	return mapTimeout(r.adapter.Delete(ctx, id))
}

func (r *Repository[T]) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func mapTimeout(err error) error {
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return ErrStorageTimeout
	}
	return err
}
