// Package resource is the typed CRUD layer shared by the messages and projects
// resources. It stamps timestamps, orders listings newest first and classifies
// store failures; validation belongs to the callers.
package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

// TimeLayout is fixed width so stored timestamps sort lexically in time order.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Timestamp formats t the way every stored timestamp is written.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Decoder turns a stored document into an entity.
type Decoder[T any] func(docstore.Document) T

// Repository is a collection of T inside a document store.
type Repository[T any] struct {
	store      docstore.Store
	collection string
	decode     Decoder[T]
	now        func() time.Time
}

func NewRepository[T any](store docstore.Store, collection string, decode Decoder[T]) *Repository[T] {
	return &Repository[T]{
		store:      store,
		collection: collection,
		decode:     decode,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for createdAt and updatedAt.
func (r *Repository[T]) WithClock(now func() time.Time) *Repository[T] {
	r.now = now
	return r
}

// List returns every entity ordered by createdAt, newest first.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	docs, err := r.store.List(ctx, r.collection, FieldCreatedAt)
	if err != nil {
		return nil, apperr.Store(fmt.Sprintf("list %s", r.collection), err)
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, r.decode(d))
	}
	return out, nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return zero, apperr.Store(fmt.Sprintf("get %s/%s", r.collection, id), err)
	}
	return r.decode(*doc), nil
}

// Create stores fields with a fresh createdAt and returns the assigned id.
// Callers pass a map they own; it is not retained.
func (r *Repository[T]) Create(ctx context.Context, fields map[string]any) (string, error) {
	doc := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc[FieldCreatedAt] = Timestamp(r.now())

	id, err := r.store.Add(ctx, r.collection, doc)
	if err != nil {
		return "", apperr.Store(fmt.Sprintf("create %s", r.collection), err)
	}
	return id, nil
}

// Update writes only the supplied fields plus a refreshed updatedAt. The record
// is not read first; a missing id surfaces as apperr.ErrNotFound.
func (r *Repository[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return apperr.Invalid("id", "An id is required.")
	}

	doc := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc[FieldUpdatedAt] = Timestamp(r.now())

	if err := r.store.Update(ctx, r.collection, id, doc); err != nil {
		return apperr.Store(fmt.Sprintf("update %s/%s", r.collection, id), err)
	}
	return nil
}

// Delete removes id. Deleting an absent id succeeds.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Invalid("id", "An id is required.")
	}
	if err := r.store.Delete(ctx, r.collection, id); err != nil {
		return apperr.Store(fmt.Sprintf("delete %s/%s", r.collection, id), err)
	}
	return nil
}
