package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single store call when none is configured.
const DefaultTimeout = 10 * time.Second

type timeoutStore struct {
	inner Store
	d     time.Duration
}

// WithTimeout bounds every call on s by d. Expired deadlines come back as
// errors wrapping context.DeadlineExceeded.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutStore{inner: s, d: d}
}

func (t *timeoutStore) wrap(err error) error {
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("store call exceeded %s: %w", t.d, err)
	}
	return err
}

func (t *timeoutStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	id, err := t.inner.Add(ctx, collection, fields)
	return id, t.wrap(err)
}

func (t *timeoutStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	doc, err := t.inner.Get(ctx, collection, id)
	return doc, t.wrap(err)
}

func (t *timeoutStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.wrap(t.inner.Update(ctx, collection, id, fields))
}

func (t *timeoutStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.wrap(t.inner.Delete(ctx, collection, id))
}

func (t *timeoutStore) List(ctx context.Context, collection, orderBy string) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	docs, err := t.inner.List(ctx, collection, orderBy)
	return docs, t.wrap(err)
}

func (t *timeoutStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.wrap(t.inner.Ping(ctx))
}

func (t *timeoutStore) Close() error { return t.inner.Close() }
