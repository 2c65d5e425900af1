package docstore

import (
	"context"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
)

// Unconfigured stands in when no store credentials are available. The API keeps
// serving: reads degrade, writes report apperr.ErrNotConfigured.
type Unconfigured struct{}

var _ Store = Unconfigured{}

func (Unconfigured) Add(context.Context, string, map[string]any) (string, error) {
	return "", apperr.ErrNotConfigured
}

func (Unconfigured) Get(context.Context, string, string) (*Document, error) {
	return nil, apperr.ErrNotConfigured
}

func (Unconfigured) Update(context.Context, string, string, map[string]any) error {
	return apperr.ErrNotConfigured
}

func (Unconfigured) Delete(context.Context, string, string) error {
	return apperr.ErrNotConfigured
}

func (Unconfigured) List(context.Context, string, string) ([]Document, error) {
	return nil, apperr.ErrNotConfigured
}

func (Unconfigured) Ping(context.Context) error { return apperr.ErrNotConfigured }

func (Unconfigured) Close() error { return nil }
