package http

import (
	"context"

	"github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

// ProjectService is what the handlers need from the projects service.
type ProjectService interface {
	List(ctx context.Context, category string) ([]domain.Project, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (domain.Project, error)
	Create(ctx context.Context, req domain.CreateRequest) (string, error)
	Update(ctx context.Context, id string, patch domain.Patch) error
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
}

func New(svc ProjectService) *Handler {
	return &Handler{svc: svc}
}
