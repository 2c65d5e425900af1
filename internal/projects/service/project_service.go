package service

import (
	"context"

	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	"github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
	"github.com/portfolio-hub/portfolio-backend/internal/resource"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	repo *resource.Repository[domain.Project]
}

// NewProjectService creates a new project service
func NewProjectService(repo *resource.Repository[domain.Project]) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// NewFromStore builds the service over the projects collection of store.
func NewFromStore(store docstore.Store) *ProjectService {
	return NewProjectService(resource.NewRepository(store, domain.Collection, domain.FromDocument))
}

// List returns projects newest first, optionally restricted to one category.
func (s *ProjectService) List(ctx context.Context, category string) ([]domain.Project, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByCategory(items, category), nil
}

// Categories lists "All" plus each category in use.
func (s *ProjectService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(items), nil
}

// Get returns a single project
func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// Create validates req and stores it with defaults applied. Nothing is written
// when validation fails.
func (s *ProjectService) Create(ctx context.Context, req domain.CreateRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.repo.Create(ctx, req.Fields())
}

// Update applies a partial change to an existing project
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, patch.Fields())
}

// Delete removes a project; deleting an unknown id succeeds.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
