package service

import (
	"context"

	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	"github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	"github.com/portfolio-hub/portfolio-backend/internal/resource"
)

// MessageService validates and persists contact messages.
type MessageService struct {
	repo *resource.Repository[domain.Message]
}

func NewMessageService(repo *resource.Repository[domain.Message]) *MessageService {
	return &MessageService{repo: repo}
}

// NewFromStore builds the service over the messages collection of store.
func NewFromStore(store docstore.Store) *MessageService {
	return NewMessageService(resource.NewRepository(store, domain.Collection, domain.FromDocument))
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.repo.List(ctx)
}

// Create validates req and stores it unread. Nothing is written when validation fails.
func (s *MessageService) Create(ctx context.Context, req domain.CreateRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.repo.Create(ctx, req.Fields())
}

// Update applies a partial change to an existing message.
func (s *MessageService) Update(ctx context.Context, id string, patch domain.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, patch.Fields())
}

// Delete removes a message; deleting an unknown id succeeds.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
