package http

import (
	"context"

	"github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
)

// MessageService is what the handlers need from the messages service.
type MessageService interface {
	List(ctx context.Context) ([]domain.Message, error)
	Create(ctx context.Context, req domain.CreateRequest) (string, error)
	Update(ctx context.Context, id string, patch domain.Patch) error
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for messages HTTP endpoints.
type Handler struct {
	svc MessageService
}

func New(svc MessageService) *Handler {
	return &Handler{svc: svc}
}

type deleteReq struct {
	ID string `json:"id"`
}
