package http

import "github.com/portfolio-hub/portfolio-backend/internal/auth/domain"

// Authenticator is what the login handler needs.
type Authenticator interface {
	Login(req domain.LoginRequest) (*domain.Session, error)
}

type Handler struct {
	authService Authenticator
}

func New(authService Authenticator) *Handler {
	return &Handler{
		authService: authService,
	}
}
