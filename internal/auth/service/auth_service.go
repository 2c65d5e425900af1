package service

import (
	"errors"
	"strings"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	"github.com/portfolio-hub/portfolio-backend/internal/auth/domain"
)

// ErrAdminNotConfigured means no admin credentials were supplied to the server.
var ErrAdminNotConfigured = errors.New("admin credentials are not configured")

// AuthService checks the single admin account and issues session tokens.
type AuthService struct {
	adminEmail   string
	passwordHash string
	tokens       *auth.TokenService
}

func NewAuthService(adminEmail, passwordHash string, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Login returns a session for the admin. The email must match exactly.
func (s *AuthService) Login(req domain.LoginRequest) (*domain.Session, error) {
	if s.adminEmail == "" || s.passwordHash == "" || s.tokens == nil {
		return nil, ErrAdminNotConfigured
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperr.Invalid("", "Email and password are required.")
	}

	if req.Email != s.adminEmail || !auth.CheckPassword(s.passwordHash, req.Password) {
		return nil, apperr.ErrUnauthorized
	}

	token, expires, err := s.tokens.Issue(s.adminEmail, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, ExpiresAt: expires}, nil
}
