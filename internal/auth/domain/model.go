package domain

import "time"

// RoleAdmin is the only role the dashboard knows.
const RoleAdmin = "admin"

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned on a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Principal is the authenticated caller of an admin route.
type Principal struct {
	Email  string
	Role   string
	Source string // "session" or "firebase"
}
