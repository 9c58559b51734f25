package domain

import "time"

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // free-text label, e.g. "Admin"
}

// Passwords are compared verbatim; usernames are not trimmed or case-folded.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session identifies the operator behind a request or a terminal login.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
