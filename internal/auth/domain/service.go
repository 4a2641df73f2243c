package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type SignUpRequest struct {
	Name     string
	Email    string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

// TokenResult is a signed bearer token together with the user it identifies.
type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Service is the identity context: it turns credentials into users and
// opaque bearer tokens back into resolved callers.
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*TokenResult, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResult, error)
	// Authenticate verifies the token and reloads the user so tenant and
	// role always reflect store state, not stale claims.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	GetByID(ctx context.Context, id snowflake.ID) (*User, error)
	AssignOrg(ctx context.Context, userID, orgID snowflake.ID, role string) error
}
