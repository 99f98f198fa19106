package auth

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

// Sessions signs users in and resolves session tokens back to users.
type Sessions struct {
	users  repository.UserRepository
	tokens *Tokens
}

func NewSessions(users repository.UserRepository, tokens *Tokens) *Sessions {
	return &Sessions{users: users, tokens: tokens}
}

func (s *Sessions) Tokens() *Tokens { return s.tokens }

// Login checks the credentials and returns a fresh token for the user.
func (s *Sessions) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Resolve verifies token and loads its user. The role is taken from the stored
// user, not from the token, so demotions apply immediately.
func (s *Sessions) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", claims.UserID, err)
	}
	return u, nil
}
