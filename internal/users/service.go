package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recipebook/go-services/internal/auth"
	"github.com/recipebook/go-services/internal/models"
	"github.com/recipebook/go-services/internal/tokens"
)

var (
	// ErrEmailTaken signals a registration against an already-used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound signals a login against an unknown email.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials signals a login with a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service implements registration and login on top of a Repository, the
// password hashing service and the token service. The signing secret is
// injected at construction; the service holds no other state.
type Service struct {
	repo   Repository
	secret string
}

func NewService(r Repository, secret string) *Service {
	return &Service{repo: r, secret: secret}
}

// NormalizeEmail lowercases and trims an email address. Applied before every
// uniqueness check and lookup, so stored emails are always lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it with a fresh session token.
// Single attempt: a duplicate-email race surfaces as ErrEmailTaken via the
// unique index, never as a retry.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("user lookup: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, "", err
	}

	tok, err := tokens.Issue(s.secret, u)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, tok, nil
}

// Login verifies credentials and returns the account with a fresh session
// token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("user lookup: %w", err)
	}
	if u == nil {
		return nil, "", ErrNotFound
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	tok, err := tokens.Issue(s.secret, u)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, tok, nil
}

// GetByID returns the user with the given hex id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}
