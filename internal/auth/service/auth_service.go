package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/auth/domain"
	"github.com/health-wallet/go-wallet-backend/internal/auth/token"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SearchByEmail(ctx context.Context, query, excludeID string, limit int) ([]domain.Summary, error)
}

type AuthService struct {
	users      UserStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users UserStore, jwtSecret []byte, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account and returns it with a signed session token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if email == "" || password == "" || name == "" {
		return nil, "", fmt.Errorf("email, password, and name are required: %w", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := token.Generate(user.ID, user.Email, user.Name, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return user, tok, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required: %w", apperr.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	tok, err := token.Generate(user.ID, user.Email, user.Name, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return user, tok, nil
}

// Profile returns the account for the authenticated caller.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Search finds share recipients by email substring, excluding the caller.
func (s *AuthService) Search(ctx context.Context, callerID, query string) ([]domain.Summary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("email query is required: %w", apperr.ErrValidation)
	}
	return s.users.SearchByEmail(ctx, query, callerID, 10)
}
