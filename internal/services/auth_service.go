package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/models"
	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/validation"
)

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

type AuthResult struct {
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      models.PublicUser `json:"user"`
}

type AuthService struct {
	users  repo.Users
	hasher auth.PasswordHasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.Users, hasher auth.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register validates input before touching the store, then creates the user
// and issues a token for it.
func (s *AuthService) Register(ctx context.Context, email, login, password string) (res AuthResult, err error) {
	defer func() { metrics.AuthEventsTotal.WithLabelValues("register", outcome(err)).Inc() }()

	email = strings.TrimSpace(email)
	if err := validation.Collect(
		validation.Email("email", email),
		validation.Login(login),
		validation.Password(password),
	); err != nil {
		return AuthResult{}, err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, storeErr("check email", err)
	}
	if exists {
		return AuthResult{}, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, models.User{Email: email, Login: login, PasswordHash: hash})
	if errors.Is(err, repo.ErrDuplicate) {
		return AuthResult{}, ErrUserAlreadyExists
	}
	if err != nil {
		return AuthResult{}, storeErr("create user", err)
	}
	return s.issue(u)
}

// Login ignores the display name; only email and password are checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (res AuthResult, err error) {
	defer func() { metrics.AuthEventsTotal.WithLabelValues("login", outcome(err)).Inc() }()

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		// burn the same hashing cost as a real check
		_ = s.hasher.Verify(s.dummy(), password)
		return AuthResult{}, ErrUserNotFound
	}
	if err != nil {
		return AuthResult{}, storeErr("get user", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("verify password for user %s: %w", u.ID, err)
	}
	return s.issue(u)
}

func (s *AuthService) issue(u models.User) (AuthResult, error) {
	tok, exp, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Email: u.Email, Name: u.Login})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: tok, TokenType: "bearer", ExpiresAt: exp, User: u.Public()}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}

func outcome(err error) string {
	var verrs validation.Errs
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &verrs),
		errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrForbidden):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
