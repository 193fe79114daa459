package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
)

type AuthService struct {
	Repo   repo.UserRepository
	Tokens TokenIssuer
	Logger logrus.FieldLogger
}

func NewAuthService(repo repo.UserRepository, tokens TokenIssuer, logger logrus.FieldLogger) *AuthService {
	return &AuthService{Repo: repo, Tokens: tokens, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	u, err := createAccount(ctx, s.Repo, in, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// createAccount is the signup path shared by self-registration and admin-created users.
func createAccount(ctx context.Context, users repo.UserRepository, in RegisterInput, role entity.Role) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, invalid("password must be at most 72 characters long")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Name: name, Email: email, Password: hash, Role: role}
	if err := users.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Me loads the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, id *entity.Identity) (*entity.User, error) {
	if id == nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.GenerateToken(helpers.TokenSubject{
		ID:    u.ID,
		Email: u.Email,
		Role:  string(u.Role),
		Name:  u.Name,
	})
	if err != nil {
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}
