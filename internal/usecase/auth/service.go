package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrRegistrationClosed     = errors.New("registration is closed")
	ErrAccountInactive        = errors.New("account inactive")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
}

type LoginInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error)
	Login(ctx context.Context, in LoginInput) (user.User, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

type Service struct {
	users    user.Repository
	tokens   jwt.Service
	settings usecase.SettingsProvider
	changes  usecase.ChangePublisher
	logger   *log.Logger

	now func() time.Time
}

func NewService(users user.Repository, tokens jwt.Service, settings usecase.SettingsProvider, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{users: users, tokens: tokens, settings: settings, changes: changes, logger: logger, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error) {
	if !s.current().AllowRegistration {
		return user.User{}, Tokens{}, ErrRegistrationClosed
	}

	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.FullName)
	if email == "" || name == "" || !IsValidPassword(in.Password) {
		return user.User{}, Tokens{}, ErrInvalidInput
	}

	role := user.RoleSeeker
	if strings.TrimSpace(in.Role) != "" {
		r, ok := user.ParseRole(in.Role)
		if !ok || r == user.RoleAdmin {
			return user.User{}, Tokens{}, ErrInvalidInput
		}
		role = r
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	if exists {
		return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		FullName:     name,
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
		Role:         role,
		Status:       user.StatusActive,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}

	tokens, err := s.issue(created)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}

	if s.changes != nil {
		act := analytics.UserActivity(created, s.now())
		s.changes.Publish(ctx, usecase.Change{Activity: &act})
	}
	if s.logger != nil {
		s.logger.Printf("[Auth] registered user_id=%s role=%s", created.ID, created.Role)
	}
	return Sanitize(created), tokens, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, ErrInvalidCredentials
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}
	if u.Status == user.StatusInactive {
		return user.User{}, Tokens{}, ErrAccountInactive
	}

	tokens, err := s.issue(u)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return Sanitize(u), tokens, nil
}

// Refresh re-reads the user so a role or status change takes effect on the
// next access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}
	if u.Status == user.StatusInactive {
		return Tokens{}, ErrAccountInactive
	}

	tokens, err := s.issue(u)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return tokens, nil
}

func (s *Service) issue(u user.User) (Tokens, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) current() settings.Settings {
	if s.settings == nil {
		return settings.Defaults()
	}
	return s.settings.Get()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func Sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
