package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/user"
	"jobboard/internal/usecase"
	"jobboard/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrProfileUpdatesDisabled = errors.New("profile updates are disabled")
	ErrSelfDelete             = errors.New("cannot delete own account")
	ErrInternal               = errors.New("internal error")
)

type UpdateMeInput struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	Password    *string
	Bio         *string
	Skills      []string
}

type CreateInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
}

type UpdateInput struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	Role        *string
	Status      *string
}

type Service struct {
	users    user.Repository
	settings usecase.SettingsProvider
	changes  usecase.ChangePublisher
	logger   *log.Logger

	now func() time.Time
}

func NewService(users user.Repository, settings usecase.SettingsProvider, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{users: users, settings: settings, changes: changes, logger: logger, now: time.Now}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return s.Get(ctx, userID)
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	if s.settings != nil && !s.settings.Get().AllowProfileUpdates {
		return user.User{}, ErrProfileUpdatesDisabled
	}

	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.FullName = name
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}
	if in.PhoneNumber != nil {
		usr.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Bio != nil {
		usr.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Skills != nil {
		usr.Skills = cleanSkills(in.Skills)
	}
	if in.Password != nil {
		if !auth.IsValidPassword(*in.Password) {
			return user.User{}, ErrInvalidInput
		}
		hash, err := auth.HashPassword(strings.TrimSpace(*in.Password))
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = hash
	}

	return s.save(ctx, usr)
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range users {
		users[i] = auth.Sanitize(users[i])
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return auth.Sanitize(u), nil
}

// Create is the admin path; unlike self registration it may create admins.
func (s *Service) Create(ctx context.Context, in CreateInput) (user.User, error) {
	email := auth.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.FullName)
	role, ok := user.ParseRole(in.Role)
	if email == "" || name == "" || !ok || !auth.IsValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
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
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, ErrInternal
	}

	created, err := s.load(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	s.publish(ctx, &created)
	return auth.Sanitize(created), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (user.User, error) {
	usr, err := s.load(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.FullName = name
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}
	if in.PhoneNumber != nil {
		usr.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Role != nil {
		role, ok := user.ParseRole(*in.Role)
		if !ok {
			return user.User{}, ErrInvalidInput
		}
		usr.Role = role
	}
	if in.Status != nil {
		switch st := user.Status(strings.ToLower(strings.TrimSpace(*in.Status))); st {
		case user.StatusActive, user.StatusInactive:
			usr.Status = st
		default:
			return user.User{}, ErrInvalidInput
		}
	}

	return s.save(ctx, usr)
}

func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	s.publish(ctx, nil)
	if s.logger != nil {
		s.logger.Printf("[Users] deleted user_id=%s by=%s", id, actorID)
	}
	return nil
}

func (s *Service) RoleStats(ctx context.Context) (user.RoleCounts, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return counts, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u, nil
}

func (s *Service) save(ctx context.Context, usr user.User) (user.User, error) {
	if err := s.users.UpdateUser(ctx, usr); err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return user.User{}, ErrEmailTaken
		case errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrNotFound
		default:
			return user.User{}, ErrInternal
		}
	}

	updated, err := s.load(ctx, usr.ID)
	if err != nil {
		return user.User{}, err
	}
	s.publish(ctx, nil)
	return auth.Sanitize(updated), nil
}

func (s *Service) publish(ctx context.Context, created *user.User) {
	if s.changes == nil {
		return
	}
	ch := usecase.Change{}
	if created != nil {
		act := analytics.UserActivity(*created, s.now())
		ch.Activity = &act
	}
	s.changes.Publish(ctx, ch)
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, sk := range in {
		sk = strings.TrimSpace(sk)
		if sk == "" {
			continue
		}
		k := strings.ToLower(sk)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, sk)
	}
	return out
}
