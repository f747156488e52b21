package auth

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	user.Repository
	byID map[uuid.UUID]user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

type fixedSettings settings.Settings

func (f fixedSettings) Get() settings.Settings { return settings.Settings(f) }

type recorder struct{ changes []usecase.Change }

func (r *recorder) Publish(_ context.Context, ch usecase.Change) { r.changes = append(r.changes, ch) }

func newTestService(users *memUsers, s settings.Settings, rec *recorder) *Service {
	if rec == nil {
		rec = &recorder{}
	}
	tokens := jwt.NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	return NewService(users, tokens, fixedSettings(s), rec, nil)
}

func TestRegisterDefaultsToSeeker(t *testing.T) {
	users := newMemUsers()
	rec := &recorder{}
	svc := newTestService(users, settings.Defaults(), rec)

	u, tokens, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Ann Lee",
		Email:    "  Ann@Example.com ",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, user.RoleSeeker, u.Role)
	assert.Empty(t, u.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	require.Len(t, rec.changes, 1)
	require.NotNil(t, rec.changes[0].Activity)
	assert.Equal(t, "New seeker registered - Ann Lee", rec.changes[0].Activity.Message)
}

func TestRegisterRejections(t *testing.T) {
	closed := settings.Defaults()
	closed.AllowRegistration = false

	cases := []struct {
		name string
		s    settings.Settings
		in   RegisterInput
		want error
	}{
		{"closed", closed, RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1"}, ErrRegistrationClosed},
		{"short password", settings.Defaults(), RegisterInput{FullName: "A", Email: "a@x.io", Password: "short"}, ErrInvalidInput},
		{"missing name", settings.Defaults(), RegisterInput{Email: "a@x.io", Password: "password1"}, ErrInvalidInput},
		{"admin role", settings.Defaults(), RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1", Role: "admin"}, ErrInvalidInput},
		{"bad role", settings.Defaults(), RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1", Role: "owner"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := newTestService(newMemUsers(), tc.s, nil).Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemUsers()
	svc := newTestService(users, settings.Defaults(), nil)
	in := RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1", Role: "recruiter"}

	_, _, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegisterWithoutPublisher(t *testing.T) {
	users := newMemUsers()
	tokens := jwt.NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	svc := NewService(users, tokens, fixedSettings(settings.Defaults()), nil, nil)

	u, _, err := svc.Register(context.Background(), RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)

	_, _, err = svc.Register(context.Background(), RegisterInput{FullName: "A", Email: "a@x.io", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestLoginAndRefresh(t *testing.T) {
	users := newMemUsers()
	svc := newTestService(users, settings.Defaults(), nil)
	registered, _, err := svc.Register(context.Background(), RegisterInput{FullName: "R", Email: "r@x.io", Password: "password1", Role: "recruiter"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{Email: "r@x.io", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	u, tokens, err := svc.Login(context.Background(), LoginInput{Email: "R@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	// promote, then refresh picks up the new role
	stored := users.byID[u.ID]
	stored.Role = user.RoleAdmin
	users.byID[u.ID] = stored

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.tokens.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLoginInactiveAccount(t *testing.T) {
	users := newMemUsers()
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	id := uuid.New()
	users.byID[id] = user.User{ID: id, Email: "x@x.io", PasswordHash: hash, Role: user.RoleSeeker, Status: user.StatusInactive}

	_, _, err = newTestService(users, settings.Defaults(), nil).Login(context.Background(), LoginInput{Email: "x@x.io", Password: "password1"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
