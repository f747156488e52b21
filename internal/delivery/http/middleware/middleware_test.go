package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/domain/policy"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *jwt.HMACService) {
	t.Helper()

	tokens := jwt.NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	logger := log.New(io.Discard, "", 0)

	app := fiber.New()
	app.Use(NewErrorMiddleware(logger).Middleware())
	app.Use(NewAccessLogMiddleware(logger).Middleware())

	authn := NewAuthMiddleware(tokens).Middleware()
	pol := NewPolicyMiddleware(policy.NewAuthorizer())

	app.Get("/me", authn, func(c fiber.Ctx) error {
		s, ok := SubjectFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "", nil, nil)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{
			"id":   s.UserID.String(),
			"role": string(s.Role),
		})
	})
	app.Get("/admin", authn, pol.RequireAdmin(), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("boom")
	})

	return app, tokens
}

func decode(t *testing.T, res *http.Response) response.Envelope {
	t.Helper()
	defer res.Body.Close()
	var out response.Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	body := decode(t, res)
	assert.Equal(t, fiber.StatusUnauthorized, body.Status)
}

func TestAuthMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	app, tokens := newTestApp(t)
	id := uuid.New()
	tok, err := tokens.GenerateAccessToken(id, "rec@example.com", "recruiter")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	body := decode(t, res)
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id.String(), data["id"])
	assert.Equal(t, "recruiter", data["role"])

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok})
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	app, tokens := newTestApp(t)
	tok, err := tokens.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Invalid token", decode(t, res).Message)
}

func TestRequireAdminReturnsPolicyReason(t *testing.T) {
	app, tokens := newTestApp(t)

	seeker, err := tokens.GenerateAccessToken(uuid.New(), "s@example.com", "seeker")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+seeker)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	assert.Equal(t, "admin privileges required", decode(t, res).Message)

	admin, err := tokens.GenerateAccessToken(uuid.New(), "a@example.com", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, response.MessageInternalServerError, decode(t, res).Message)
}

func TestBearerTokenFromHeader(t *testing.T) {
	tok, ok := bearerTokenFromHeader("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerTokenFromHeader("Basic abc")
	assert.False(t, ok)
	_, ok = bearerTokenFromHeader("Bearer   ")
	assert.False(t, ok)
}

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"app error keeps message", NewAppError(fiber.StatusConflict, "Email already registered", nil, nil), fiber.StatusConflict, "Email already registered"},
		{"app error default message", NewAppError(fiber.StatusNotFound, "", nil, nil), fiber.StatusNotFound, response.MessageNotFound},
		{"internal detail hidden", NewAppError(fiber.StatusInternalServerError, "pq: relation missing", nil, nil), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"unavailable passes through", NewAppError(fiber.StatusServiceUnavailable, "db down", nil, nil), fiber.StatusServiceUnavailable, response.MessageServiceUnavailable},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), fiber.StatusMethodNotAllowed, "Method Not Allowed"},
		{"plain error", io.ErrUnexpectedEOF, fiber.StatusInternalServerError, response.MessageInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := normalizeError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}
