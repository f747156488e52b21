package handler

import (
	"errors"
	"strings"
	"time"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const refreshCookieName = "refresh_token"

type AuthCookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	uc     ucauth.AuthUsecase
	cookie AuthCookieConfig
}

func NewAuthHandler(uc ucauth.AuthUsecase, cookie AuthCookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setTokenCookies(c, tokens)
	return created(c, authPayload(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setTokenCookies(c, tokens)
	return ok(c, authPayload(usr, tokens))
}

// Refresh accepts the refresh token from the body and falls back to the cookie.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		tok = strings.TrimSpace(c.Cookies(refreshCookieName))
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setTokenCookies(c, tokens)
	return ok(c, tokens)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookieName, refreshCookieName)
	return response.Success(c, fiber.StatusOK, "logged out", nil)
}

func (h *AuthHandler) setTokenCookies(c fiber.Ctx, tokens ucauth.Tokens) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  now.Add(h.cookie.AccessTTL),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshToken,
		Path:     "/api/v1/auth",
		Expires:  now.Add(h.cookie.RefreshTTL),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func authPayload(u user.User, tokens ucauth.Tokens) map[string]any {
	return map[string]any{
		"user":          dto.NewUserResponse(u),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrRegistrationClosed):
		return middleware.NewAppError(fiber.StatusForbidden, "Registration is currently closed", nil, err)
	case errors.Is(err, ucauth.ErrAccountInactive):
		return middleware.NewAppError(fiber.StatusForbidden, "Account is inactive", nil, err)
	case errors.Is(err, ucauth.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, ucauth.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return internalError(err)
	}
}
