package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuthRoutes(e *echo.Echo, auth *service.AuthService) {
	h := &AuthHandler{auth: auth}

	g := e.Group("/api/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/google", h.LoginWithGoogle)
	g.POST("/password-reset/request", h.RequestPasswordReset)
	g.POST("/password-reset/confirm", h.ConfirmPasswordReset)

	authed := e.Group("/api/v1/auth", RequireAuth(auth))
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, util.Error("a valid email is required"))
		case errors.Is(err, util.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to register"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("auth", result))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		case errors.Is(err, service.ErrPasswordLoginNotSet):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("auth", result))
}

func (h *AuthHandler) LoginWithGoogle(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, util.Data("auth", result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := CurrentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log out"))
	}
	return c.JSON(http.StatusOK, util.Data("message", "logged out"))
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

// RequestPasswordReset always answers 200 so the endpoint cannot be used to
// probe which emails have accounts.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusInternalServerError, util.Error("unable to send reset code"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("message", "if the email exists, a reset code has been sent"))
}

func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.auth.ConfirmPasswordReset(c.Request().Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetCode):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, util.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to reset password"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("message", "password updated"))
}
