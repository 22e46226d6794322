package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func RegisterAccountRoutes(e *echo.Echo, auth *service.AuthService, accounts *service.AccountService) {
	h := &AccountHandler{accounts: accounts}

	g := e.Group("/api/v1/account", RequireAuth(auth))
	g.GET("/stats", h.Stats)
	g.POST("/clear-data", h.ClearData)
	g.DELETE("", h.Delete)
}

// confirmRequest is shared by the two destructive account endpoints; both
// require the user to type the exact confirmation text.
type confirmRequest struct {
	ConfirmText string `json:"confirm_text"`
}

func (h *AccountHandler) Stats(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	stats, err := h.accounts.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load account stats"))
	}
	return c.JSON(http.StatusOK, util.Data("stats", stats))
}

// ClearData wipes the user's CRM data but keeps the account.
func (h *AccountHandler) ClearData(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.ConfirmText != service.DeleteConfirmation {
		return c.JSON(http.StatusBadRequest, util.Error(service.ErrDeleteNotConfirmed.Error()))
	}

	if err := h.accounts.ClearData(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to clear data"))
	}
	return c.JSON(http.StatusOK, util.Data("message", "all data cleared"))
}

// Delete removes the account. The request body must repeat the exact
// confirmation text.
func (h *AccountHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.accounts.Delete(c.Request().Context(), user.ID, req.ConfirmText); err != nil {
		switch {
		case errors.Is(err, service.ErrDeleteNotConfirmed):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to delete account"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("message", "account deleted"))
}
