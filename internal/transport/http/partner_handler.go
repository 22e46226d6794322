package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type PartnerHandler struct {
	partners *service.PartnerService
}

func RegisterPartnerRoutes(e *echo.Echo, auth *service.AuthService, partners *service.PartnerService) {
	h := &PartnerHandler{partners: partners}

	g := e.Group("/api/v1/partners", RequireAuth(auth))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createPartnerRequest struct {
	CompanyName string  `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Services    *string `json:"services"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

type updatePartnerRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Services    *string `json:"services"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

func (h *PartnerHandler) Create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req createPartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	partner, err := h.partners.Create(c.Request().Context(), user.ID, ports.PartnerCreate{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Services:    req.Services,
		Website:     req.Website,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrPartnerCompanyRequired) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create partner"))
	}
	return c.JSON(http.StatusCreated, util.Data("partner", partner))
}

// List returns every partner the user owns with its referral count.
func (h *PartnerHandler) List(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	partners, err := h.partners.List(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list partners"))
	}
	return c.JSON(http.StatusOK, util.Data("partners", partners))
}

func (h *PartnerHandler) Get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid partner id"))
	}

	partner, err := h.partners.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load partner"))
	}
	return c.JSON(http.StatusOK, util.Data("partner", partner))
}

func (h *PartnerHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid partner id"))
	}

	var req updatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	partner, err := h.partners.Update(c.Request().Context(), user.ID, id, ports.PartnerUpdate{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Services:    req.Services,
		Website:     req.Website,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartnerNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrPartnerCompanyRequired):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update partner"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("partner", partner))
}

// Delete removes the partner along with its leads, history, and deals.
func (h *PartnerHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid partner id"))
	}

	if err := h.partners.Delete(c.Request().Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete partner"))
	}
	return c.JSON(http.StatusOK, util.Data("message", "partner deleted"))
}
