package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/csvutil"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type LeadHandler struct {
	leads *service.LeadService
}

func RegisterLeadRoutes(e *echo.Echo, auth *service.AuthService, leads *service.LeadService) {
	h := &LeadHandler{leads: leads}

	g := e.Group("/api/v1/leads", RequireAuth(auth))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/history", h.History)
}

type createLeadRequest struct {
	PartnerID           uuid.UUID `json:"partner_id"`
	LeadName            string    `json:"lead_name"`
	LeadCompany         *string   `json:"lead_company"`
	Direction           string    `json:"direction"`
	Status              string    `json:"status"`
	IntroDate           string    `json:"intro_date"`
	ContactInfo         *string   `json:"contact_info"`
	CommunicationMethod *string   `json:"communication_method"`
	Notes               *string   `json:"notes"`
}

type updateLeadRequest struct {
	PartnerID           *uuid.UUID `json:"partner_id"`
	LeadName            *string    `json:"lead_name"`
	LeadCompany         *string    `json:"lead_company"`
	Direction           *string    `json:"direction"`
	Status              *string    `json:"status"`
	IntroDate           *string    `json:"intro_date"`
	ContactInfo         *string    `json:"contact_info"`
	CommunicationMethod *string    `json:"communication_method"`
	Notes               *string    `json:"notes"`
}

func (h *LeadHandler) Create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	introDate := time.Now()
	if req.IntroDate != "" {
		parsed, err := parseDate(req.IntroDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("intro_date must be in YYYY-MM-DD format"))
		}
		introDate = parsed
	}

	lead, err := h.leads.Create(c.Request().Context(), user.ID, ports.LeadCreate{
		PartnerID:           req.PartnerID,
		LeadName:            req.LeadName,
		LeadCompany:         req.LeadCompany,
		Direction:           domain.LeadDirection(req.Direction),
		Status:              req.Status,
		IntroDate:           introDate,
		ContactInfo:         req.ContactInfo,
		CommunicationMethod: req.CommunicationMethod,
		Notes:               req.Notes,
	})
	if err != nil {
		return h.mapError(c, err, "unable to create lead")
	}
	return c.JSON(http.StatusCreated, util.Data("lead", lead))
}

// List supports filtering by partner, direction, one or more statuses, and
// an intro date range.
func (h *LeadHandler) List(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	filter, err := parseLeadListFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	leads, err := h.leads.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return h.mapError(c, err, "unable to list leads")
	}
	return c.JSON(http.StatusOK, util.Data("leads", leads))
}

func (h *LeadHandler) Get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid lead id"))
	}

	lead, err := h.leads.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return h.mapError(c, err, "unable to load lead")
	}
	return c.JSON(http.StatusOK, util.Data("lead", lead))
}

func (h *LeadHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid lead id"))
	}

	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	input := ports.LeadUpdate{
		PartnerID:           req.PartnerID,
		LeadName:            req.LeadName,
		LeadCompany:         req.LeadCompany,
		Status:              req.Status,
		ContactInfo:         req.ContactInfo,
		CommunicationMethod: req.CommunicationMethod,
		Notes:               req.Notes,
	}
	if req.Direction != nil {
		direction := domain.LeadDirection(*req.Direction)
		input.Direction = &direction
	}
	if req.IntroDate != nil {
		parsed, err := parseDate(*req.IntroDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("intro_date must be in YYYY-MM-DD format"))
		}
		input.IntroDate = &parsed
	}

	lead, err := h.leads.Update(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return h.mapError(c, err, "unable to update lead")
	}
	return c.JSON(http.StatusOK, util.Data("lead", lead))
}

func (h *LeadHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid lead id"))
	}

	if err := h.leads.Delete(c.Request().Context(), user.ID, id); err != nil {
		return h.mapError(c, err, "unable to delete lead")
	}
	return c.JSON(http.StatusOK, util.Data("message", "lead deleted"))
}

// History returns the lead's status transitions, newest first.
func (h *LeadHandler) History(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid lead id"))
	}

	history, err := h.leads.History(c.Request().Context(), user.ID, id)
	if err != nil {
		return h.mapError(c, err, "unable to load lead history")
	}
	return c.JSON(http.StatusOK, util.Data("history", history))
}

func (h *LeadHandler) mapError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrLeadNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrPartnerNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrLeadNameRequired),
		errors.Is(err, service.ErrLeadInvalidDirection),
		errors.Is(err, service.ErrLeadInvalidStatus):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}

func parseLeadListFilter(c echo.Context) (domain.LeadFilter, error) {
	var filter domain.LeadFilter
	if raw := c.QueryParam("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid partner_id")
		}
		filter.PartnerID = &id
	}
	if raw := c.QueryParam("direction"); raw != "" {
		direction := domain.LeadDirection(raw)
		filter.Direction = &direction
	}
	if statuses, ok := c.QueryParams()["status"]; ok {
		filter.Statuses = statuses
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return filter, errors.New("date_from must be in YYYY-MM-DD format")
		}
		filter.DateFrom = &from
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return filter, errors.New("date_to must be in YYYY-MM-DD format")
		}
		filter.DateTo = &to
	}
	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(csvutil.DateLayout, value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
