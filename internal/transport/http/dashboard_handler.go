package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

func RegisterDashboardRoutes(e *echo.Echo, auth *service.AuthService, dashboards *service.DashboardService) {
	h := &DashboardHandler{dashboards: dashboards}

	g := e.Group("/api/v1/dashboard", RequireAuth(auth))
	g.GET("/stats", h.Stats)
	g.GET("/top-partners", h.TopPartners)
	g.GET("/recent-leads", h.RecentLeads)
}

// Stats answers the pipeline totals, optionally windowed by ?date_from and
// ?date_to on the lead intro date.
func (h *DashboardHandler) Stats(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	filter, err := parseDashboardFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	stats, err := h.dashboards.Stats(c.Request().Context(), user.ID, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load dashboard stats"))
	}
	return c.JSON(http.StatusOK, util.Data("stats", stats))
}

func (h *DashboardHandler) TopPartners(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	filter, err := parseDashboardFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	partners, err := h.dashboards.TopPartners(c.Request().Context(), user.ID, filter, intQueryParam(c, "limit", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load top partners"))
	}
	return c.JSON(http.StatusOK, util.Data("top_partners", partners))
}

func (h *DashboardHandler) RecentLeads(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	filter, err := parseDashboardFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	leads, err := h.dashboards.RecentLeads(c.Request().Context(), user.ID, filter, intQueryParam(c, "limit", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load recent leads"))
	}
	return c.JSON(http.StatusOK, util.Data("recent_leads", leads))
}

func parseDashboardFilter(c echo.Context) (domain.DashboardFilter, error) {
	var filter domain.DashboardFilter
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

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
