package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type DealHandler struct {
	deals *service.DealService
}

func RegisterDealRoutes(e *echo.Echo, auth *service.AuthService, deals *service.DealService) {
	h := &DealHandler{deals: deals}

	g := e.Group("/api/v1/deals", RequireAuth(auth))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createDealRequest struct {
	LeadID             uuid.UUID `json:"lead_id"`
	DealValue          float64   `json:"deal_value"`
	CommissionPercent  float64   `json:"commission_percent"`
	IsRecurring        bool      `json:"is_recurring"`
	RecurringFrequency *string   `json:"recurring_frequency"`
	Tier               *string   `json:"tier"`
	Status             string    `json:"status"`
	CloseDate          *string   `json:"close_date"`
	Notes              *string   `json:"notes"`
}

type updateDealRequest struct {
	DealValue          *float64 `json:"deal_value"`
	CommissionPercent  *float64 `json:"commission_percent"`
	IsRecurring        *bool    `json:"is_recurring"`
	RecurringFrequency *string  `json:"recurring_frequency"`
	Tier               *string  `json:"tier"`
	Status             *string  `json:"status"`
	CloseDate          *string  `json:"close_date"`
	Notes              *string  `json:"notes"`
}

// dealResponse adds the derived commission to a stored deal.
type dealResponse struct {
	domain.Deal
	CommissionAmount float64 `json:"commission_amount"`
}

type dealWithLeadResponse struct {
	domain.DealWithLead
	CommissionAmount float64 `json:"commission_amount"`
}

func newDealResponse(deal *domain.Deal) dealResponse {
	return dealResponse{Deal: *deal, CommissionAmount: deal.CommissionAmount()}
}

func newDealWithLeadResponse(deal domain.DealWithLead) dealWithLeadResponse {
	return dealWithLeadResponse{DealWithLead: deal, CommissionAmount: deal.CommissionAmount()}
}

func (h *DealHandler) Create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req createDealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	input := ports.DealCreate{
		LeadID:            req.LeadID,
		DealValue:         req.DealValue,
		CommissionPercent: req.CommissionPercent,
		IsRecurring:       req.IsRecurring,
		Status:            domain.DealStatus(req.Status),
		Notes:             req.Notes,
	}
	if req.RecurringFrequency != nil {
		freq := domain.RecurringFrequency(*req.RecurringFrequency)
		input.RecurringFrequency = &freq
	}
	if req.Tier != nil {
		tier := domain.DealTier(*req.Tier)
		input.Tier = &tier
	}
	if req.CloseDate != nil {
		parsed, err := parseDate(*req.CloseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("close_date must be in YYYY-MM-DD format"))
		}
		input.CloseDate = &parsed
	}

	deal, err := h.deals.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return h.mapError(c, err, "unable to create deal")
	}
	return c.JSON(http.StatusCreated, util.Data("deal", newDealResponse(deal)))
}

// List supports filtering by lead, partner, status, tier, recurrence, and a
// close date range.
func (h *DealHandler) List(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	filter, err := parseDealListFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	deals, err := h.deals.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return h.mapError(c, err, "unable to list deals")
	}

	responses := make([]dealWithLeadResponse, 0, len(deals))
	for _, deal := range deals {
		responses = append(responses, newDealWithLeadResponse(deal))
	}
	return c.JSON(http.StatusOK, util.Data("deals", responses))
}

func (h *DealHandler) Get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid deal id"))
	}

	deal, err := h.deals.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return h.mapError(c, err, "unable to load deal")
	}
	return c.JSON(http.StatusOK, util.Data("deal", newDealWithLeadResponse(*deal)))
}

func (h *DealHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid deal id"))
	}

	var req updateDealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	input := ports.DealUpdate{
		DealValue:         req.DealValue,
		CommissionPercent: req.CommissionPercent,
		IsRecurring:       req.IsRecurring,
		Notes:             req.Notes,
	}
	if req.RecurringFrequency != nil {
		freq := domain.RecurringFrequency(*req.RecurringFrequency)
		input.RecurringFrequency = &freq
	}
	if req.Tier != nil {
		tier := domain.DealTier(*req.Tier)
		input.Tier = &tier
	}
	if req.Status != nil {
		status := domain.DealStatus(*req.Status)
		input.Status = &status
	}
	if req.CloseDate != nil {
		parsed, err := parseDate(*req.CloseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("close_date must be in YYYY-MM-DD format"))
		}
		input.CloseDate = &parsed
	}

	deal, err := h.deals.Update(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return h.mapError(c, err, "unable to update deal")
	}
	return c.JSON(http.StatusOK, util.Data("deal", newDealResponse(deal)))
}

func (h *DealHandler) Delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid deal id"))
	}

	if err := h.deals.Delete(c.Request().Context(), user.ID, id); err != nil {
		return h.mapError(c, err, "unable to delete deal")
	}
	return c.JSON(http.StatusOK, util.Data("message", "deal deleted"))
}

func parseDealListFilter(c echo.Context) (domain.DealFilter, error) {
	var filter domain.DealFilter
	if raw := c.QueryParam("lead_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid lead_id")
		}
		filter.LeadID = &id
	}
	if raw := c.QueryParam("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid partner_id")
		}
		filter.PartnerID = &id
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := domain.DealStatus(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("tier"); raw != "" {
		tier := domain.DealTier(raw)
		filter.Tier = &tier
	}
	if raw := c.QueryParam("is_recurring"); raw != "" {
		recurring, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("is_recurring must be true or false")
		}
		filter.IsRecurring = &recurring
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

func (h *DealHandler) mapError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrDealNotFound), errors.Is(err, service.ErrLeadNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrDealInvalidStatus),
		errors.Is(err, service.ErrDealInvalidTier),
		errors.Is(err, service.ErrDealInvalidFrequency),
		errors.Is(err, service.ErrDealNegativeValue),
		errors.Is(err, service.ErrDealInvalidCommission),
		errors.Is(err, service.ErrDealFrequencyRequired):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
