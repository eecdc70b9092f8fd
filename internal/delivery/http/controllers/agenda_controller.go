package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"agendafeed/internal/delivery/http/helpers"
	"agendafeed/internal/delivery/http/middleware"
	"agendafeed/internal/domain"
)

// ChangeDayRequest is the request body for PUT /selection/day. An empty day
// selects every day.
type ChangeDayRequest struct {
	Day string `json:"day"`
}

// Validate implements Validator.
func (c ChangeDayRequest) Validate() []string {
	if c.Day != "" && !domain.IsDayKey(c.Day) {
		return []string{"day must be YYYY-MM-DD or empty"}
	}
	return nil
}

// ChangeTierRequest is the request body for PUT /selection/tier.
type ChangeTierRequest struct {
	Tier string `json:"tier"`
}

// Validate implements Validator.
func (c ChangeTierRequest) Validate() []string {
	if strings.TrimSpace(c.Tier) == "" {
		return []string{"tier is required"}
	}
	return nil
}

// DaysResponse is the data payload for GET /agenda/days.
type DaysResponse struct {
	Days       []string `json:"days"`
	DefaultDay string   `json:"default_day"`
}

// FreshnessResponse is the data payload for GET /agenda/freshness. Freshness
// is null when the feed carries no timestamp.
type FreshnessResponse struct {
	Freshness *domain.Freshness `json:"freshness"`
}

// ReloadResponse is the data payload for POST /agenda/reload.
type ReloadResponse struct {
	Status string `json:"status"`
}

// AgendaViewSuccessResponse is the success envelope for GET /agenda (200).
type AgendaViewSuccessResponse struct {
	Data  *domain.AgendaView `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SelectionSuccessResponse is the success envelope for selection endpoints (200).
type SelectionSuccessResponse struct {
	Data  domain.FilterSelection `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type AgendaController struct {
	Logger  *slog.Logger
	Service domain.AgendaService
}

func NewAgendaController(logger *slog.Logger, svc domain.AgendaService) *AgendaController {
	return &AgendaController{
		Logger:  logger,
		Service: svc,
	}
}

// GetAgenda godoc
// @Summary Get the filtered agenda
// @Description Returns sessions for the caller's remembered day and tier, ordered by start time, with the day list and data freshness. The day and tier query parameters override the remembered selection for this request only.
// @Tags agenda
// @Produce json
// @Param X-Client-ID header string false "Client whose remembered selection is used"
// @Param day query string false "Day (YYYY-MM-DD); empty for all days"
// @Param tier query string false "Access tier, or All"
// @Success 200 {object} controllers.AgendaViewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda [get]
func (c *AgendaController) GetAgenda(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var override domain.ViewOverride
	if q.Has("day") {
		day := strings.TrimSpace(q.Get("day"))
		if day != "" && !domain.IsDayKey(day) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "day must be YYYY-MM-DD or empty")
			return
		}
		override.Day = &day
	}
	if q.Has("tier") {
		tier := q.Get("tier")
		override.Tier = &tier
	}

	view, err := c.Service.View(r.Context(), middleware.ClientIDFromContext(r.Context()), override)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// GetDays godoc
// @Summary List agenda days
// @Description Returns the Day Index and the day selected when nothing is remembered.
// @Tags agenda
// @Produce json
// @Success 200 {object} helpers.APIResponse "data: controllers.DaysResponse"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda/days [get]
func (c *AgendaController) GetDays(w http.ResponseWriter, r *http.Request) {
	days, defaultDay, err := c.Service.Days(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DaysResponse{Days: days, DefaultDay: defaultDay})
}

// GetFreshness godoc
// @Summary Get data freshness
// @Description Returns when the agenda data was last refreshed, in the event timezone, or null when unknown.
// @Tags agenda
// @Produce json
// @Success 200 {object} helpers.APIResponse "data: controllers.FreshnessResponse"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda/freshness [get]
func (c *AgendaController) GetFreshness(w http.ResponseWriter, r *http.Request) {
	freshness, err := c.Service.Freshness(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FreshnessResponse{Freshness: freshness})
}

// Reload godoc
// @Summary Reload the agenda feed
// @Description Discards the loaded agenda and fetches the feed again.
// @Tags agenda
// @Produce json
// @Success 200 {object} helpers.APIResponse "data: controllers.ReloadResponse"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda/reload [post]
func (c *AgendaController) Reload(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Reload(r.Context()); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ReloadResponse{Status: "reloaded"})
}

// GetSelection godoc
// @Summary Get the remembered selection
// @Description Returns the caller's day and tier. With no remembered day, the default day is returned.
// @Tags selection
// @Produce json
// @Param X-Client-ID header string false "Client whose remembered selection is used"
// @Success 200 {object} controllers.SelectionSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /selection [get]
func (c *AgendaController) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := c.Service.Selection(r.Context(), middleware.ClientIDFromContext(r.Context()))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sel)
}

// ChangeDay godoc
// @Summary Change the selected day
// @Description Persists the caller's day choice.
// @Tags selection
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client whose remembered selection is updated"
// @Param body body ChangeDayRequest true "New day"
// @Success 200 {object} controllers.SelectionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /selection/day [put]
func (c *AgendaController) ChangeDay(w http.ResponseWriter, r *http.Request) {
	var req ChangeDayRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sel, err := c.Service.ChangeDay(r.Context(), middleware.ClientIDFromContext(r.Context()), req.Day)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sel)
}

// ChangeTier godoc
// @Summary Change the selected access tier
// @Description Persists the caller's tier choice. Unknown tiers are accepted and simply match nothing.
// @Tags selection
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client whose remembered selection is updated"
// @Param body body ChangeTierRequest true "New tier"
// @Success 200 {object} controllers.SelectionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /selection/tier [put]
func (c *AgendaController) ChangeTier(w http.ResponseWriter, r *http.Request) {
	var req ChangeTierRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sel, err := c.Service.ChangeTier(r.Context(), middleware.ClientIDFromContext(r.Context()), req.Tier)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sel)
}

func (c *AgendaController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrFeedUnavailable):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeInternalError, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
