package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendafeed/internal/delivery/http/middleware"
	"agendafeed/internal/domain"
)

// fakeAgendaService records the last call and returns canned results.
type fakeAgendaService struct {
	view      *domain.AgendaView
	sel       domain.FilterSelection
	freshness *domain.Freshness
	err       error

	lastClient   string
	lastOverride domain.ViewOverride
	lastDay      string
	lastTier     string
	reloads      int
}

func (f *fakeAgendaService) Load(ctx context.Context) error { return f.err }

func (f *fakeAgendaService) Reload(ctx context.Context) error {
	f.reloads++
	return f.err
}

func (f *fakeAgendaService) View(ctx context.Context, clientID string, override domain.ViewOverride) (*domain.AgendaView, error) {
	f.lastClient = clientID
	f.lastOverride = override
	return f.view, f.err
}

func (f *fakeAgendaService) Days(ctx context.Context) ([]string, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []string{"2025-05-13", "2025-05-14"}, "2025-05-13", nil
}

func (f *fakeAgendaService) Freshness(ctx context.Context) (*domain.Freshness, error) {
	return f.freshness, f.err
}

func (f *fakeAgendaService) Selection(ctx context.Context, clientID string) (domain.FilterSelection, error) {
	f.lastClient = clientID
	return f.sel, f.err
}

func (f *fakeAgendaService) ChangeDay(ctx context.Context, clientID, day string) (domain.FilterSelection, error) {
	f.lastClient, f.lastDay = clientID, day
	return domain.FilterSelection{Day: day, AccessTier: domain.TierAll}, f.err
}

func (f *fakeAgendaService) ChangeTier(ctx context.Context, clientID, tier string) (domain.FilterSelection, error) {
	f.lastClient, f.lastTier = clientID, tier
	return domain.FilterSelection{AccessTier: tier}, f.err
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func withClient(r *http.Request, id string) *http.Request {
	return r.WithContext(middleware.SetClientID(r.Context(), id))
}

func TestAgendaController_GetAgenda(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		err          error
		wantStatus   int
		wantCode     string
		wantDay      *string
		wantTier     *string
		wantSessions int
	}{
		{
			name:         "remembered selection",
			query:        "",
			wantStatus:   http.StatusOK,
			wantSessions: 1,
		},
		{
			name:         "overrides",
			query:        "?day=2025-05-14&tier=Gold",
			wantStatus:   http.StatusOK,
			wantDay:      ptr("2025-05-14"),
			wantTier:     ptr("Gold"),
			wantSessions: 1,
		},
		{
			name:         "empty day override means all days",
			query:        "?day=",
			wantStatus:   http.StatusOK,
			wantDay:      ptr(""),
			wantSessions: 1,
		},
		{
			name:       "malformed day",
			query:      "?day=May+14",
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "feed unavailable",
			err:        fmt.Errorf("load agenda: %w", domain.ErrFeedUnavailable),
			wantStatus: http.StatusBadGateway,
			wantCode:   "internal_error",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAgendaService{
				err: tt.err,
				view: &domain.AgendaView{
					Sessions:     []domain.Session{{ID: "s-1", Title: "Keynote", Date: "2025-05-13"}},
					Days:         []string{"2025-05-13"},
					SelectedDay:  "2025-05-13",
					SelectedTier: domain.TierAll,
				},
			}
			ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

			req := withClient(httptest.NewRequest(http.MethodGet, "/agenda"+tt.query, nil), "client-1")
			rr := httptest.NewRecorder()
			ctrl.GetAgenda(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			require.Nil(t, env.Error)
			assert.Equal(t, "client-1", svc.lastClient)
			assert.Equal(t, tt.wantDay, svc.lastOverride.Day)
			assert.Equal(t, tt.wantTier, svc.lastOverride.Tier)

			var view domain.AgendaView
			require.NoError(t, json.Unmarshal(env.Data, &view))
			assert.Len(t, view.Sessions, tt.wantSessions)
		})
	}
}

func TestAgendaController_ChangeDay(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDay    string
	}{
		{name: "ok", body: `{"day":"2025-05-14"}`, wantStatus: http.StatusOK, wantDay: "2025-05-14"},
		{name: "all days", body: `{"day":""}`, wantStatus: http.StatusOK, wantDay: ""},
		{name: "malformed day", body: `{"day":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"day":"2025-05-14","tier":"Gold"}`, wantStatus: http.StatusBadRequest},
		{name: "not json", body: `day=2025-05-14`, wantStatus: http.StatusBadRequest},
		{
			name:       "invalid selection from service",
			body:       `{"day":"2025-05-14"}`,
			err:        fmt.Errorf("%w: nope", domain.ErrInvalidSelection),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			body:       `{"day":"2025-05-14"}`,
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAgendaService{err: tt.err}
			ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

			req := withClient(httptest.NewRequest(http.MethodPut, "/selection/day", strings.NewReader(tt.body)), "client-1")
			rr := httptest.NewRecorder()
			ctrl.ChangeDay(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var sel domain.FilterSelection
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &sel))
			assert.Equal(t, tt.wantDay, sel.Day)
			assert.Equal(t, "client-1", svc.lastClient)
		})
	}
}

func TestAgendaController_ChangeTier(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTier   string
	}{
		{name: "ok", body: `{"tier":"Gold"}`, wantStatus: http.StatusOK, wantTier: "Gold"},
		{name: "blank tier", body: `{"tier":"  "}`, wantStatus: http.StatusBadRequest},
		{name: "missing tier", body: `{}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAgendaService{}
			ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

			req := httptest.NewRequest(http.MethodPut, "/selection/tier", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			ctrl.ChangeTier(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantTier, svc.lastTier)
				assert.Equal(t, middleware.AnonymousClientID, svc.lastClient)
			}
		})
	}
}

func TestAgendaController_GetDays(t *testing.T) {
	ctrl := NewAgendaController(slog.New(slog.DiscardHandler), &fakeAgendaService{})
	rr := httptest.NewRecorder()
	ctrl.GetDays(rr, httptest.NewRequest(http.MethodGet, "/agenda/days", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got DaysResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &got))
	assert.Equal(t, DaysResponse{Days: []string{"2025-05-13", "2025-05-14"}, DefaultDay: "2025-05-13"}, got)
}

func TestAgendaController_GetFreshness(t *testing.T) {
	svc := &fakeAgendaService{}
	ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

	rr := httptest.NewRecorder()
	ctrl.GetFreshness(rr, httptest.NewRequest(http.MethodGet, "/agenda/freshness", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"freshness":null}`, string(decodeEnvelope(t, rr).Data))

	svc.freshness = &domain.Freshness{Formatted: "May 14, 2024, 11:20 AM"}
	rr = httptest.NewRecorder()
	ctrl.GetFreshness(rr, httptest.NewRequest(http.MethodGet, "/agenda/freshness", nil))
	var got FreshnessResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &got))
	require.NotNil(t, got.Freshness)
	assert.Equal(t, "May 14, 2024, 11:20 AM", got.Freshness.Formatted)
}

func TestAgendaController_Reload(t *testing.T) {
	svc := &fakeAgendaService{}
	ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

	rr := httptest.NewRecorder()
	ctrl.Reload(rr, httptest.NewRequest(http.MethodPost, "/agenda/reload", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, svc.reloads)

	svc.err = fmt.Errorf("load agenda: %w", domain.ErrFeedUnavailable)
	rr = httptest.NewRecorder()
	ctrl.Reload(rr, httptest.NewRequest(http.MethodPost, "/agenda/reload", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestAgendaController_GetSelection(t *testing.T) {
	svc := &fakeAgendaService{sel: domain.FilterSelection{Day: "2025-05-14", AccessTier: "Gold"}}
	ctrl := NewAgendaController(slog.New(slog.DiscardHandler), svc)

	rr := httptest.NewRecorder()
	ctrl.GetSelection(rr, withClient(httptest.NewRequest(http.MethodGet, "/selection", nil), "kiosk-3"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"day":"2025-05-14","access_tier":"Gold"}`, string(decodeEnvelope(t, rr).Data))
	assert.Equal(t, "kiosk-3", svc.lastClient)
}

func ptr(s string) *string { return &s }
