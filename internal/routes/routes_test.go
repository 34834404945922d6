package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaigndash/internal/config"
	"campaigndash/internal/dashboard"
	"campaigndash/internal/handlers"
	"campaigndash/internal/notify"
	"campaigndash/internal/render"
	"campaigndash/internal/services"
	"campaigndash/internal/sse"
	"campaigndash/internal/store"
)

type testApp struct {
	router     *chi.Mux
	controller *dashboard.Controller
	hub        *notify.Hub
}

// newBackend fakes the campaign API the dashboard reads from.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/campaigns", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"campaigns":[{"id":1,"name":"Sale","budget":1000,"daily_budget":50,"status":"active","platforms":["meta"]},{"id":2,"name":"Broken","status":"inactive"}]}`)
	})
	r.Get("/campaigns/insights", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"insights":{"impressions":5000}}`)
	})
	r.Get("/campaigns/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if chi.URLParam(r, "id") == "2" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"campaign_not_found","message":"campaign not found"}`)
			return
		}
		fmt.Fprint(w, `{"campaign":{"id":1,"name":"Sale","status":"active","objective":"conversions"}}`)
	})
	r.Get("/campaigns/{id}/insights", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"insights":{"clicks":120,"timestamp":1700000000000}}`)
	})
	r.Get("/campaigns/{id}/insights/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "data: {\"ctr\":\"3.2%\"}\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	})
	return httptest.NewServer(r)
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	backend := newBackend(t)

	st := store.New()
	hub := notify.NewHub(10)
	st.Subscribe(notify.ErrorObserver(hub))

	api := services.NewCampaignAPIClient(backend.URL, nil)
	streams := services.NewStreamManager(backend.URL, st, nil)
	ctrl := dashboard.NewController(api, streams, st, nil)

	renderer, err := render.NewRenderer("en-IN", "UTC")
	require.NoError(t, err)

	h := handlers.NewDashboardHandler(ctrl, renderer, hub, nil)
	h.SetKeepAlive(50 * time.Millisecond)

	cfg := &config.Config{CORSOrigins: []string{"*"}}
	app := &testApp{
		router:     SetupRoutes(cfg, h, nil),
		controller: ctrl,
		hub:        hub,
	}
	t.Cleanup(func() {
		ctrl.Close()
		backend.Close()
	})
	return app
}

func (a *testApp) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeDashboard(t *testing.T, body []byte) render.Dashboard {
	t.Helper()
	var d render.Dashboard
	require.NoError(t, json.Unmarshal(body, &d))
	return d
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
}

func TestDashboardBeforeLoad(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	d := decodeDashboard(t, w.Body.Bytes())
	assert.Empty(t, d.Campaigns)
	assert.False(t, d.GlobalLoaded)
	assert.Equal(t, render.SelectPrompt, d.InsightsPrompt)
}

func TestSelectFlow(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.controller.Load(context.Background()))

	d := decodeDashboard(t, app.do(t, http.MethodGet, "/api/v1/dashboard").Body.Bytes())
	require.Len(t, d.Campaigns, 2)
	assert.Equal(t, "Active", d.Campaigns[0].StatusLabel)
	assert.Equal(t, "50", d.Campaigns[0].DailyBudget)
	assert.Equal(t, []render.Card{{Key: "impressions", Value: "5,000"}}, d.GlobalInsights)

	w := app.do(t, http.MethodPost, "/api/v1/campaigns/1/select")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "1", decodeDashboard(t, w.Body.Bytes()).SelectedCampaignID)

	require.Eventually(t, func() bool {
		s := app.controller.Store().State()
		return s.CampaignDetail != nil && s.Insights != nil && s.StreamSnapshot != nil
	}, 2*time.Second, 10*time.Millisecond)

	d = decodeDashboard(t, app.do(t, http.MethodGet, "/api/v1/dashboard").Body.Bytes())
	require.NotNil(t, d.Detail)
	assert.Equal(t, "conversions", d.Detail.Objective)
	assert.Contains(t, d.Insights, render.Card{Key: "timestamp", Value: "14 Nov 2023, 10:13 pm"})
	assert.Equal(t, []render.Card{{Key: "ctr", Value: "3.2%"}}, d.LiveMetrics)
	assert.True(t, d.Live)
	assert.True(t, d.Campaigns[0].Selected)
}

func TestSelectUnknownCampaign(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.controller.Load(context.Background()))

	w := app.do(t, http.MethodPost, "/api/v1/campaigns/99/select")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "campaign_not_found", body["error"])
}

func TestSelectFailureBecomesNotification(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.controller.Load(context.Background()))

	w := app.do(t, http.MethodPost, "/api/v1/campaigns/2/select")
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		return app.controller.Store().State().Error == "campaign not found"
	}, 2*time.Second, 10*time.Millisecond)

	w = app.do(t, http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Notifications []notify.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notify.SeverityError, body.Notifications[0].Severity)
	assert.Equal(t, "campaign not found", body.Notifications[0].Message)
}

func TestRefresh(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/v1/dashboard/refresh")
	require.Equal(t, http.StatusAccepted, w.Code)

	app.controller.Wait()
	assert.Len(t, app.controller.Store().State().Campaigns, 2)
}

func TestSwaggerRedirect(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/swagger")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}

func TestDashboardEventsStream(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/dashboard/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan sse.Event, 32)
	go func() {
		defer close(events)
		for evt, err := range sse.Read(resp.Body) {
			if err != nil {
				return
			}
			events <- evt
		}
	}()

	next := func(eventType string) sse.Event {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case evt, ok := <-events:
				require.True(t, ok, "event stream ended")
				if evt.Type == eventType {
					return evt
				}
			case <-timeout:
				t.Fatalf("timeout waiting for %s event", eventType)
			}
		}
	}

	first := next("dashboard")
	assert.Empty(t, decodeDashboard(t, []byte(first.Data)).Campaigns)

	require.NoError(t, app.controller.Load(context.Background()))
	for {
		d := decodeDashboard(t, []byte(next("dashboard").Data))
		if len(d.Campaigns) == 2 {
			break
		}
	}

	app.hub.Notify(notify.New(notify.SeverityInfo, "Hello", "world"))
	toast := next("notification")
	var n notify.Notification
	require.NoError(t, json.Unmarshal([]byte(toast.Data), &n))
	assert.Equal(t, "Hello", n.Title)
	assert.Equal(t, n.ID, toast.ID)

	cancel()
}
