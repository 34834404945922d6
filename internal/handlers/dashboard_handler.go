package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campaigndash/internal/dashboard"
	"campaigndash/internal/models"
	"campaigndash/internal/notify"
	"campaigndash/internal/render"
	"campaigndash/internal/sse"
	"campaigndash/internal/store"
)

const defaultKeepAlive = 25 * time.Second

type DashboardHandler struct {
	controller *dashboard.Controller
	renderer   *render.Renderer
	hub        *notify.Hub
	validator  *validator.Validate
	logger     *zap.Logger
	keepAlive  time.Duration
}

func NewDashboardHandler(controller *dashboard.Controller, renderer *render.Renderer, hub *notify.Hub, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		controller: controller,
		renderer:   renderer,
		hub:        hub,
		validator:  validator.New(),
		logger:     logger,
		keepAlive:  defaultKeepAlive,
	}
}

// SetKeepAlive changes how often idle event streams send a comment.
func (h *DashboardHandler) SetKeepAlive(d time.Duration) {
	if d > 0 {
		h.keepAlive = d
	}
}

// @Tags Dashboard
// @Summary Current dashboard view
// @Produce json
// @Success 200 {object} render.Dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.renderer.Dashboard(h.controller.Store().State()))
}

// @Tags Dashboard
// @Summary Reload campaigns and aggregate insights
// @Produce json
// @Success 202 {object} map[string]interface{}
// @Router /api/v1/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.controller.Refresh()
	writeJSONMessage(w, http.StatusAccepted, "refresh started")
}

// @Tags Campaigns
// @Summary Select a campaign
// @Description Loads the campaign detail and insights and switches the live stream to it.
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 202 {object} render.Dashboard
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/select [post]
func (h *DashboardHandler) SelectCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.Var(id, "required,max=128,printascii"); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_campaign_id", "Campaign ID is invalid")
		return
	}

	campaignID := models.CampaignID(id)
	if !knownCampaign(h.controller.Store().State(), campaignID) {
		writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
		return
	}

	h.controller.Select(campaignID)
	writeJSON(w, http.StatusAccepted, h.renderer.Dashboard(h.controller.Store().State()))
}

// @Tags Dashboard
// @Summary Recent notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/notifications [get]
func (h *DashboardHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"notifications": h.hub.Recent()})
}

// @Tags Dashboard
// @Summary Dashboard event stream
// @Description Server-sent events: "dashboard" carries the rendered view after every change, "notification" carries toasts.
// @Produce text/event-stream
// @Router /api/v1/dashboard/events [get]
func (h *DashboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	stream, err := sse.NewWriter(w)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "streaming_unsupported", "Streaming unsupported")
		return
	}

	changed := make(chan struct{}, 1)
	unsubscribe := h.controller.Store().Subscribe(func(prev, next store.ViewState) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	toasts := h.hub.Subscribe()
	defer h.hub.Unsubscribe(toasts)

	if err := h.sendDashboard(stream); err != nil {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			if err := h.sendDashboard(stream); err != nil {
				h.logger.Debug("dashboard stream write failed", zap.Error(err))
				return
			}
		case n, ok := <-toasts:
			if !ok {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				continue
			}
			if err := stream.Send(sse.Event{Type: "notification", ID: n.ID, Data: string(payload)}); err != nil {
				return
			}
		case <-ticker.C:
			if err := stream.Comment("keep-alive"); err != nil {
				return
			}
		}
	}
}

func (h *DashboardHandler) sendDashboard(stream *sse.Writer) error {
	payload, err := json.Marshal(h.renderer.Dashboard(h.controller.Store().State()))
	if err != nil {
		return err
	}
	return stream.Send(sse.Event{Type: "dashboard", Data: string(payload)})
}

// knownCampaign accepts any id until the campaign list has loaded.
func knownCampaign(s store.ViewState, id models.CampaignID) bool {
	if s.Campaigns == nil {
		return true
	}
	for _, c := range s.Campaigns {
		if c.ID == id {
			return true
		}
	}
	return false
}
