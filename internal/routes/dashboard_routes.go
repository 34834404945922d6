package routes

import (
	"github.com/go-chi/chi/v5"

	"campaigndash/internal/handlers"
)

func RegisterDashboardRoutes(router chi.Router, h *handlers.DashboardHandler) {
	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.GetDashboard)
		r.Post("/refresh", h.Refresh)
		r.Get("/events", h.Events)
	})
	router.Post("/campaigns/{id}/select", h.SelectCampaign)
	router.Get("/notifications", h.ListNotifications)
}
