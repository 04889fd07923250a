package transport

import (
	"net/http"

	"letsgo/internal/shared/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает HTTP API. ws (обработчик WebSocket) может быть nil.
func NewRouter(h *HTTPHandler, jwt TokenValidator, ws http.HandlerFunc, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	// liveness
	r.Get("/health", h.handleHealth)

	r.Post("/devices", h.handleRegisterDevice)
	if ws != nil {
		r.Get("/ws", ws)
	}

	r.Route("/app", func(r chi.Router) {
		r.Use(JWTMiddleware(jwt, log))

		r.Get("/state", h.action(h.state))
		r.Post("/token/refresh", h.handleRefreshToken)
		r.Post("/boot", h.action(h.boot))

		r.Post("/onboarding/next", h.action(h.nextSlide))
		r.Post("/onboarding/skip", h.action(h.skipOnboarding))

		r.Post("/auth/toggle", h.action(h.toggleAuth))
		r.Post("/auth/submit", h.action(h.submitAuth))
		r.Post("/logout", h.action(h.logout))

		r.Post("/screens/{screen}", h.action(h.showScreen))
		r.Post("/nav/{item}", h.action(h.nav))
		r.Post("/back", h.action(h.back))

		r.Post("/destination", h.action(h.setDestination))
		r.Post("/quick/{label}", h.action(h.quickAction))
		r.Post("/rides/find", h.action(h.findRides))
		r.Post("/vehicle", h.action(h.selectVehicle))
		r.Post("/booking/confirm", h.action(h.confirmBooking))

		r.Post("/signals/{signal}", h.action(h.signal))
		r.Post("/location/refresh", h.action(h.refreshLocation))
	})

	log.Info(logger.Entry{
		Action:  "http_routes_registered",
		Message: "LetsGo routes registered",
	})
	return r
}
