package router

import (
	"helm/internal/handlers/availability"
	"helm/internal/handlers/booking"
	"helm/internal/handlers/yacht"
	"helm/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Yacht        yacht.Handler
	Availability availability.Handler
	Booking      booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Yacht.Router(routerGroup, r.Auth.APIKey)
		r.DomainHandlers.Booking.Router(routerGroup, r.Auth.APIKey)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
