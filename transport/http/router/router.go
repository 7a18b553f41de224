package router

import (
	"github.com/go-chi/chi/v5"

	"plek/internal/handlers/booking"
	"plek/internal/handlers/jobs"
	"plek/internal/handlers/revenue"
	"plek/internal/handlers/webhook"
)

type DomainHandlers struct {
	Booking booking.Handler
	Webhook webhook.Handler
	Jobs    jobs.Handler
	Revenue revenue.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Webhook.Router(routerGroup)
		r.DomainHandlers.Jobs.Router(routerGroup)
		r.DomainHandlers.Revenue.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
