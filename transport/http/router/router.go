package router

import (
	"github.com/go-chi/chi/v5"

	"yujin/internal/handlers/auth"
	"yujin/internal/handlers/availability"
	"yujin/internal/handlers/booking"
	"yujin/internal/handlers/contact"
	"yujin/internal/handlers/formflow"
	"yujin/internal/handlers/health"
	"yujin/internal/handlers/offline"
	"yujin/internal/handlers/tracking"
	"yujin/transport/http/middleware"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Contact      contact.Handler
	FormFlow     formflow.Handler
	Health       health.Handler
	Offline      offline.Handler
	Tracking     tracking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.FormFlow.Router(routerGroup)
		r.DomainHandlers.Tracking.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.AuthMiddleware.APIKey)
			adminGroup.Use(r.AuthMiddleware.Auth)
			adminGroup.Use(r.AuthMiddleware.RBAC)

			r.DomainHandlers.Auth.AdminRouter(adminGroup)
			r.DomainHandlers.Booking.AdminRouter(adminGroup)
			r.DomainHandlers.Offline.AdminRouter(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
