package router

import (
	"rentopia/internal/handlers/auth"
	"rentopia/internal/handlers/booking"
	"rentopia/internal/handlers/payment"
	"rentopia/internal/handlers/place"
	"rentopia/internal/handlers/review"
	"rentopia/internal/handlers/subscription"
	"rentopia/internal/handlers/upload"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Place        place.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Review       review.Handler
	Subscription subscription.Handler
	Upload       upload.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Place.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Subscription.Router(routerGroup)
		r.DomainHandlers.Upload.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
