package apitest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/middleware"
)

// NewRouter returns the handler serving the six-cities API from s.
//
// Routes:
//
//	GET    /offers                   → list
//	GET    /offers/{id}              → detail
//	GET    /comments/{id}            → reviews
//	GET    /login                    → current session (401 without one)
//	POST   /login                    → new session
//	DELETE /logout                   → close session
//	POST   /comments/{id}            → add review (protected)
//	GET    /favorite                 → favorites (protected)
//	POST   /favorite/{id}/{status}   → toggle favorite (protected)
func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(s.injectFailures)
	r.Use(middleware.TokenAuth(s.lookupSession))

	r.Get("/offers", s.listOffers)
	r.Get("/offers/{id}", s.getOffer)
	r.Get("/comments/{id}", s.listReviews)
	r.Post("/login", s.login)

	// Protected group: requires a valid X-Token
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/login", s.currentUser)
		r.Delete("/logout", s.logout)
		r.Post("/comments/{id}", s.postReview)
		r.Get("/favorite", s.listFavorites)
		r.Post("/favorite/{id}/{status}", s.toggleFavorite)
	})

	return r
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, fail := s.record(r); fail {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}
