package apitest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/SixCities/internal/middleware"
	"github.com/atinyakov/SixCities/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) listOffers(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, s.previews(email))
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserFromContext(r.Context())
	offer, ok := s.detail(chi.URLParam(r, "id"), email)
	if !ok {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.hasOffer(id) {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.reviewList(id))
}

// login opens a session for any credentials passing AuthData.Validate.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.AuthData
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := creds.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token := s.openSession(creds.Email)
	writeJSON(w, http.StatusCreated, models.UserData{
		Email: creds.Email,
		Token: token,
		Name:  nameOf(creds.Email),
	})
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, models.UserData{
		Email: email,
		Token: r.Header.Get(middleware.TokenHeader),
		Name:  nameOf(email),
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.closeSession(r.Header.Get(middleware.TokenHeader))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.hasOffer(id) {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	var data models.ReviewData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	data.OfferID = models.OfferID(id)
	if err := data.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review := s.addReview(id, middleware.GetUserFromContext(r.Context()), data)
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.favoriteList(middleware.GetUserFromContext(r.Context())))
}

var errBadStatus = errors.New("status must be 0 or 1")

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var fav bool
	switch chi.URLParam(r, "status") {
	case models.FavoriteAdd.PathSegment():
		fav = true
	case models.FavoriteDelete.PathSegment():
		fav = false
	default:
		http.Error(w, errBadStatus.Error(), http.StatusBadRequest)
		return
	}

	email := middleware.GetUserFromContext(r.Context())
	offer, ok := s.setFavorite(email, chi.URLParam(r, "id"), fav)
	if !ok {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	status := http.StatusOK
	if fav {
		status = http.StatusCreated
	}
	writeJSON(w, status, offer)
}
