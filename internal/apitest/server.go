// Package apitest provides an in-memory six-cities API served over
// httptest, for exercising the client end to end.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/models"
)

// Seed is the initial data of a Server.
type Seed struct {
	Offers  []models.CompleteOffer
	Reviews map[string][]models.Review
}

// Server is a running fake API. Its URL field is the base URL for api.NewClient.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	offers    []models.CompleteOffer
	reviews   map[string][]models.Review
	sessions  map[string]string
	favorites map[string]map[string]bool
	failures  map[string]int
	hits      []string

	now func() time.Time
}

// NewServer starts a Server with seed data. Close it when done.
func NewServer(seed Seed, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		offers:    append([]models.CompleteOffer(nil), seed.Offers...),
		reviews:   make(map[string][]models.Review),
		sessions:  make(map[string]string),
		favorites: make(map[string]map[string]bool),
		failures:  make(map[string]int),
		now:       time.Now,
	}
	for id, list := range seed.Reviews {
		s.reviews[id] = append([]models.Review(nil), list...)
	}
	s.Server = httptest.NewServer(NewRouter(s, logger))
	return s
}

// FailNext makes the next request matching "METHOD /path" answer with status.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Hits returns the "METHOD /path" of every request served so far.
func (s *Server) Hits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.hits...)
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) record(r *http.Request) (status int, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	route := r.Method + " " + r.URL.Path
	s.hits = append(s.hits, route)
	if status, ok := s.failures[route]; ok {
		delete(s.failures, route)
		return status, true
	}
	return 0, false
}

func (s *Server) lookupSession(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.sessions[token]
	return email, ok
}

func (s *Server) openSession(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = email
	return token
}

func (s *Server) closeSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// previews returns the offer list as seen by email ("" for anonymous).
func (s *Server) previews(email string) []models.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		out = append(out, preview(o, s.favorites[email][o.ID]))
	}
	return out
}

func (s *Server) detail(id, email string) (models.CompleteOffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.offers {
		if o.ID == id {
			o.IsFavorite = s.favorites[email][id]
			return o, true
		}
	}
	return models.CompleteOffer{}, false
}

func (s *Server) favoriteList(email string) []models.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Offer{}
	for _, o := range s.offers {
		if s.favorites[email][o.ID] {
			out = append(out, preview(o, true))
		}
	}
	return out
}

func (s *Server) setFavorite(email, id string, fav bool) (models.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.offers {
		if o.ID != id {
			continue
		}
		set := s.favorites[email]
		if set == nil {
			set = make(map[string]bool)
			s.favorites[email] = set
		}
		if fav {
			set[id] = true
		} else {
			delete(set, id)
		}
		return preview(o, fav), true
	}
	return models.Offer{}, false
}

func (s *Server) hasOffer(id string) bool {
	_, ok := s.detail(id, "")
	return ok
}

func (s *Server) reviewList(id string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Review{}, s.reviews[id]...)
}

func (s *Server) addReview(id, email string, data models.ReviewData) models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Review{
		ID:      uuid.NewString(),
		Date:    s.now().UTC(),
		User:    models.ReviewUser{Name: nameOf(email)},
		Comment: data.Comment,
		Rating:  float64(data.Rating),
	}
	s.reviews[id] = append(s.reviews[id], r)
	return r
}

func preview(o models.CompleteOffer, fav bool) models.Offer {
	img := ""
	if len(o.Images) > 0 {
		img = o.Images[0]
	}
	return models.Offer{
		ID:           o.ID,
		Title:        o.Title,
		Type:         o.Type,
		Price:        o.Price,
		City:         o.City,
		Location:     o.Location,
		IsFavorite:   fav,
		IsPremium:    o.IsPremium,
		Rating:       o.Rating,
		PreviewImage: img,
	}
}

func nameOf(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
