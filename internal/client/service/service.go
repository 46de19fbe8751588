// Package service implements the asynchronous operations of the six-cities
// client. Each operation talks to the API through a Transport and reports
// its progress to a state.Store in a fixed order of actions.
package service

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/client/token"
	"github.com/atinyakov/SixCities/internal/models"
)

var (
	// ErrSuperseded is returned when local state moved on while a request
	// was in flight (another offer selected, favorites toggled). Its result
	// is discarded.
	ErrSuperseded = errors.New("request superseded by a newer selection")
	// ErrNotAuthorized is returned by operations that require a session.
	ErrNotAuthorized = errors.New("not authorized")
)

// Transport performs JSON requests against the API. *api.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Service runs the client operations against one store.
type Service struct {
	store  *state.Store
	api    Transport
	tokens token.Store
	log    *zap.Logger
}

// New builds a Service. A nil logger is replaced by a no-op one.
func New(store *state.Store, api Transport, tokens token.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, api: api, tokens: tokens, log: log}
}

// Store returns the store the service dispatches into.
func (s *Service) Store() *state.Store {
	return s.store
}

func pathID(id models.OfferID) string {
	return url.PathEscape(id.String())
}
