package state

import (
	"sync"

	"go.uber.org/zap"
)

// Subscriber receives every applied action together with the state it produced.
// Subscribers may read the store but must not dispatch.
type Subscriber func(Action, State)

type event struct {
	action Action
	state  State
}

// Store owns the State. All transitions go through the reducers; each
// call to Dispatch, DispatchIf or Apply is atomic with respect to the others.
type Store struct {
	mu    sync.RWMutex
	state State

	// notifyMu keeps subscriber calls in dispatch order.
	notifyMu    sync.Mutex
	subMu       sync.Mutex
	subscribers map[int]Subscriber
	nextSub     int

	log *zap.Logger
}

// NewStore returns a Store holding Initial(). A nil logger is replaced by a no-op one.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state:       Initial(),
		subscribers: make(map[int]Subscriber),
		log:         log,
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies actions in order as one atomic batch.
func (s *Store) Dispatch(actions ...Action) {
	s.DispatchIf(nil, actions...)
}

// DispatchIf applies actions only if guard holds on the current state,
// checked under the same lock that applies them. A nil guard always holds.
// It reports whether the actions were applied.
func (s *Store) DispatchIf(guard func(State) bool, actions ...Action) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if guard != nil && !guard(s.state) {
		s.mu.Unlock()
		return false
	}
	events := s.apply(actions)
	s.mu.Unlock()

	s.notify(events)
	return true
}

// Apply derives a batch of actions from the current state and applies it
// atomically. fn must not call back into the store.
func (s *Store) Apply(fn func(State) []Action) []Action {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	actions := fn(s.state)
	events := s.apply(actions)
	s.mu.Unlock()

	s.notify(events)
	return actions
}

// Subscribe registers fn and returns a function removing it.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
		})
	}
}

// apply must be called with mu held.
func (s *Store) apply(actions []Action) []event {
	events := make([]event, 0, len(actions))
	for _, a := range actions {
		if a == nil {
			continue
		}
		s.state = Reduce(s.state, a)
		events = append(events, event{action: a, state: s.state})
		s.log.Debug("action applied", zap.String("action", actionName(a)))
	}
	return events
}

func (s *Store) notify(events []event) {
	if len(events) == 0 {
		return
	}
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, e := range events {
		for _, fn := range subs {
			fn(e.action, e.state)
		}
	}
}

func actionName(a Action) string {
	switch a.(type) {
	case SetOffersLoading:
		return "offers/loading"
	case ReplaceOffers:
		return "offers/replace"
	case SelectOffer:
		return "offer/select"
	case ReplaceCurrentOffer:
		return "offer/replace"
	case ReplaceReviews:
		return "offer/reviews"
	case SetCurrentOfferLoading:
		return "offer/loading"
	case SetAuthStatus:
		return "user/status"
	case SetEmail:
		return "user/email"
	case SetUserLoading:
		return "user/loading"
	case ReplaceFavorites:
		return "favorites/replace"
	case SetFavoritesCount:
		return "favorites/count"
	case SetFavoritesLoading:
		return "favorites/loading"
	case SetOfferFavorite:
		return "offer/favorite"
	default:
		return "unknown"
	}
}
