package service

// Outcome classifies operations whose failures are expected and folded
// into state instead of being returned as errors.
type Outcome int

const (
	// OK means the request succeeded.
	OK Outcome = iota
	// Unauthenticated means the server rejected the token (401).
	Unauthenticated
	// TransportError covers every other failure: network, non-2xx, bad body.
	TransportError
	// Superseded means the response was dropped because local state changed
	// while it was in flight.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Unauthenticated:
		return "unauthenticated"
	case TransportError:
		return "transport error"
	case Superseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Result is the value of such an operation. Err is set unless Outcome is OK.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool {
	return r.Outcome == OK
}
