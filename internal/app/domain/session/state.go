// Package session holds the client session lifecycle: a pure state machine
// over authentication events, plus the storage and orchestration around it.
// State transitions live in Reduce and nowhere else; everything with a side
// effect (cookies, the identity provider) stays in Store and Manager.
package session

// Identity is the displayable identity of a signed-in user.
type Identity struct {
	DisplayName string
	Email       string
}

// State is the session snapshot. Loading is true only between startup and
// the restore outcome; consumers must not render auth-dependent UI until it
// clears.
type State struct {
	Loading  bool
	Identity *Identity
}

// Initial is the state before restore has resolved.
func Initial() State {
	return State{Loading: true}
}

// Authenticated reports whether the state carries a signed-in identity.
func (s State) Authenticated() bool {
	return !s.Loading && s.Identity != nil
}

// EventType enumerates the session transitions.
type EventType int

const (
	EventRestoreSucceeded EventType = iota
	EventRestoreFailed
	EventLoggedIn
	EventLoggedOut
)

// Event is one session transition. Identity is set only for
// EventRestoreSucceeded and EventLoggedIn.
type Event struct {
	Type     EventType
	Identity *Identity
}

// Reduce applies an event to a state and returns the next state. Pure: no
// I/O, no mutation of its inputs, unknown events leave the state unchanged.
func Reduce(s State, e Event) State {
	switch e.Type {
	case EventRestoreSucceeded, EventLoggedIn:
		return State{Loading: false, Identity: copyIdentity(e.Identity)}
	case EventRestoreFailed, EventLoggedOut:
		return State{Loading: false, Identity: nil}
	default:
		return s
	}
}

func copyIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
