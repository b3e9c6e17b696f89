package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitial(t *testing.T) {
	s := Initial()

	assert.True(t, s.Loading)
	assert.Nil(t, s.Identity)
	assert.False(t, s.Authenticated())
}

func TestReduce_RestoreSucceeded(t *testing.T) {
	id := &Identity{DisplayName: "ada", Email: "ada@example.com"}

	s := Reduce(Initial(), Event{Type: EventRestoreSucceeded, Identity: id})

	assert.False(t, s.Loading)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "ada", s.Identity.DisplayName)
	assert.Equal(t, "ada@example.com", s.Identity.Email)
}

func TestReduce_RestoreFailed(t *testing.T) {
	s := Reduce(Initial(), Event{Type: EventRestoreFailed})

	assert.False(t, s.Loading)
	assert.Nil(t, s.Identity)
}

func TestReduce_LoginThenLogout(t *testing.T) {
	s := Reduce(Initial(), Event{Type: EventRestoreFailed})
	s = Reduce(s, Event{Type: EventLoggedIn, Identity: &Identity{DisplayName: "ada"}})
	assert.True(t, s.Authenticated())

	s = Reduce(s, Event{Type: EventLoggedOut})
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Identity)
}

func TestReduce_DoesNotAliasIdentity(t *testing.T) {
	id := &Identity{DisplayName: "ada"}

	s := Reduce(Initial(), Event{Type: EventLoggedIn, Identity: id})
	id.DisplayName = "changed"

	assert.Equal(t, "ada", s.Identity.DisplayName)
}

func TestReduce_UnknownEventLeavesStateUnchanged(t *testing.T) {
	before := Reduce(Initial(), Event{Type: EventLoggedIn, Identity: &Identity{DisplayName: "ada"}})

	after := Reduce(before, Event{Type: EventType(99)})

	assert.Equal(t, before, after)
}
