package session

// EventKind tags the variants carried on the session's event channel.
type EventKind int

const (
	// EventMessage carries one decoded payload in Text.
	EventMessage EventKind = iota
	// EventStatus carries a human-readable lifecycle notice in Text.
	EventStatus
	// EventError carries a runtime failure in Err.
	EventError
)

// Event is one notification from the modem session. Exactly one of Text
// or Err is meaningful, selected by Kind.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}
