package types

// ConnID identifies one realtime connection for its lifetime.
type ConnID string

// String returns the string form of the identifier.
func (id ConnID) String() string { return string(id) }

// ConnState is the lifecycle position of a realtime connection.
//
// A connection moves Connecting -> Open -> Closed and never goes back.
type ConnState int32

const (
	Connecting ConnState = iota
	Open
	Closed
)

// String returns a lowercase label suitable for logs.
func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
