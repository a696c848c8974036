package interfaces

import domaintypes "mypad/internal/domain/types"

// Peer is one side of a realtime connection as seen by the registry.
//
// Send must not block: it either queues text for delivery or fails fast.
// ID must be unique among live peers; the registry keys on it.
type Peer interface {
	ID() domaintypes.ConnID
	State() domaintypes.ConnState
	Send(text []byte) error
	Close() error
}

// Registry tracks live peers and relays text among them.
type Registry interface {
	Register(peer Peer)
	Unregister(peer Peer)
	Broadcast(text []byte, sender Peer) int
	Len() int
}
