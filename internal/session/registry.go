package session

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mypad/internal/domain"
	"mypad/internal/metrics"
)

// Registry implements domain.Registry.
type Registry struct {
	mu    sync.RWMutex
	peers map[domain.ConnID]domain.Peer

	log     zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for membership events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		peers: make(map[domain.ConnID]domain.Peer),
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("component", "session").Logger()
	return r
}

// Register adds peer to the live set. Registering a peer that is already
// present leaves the set unchanged.
func (r *Registry) Register(peer domain.Peer) {
	if peer == nil {
		return
	}
	r.mu.Lock()
	if _, ok := r.peers[peer.ID()]; ok {
		r.mu.Unlock()
		return
	}
	r.peers[peer.ID()] = peer
	n := len(r.peers)
	r.mu.Unlock()

	r.metrics.PeerRegistered()
	r.log.Debug().Str("conn", peer.ID().String()).Int("peers", n).Msg("peer registered")
}

// Unregister removes peer and closes it. Removing an absent peer is a no-op.
func (r *Registry) Unregister(peer domain.Peer) {
	r.remove(peer)
}

// remove deletes the peer registered under peer's ID and reports whether it
// was present. Peers are matched by ID, so ConnIDs must be unique.
func (r *Registry) remove(peer domain.Peer) bool {
	if peer == nil {
		return false
	}
	id := peer.ID()
	r.mu.Lock()
	cur, ok := r.peers[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.peers, id)
	n := len(r.peers)
	r.mu.Unlock()

	// Close errors only mean the transport is already gone.
	_ = cur.Close()

	r.metrics.PeerUnregistered()
	r.log.Debug().Str("conn", id.String()).Int("peers", n).Msg("peer unregistered")
	return true
}

// Broadcast hands text to every registered peer except sender and returns how
// many peers accepted it. A nil sender reaches every peer.
func (r *Registry) Broadcast(text []byte, sender domain.Peer) int {
	var from domain.ConnID
	if sender != nil {
		from = sender.ID()
	}

	r.mu.RLock()
	targets := make([]domain.Peer, 0, len(r.peers))
	for id, p := range r.peers {
		if id == from {
			continue
		}
		targets = append(targets, p)
	}
	r.mu.RUnlock()

	var (
		delivered int
		failed    []domain.Peer
	)
	for _, p := range targets {
		switch p.State() {
		case domain.Open:
		case domain.Closed:
			failed = append(failed, p)
			continue
		default:
			continue
		}
		if err := p.Send(text); err != nil {
			r.log.Debug().Err(err).Str("conn", p.ID().String()).Msg("send failed; dropping peer")
			failed = append(failed, p)
			continue
		}
		delivered++
	}

	dropped := 0
	for _, p := range failed {
		if r.remove(p) {
			dropped++
		}
	}
	r.metrics.Broadcast(delivered, dropped)
	return delivered
}

// Len reports the number of registered peers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// Close unregisters every peer. Used on server shutdown.
func (r *Registry) Close() {
	r.mu.RLock()
	all := make([]domain.Peer, 0, len(r.peers))
	for _, p := range r.peers {
		all = append(all, p)
	}
	r.mu.RUnlock()

	for _, p := range all {
		r.Unregister(p)
	}
}

// Compile-time assertion that Registry implements domain.Registry.
var _ domain.Registry = (*Registry)(nil)
