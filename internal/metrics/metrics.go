// Package metrics holds the Prometheus collectors exported by padserver.
//
// A nil *Metrics is valid everywhere and records nothing, so packages can be
// used without wiring a registry.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mypad"

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	Connections        prometheus.Gauge
	BroadcastFrames    prometheus.Counter
	BroadcastDelivered prometheus.Counter
	DroppedPeers       prometheus.Counter
	CodecOps           *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Realtime connections currently registered.",
		}),
		BroadcastFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_frames_total",
			Help:      "Frames accepted for broadcast.",
		}),
		BroadcastDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_deliveries_total",
			Help:      "Frames handed to a recipient's send queue.",
		}),
		DroppedPeers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_peers_total",
			Help:      "Peers unregistered because a send failed.",
		}),
		CodecOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "codec_operations_total",
			Help:      "Envelope encrypt/decrypt calls by outcome.",
		}, []string{"op", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"path", "code"}),
	}
	m.reg.MustRegister(
		m.Connections,
		m.BroadcastFrames,
		m.BroadcastDelivered,
		m.DroppedPeers,
		m.CodecOps,
		m.HTTPRequests,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the exposition format. A nil receiver serves 404.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) PeerRegistered() {
	if m != nil {
		m.Connections.Inc()
	}
}

func (m *Metrics) PeerUnregistered() {
	if m != nil {
		m.Connections.Dec()
	}
}

// Broadcast records one frame fanned out to delivered recipients with
// dropped failures.
func (m *Metrics) Broadcast(delivered, dropped int) {
	if m == nil {
		return
	}
	m.BroadcastFrames.Inc()
	m.BroadcastDelivered.Add(float64(delivered))
	m.DroppedPeers.Add(float64(dropped))
}

// Codec records one codec call. op is "encrypt" or "decrypt".
func (m *Metrics) Codec(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CodecOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Request(path string, code int) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	}
}
