package ws

import "time"

// Options tunes per-connection limits.
type Options struct {
	SendBuffer      int           // queued frames per client before it is dropped
	WriteTimeout    time.Duration // deadline for a single frame write
	PongTimeout     time.Duration // max silence before the peer is considered gone
	PingInterval    time.Duration // must be shorter than PongTimeout
	MaxMessageBytes int64
	AllowAnyOrigin  bool
}

// DefaultOptions returns the limits padserver uses unless configured.
func DefaultOptions() Options {
	return Options{
		SendBuffer:      64,
		WriteTimeout:    10 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    54 * time.Second,
		MaxMessageBytes: 64 << 10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SendBuffer <= 0 {
		o.SendBuffer = d.SendBuffer
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = d.WriteTimeout
	}
	if o.PongTimeout <= 0 {
		o.PongTimeout = d.PongTimeout
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongTimeout {
		o.PingInterval = o.PongTimeout * 9 / 10
	}
	if o.MaxMessageBytes <= 0 {
		o.MaxMessageBytes = d.MaxMessageBytes
	}
	return o
}
