package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mypad/internal/domain"
	"mypad/internal/envelope"
	"mypad/internal/metrics"
)

const (
	// DefaultMaxBodyBytes caps encrypt/decrypt request bodies.
	DefaultMaxBodyBytes = 1 << 20

	msgBadRequest         = "invalid request body"
	msgPassphraseRequired = "passphrase required"
	msgEncryptFailed      = "encryption failed"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Codec    domain.Codec
	Registry domain.Registry
	Realtime http.Handler // serves /ws; nil disables the route
	Metrics  *metrics.Metrics
	Logger   *zerolog.Logger

	Version      string
	MaxBodyBytes int64
}

// Server routes requests to the codec, realtime and ops handlers.
type Server struct {
	deps    Deps
	log     zerolog.Logger
	started time.Time
	mux     *http.ServeMux
}

// New builds the route table.
func New(deps Deps) *Server {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	l := log.Logger
	if deps.Logger != nil {
		l = *deps.Logger
	}
	s := &Server{
		deps:    deps,
		log:     l.With().Str("component", "http").Logger(),
		started: time.Now(),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/encrypt", s.handleEncrypt)
	s.mux.HandleFunc("POST /api/decrypt", s.handleDecrypt)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", deps.Metrics.Handler())
	if deps.Realtime != nil {
		s.mux.Handle("GET /ws", deps.Realtime)
	}
	return s
}

// Handler returns the routes wrapped in the access log.
func (s *Server) Handler() http.Handler {
	return accessLog(s.log, s.deps.Metrics, s.mux)
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req domain.EncryptRequest
	if err := s.decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.EncryptResponse{
			Status:  domain.StatusError,
			Message: msgBadRequest,
		})
		return
	}
	if req.Passphrase == "" {
		writeJSON(w, http.StatusBadRequest, domain.EncryptResponse{
			Status:  domain.StatusError,
			Message: msgPassphraseRequired,
		})
		return
	}

	blob, err := s.deps.Codec.Encrypt(req.Content, req.Passphrase)
	s.deps.Metrics.Codec("encrypt", err)
	if err != nil {
		s.log.Error().Err(err).Msg("encrypt failed")
		writeJSON(w, http.StatusInternalServerError, domain.EncryptResponse{
			Status:  domain.StatusError,
			Message: msgEncryptFailed,
		})
		return
	}
	writeJSON(w, http.StatusOK, domain.EncryptResponse{
		Status:        domain.StatusSuccess,
		EncryptedData: blob,
	})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req domain.DecryptRequest
	if err := s.decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.DecryptResponse{
			Status:  domain.StatusError,
			Message: envelope.ErrInvalidEnvelope.Error(),
		})
		return
	}

	text, err := s.deps.Codec.Decrypt(req.Content, req.Passphrase)
	s.deps.Metrics.Codec("decrypt", err)
	if err != nil {
		writeJSON(w, http.StatusOK, domain.DecryptResponse{
			Status:  domain.StatusError,
			Message: envelope.ErrInvalidEnvelope.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, domain.DecryptResponse{
		Status:  domain.StatusSuccess,
		Content: &text,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := domain.Health{
		Healthy: true,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Version: s.deps.Version,
	}
	if s.deps.Registry != nil {
		h.Connections = s.deps.Registry.Len()
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.deps.MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
