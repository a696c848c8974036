package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"mypad/internal/envelope"
	"mypad/internal/httpapi"
	"mypad/internal/transport/ws"
)

// Config holds runtime options for padserver and the mypad CLI.
//
// LogFormat is "console" or "json"; KDFIterations is the PBKDF2 round count.
type Config struct {
	Listen        string `yaml:"listen"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	KDFIterations int    `yaml:"kdf_iterations"`
	NotesDir      string `yaml:"notes_dir"`

	WS   WSConfig   `yaml:"ws"`
	HTTP HTTPConfig `yaml:"http"`
}

// WSConfig tunes realtime connections.
type WSConfig struct {
	SendBuffer      int           `yaml:"send_buffer"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	PongTimeout     time.Duration `yaml:"pong_timeout"`
	PingInterval    time.Duration `yaml:"ping_interval"`
	MaxMessageBytes int64         `yaml:"max_message_bytes"`
	AllowAnyOrigin  bool          `yaml:"allow_any_origin"`
}

// HTTPConfig tunes the HTTP server.
type HTTPConfig struct {
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	wsOpts := ws.DefaultOptions()
	notes := "notes"
	if home, err := os.UserHomeDir(); err == nil {
		notes = filepath.Join(home, ".mypad", "notes")
	}
	return Config{
		Listen:        ":8000",
		LogLevel:      "info",
		LogFormat:     "console",
		KDFIterations: envelope.DefaultIterations,
		NotesDir:      notes,
		WS: WSConfig{
			SendBuffer:      wsOpts.SendBuffer,
			WriteTimeout:    wsOpts.WriteTimeout,
			PongTimeout:     wsOpts.PongTimeout,
			PingInterval:    wsOpts.PingInterval,
			MaxMessageBytes: wsOpts.MaxMessageBytes,
		},
		HTTP: HTTPConfig{
			MaxBodyBytes:      httpapi.DefaultMaxBodyBytes,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
	}
}

// LoadConfig reads YAML from path over the defaults. An empty path or a
// missing file yields the defaults. PORT in the environment overrides the
// listen port.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return errors.New("config: listen address is empty")
	case c.KDFIterations < envelope.MinIterations:
		return fmt.Errorf("config: kdf_iterations must be at least %d", envelope.MinIterations)
	case c.WS.SendBuffer <= 0:
		return errors.New("config: ws.send_buffer must be positive")
	case c.WS.WriteTimeout <= 0 || c.WS.PongTimeout <= 0 || c.WS.PingInterval <= 0:
		return errors.New("config: ws timeouts must be positive")
	case c.WS.PingInterval >= c.WS.PongTimeout:
		return errors.New("config: ws.ping_interval must be shorter than ws.pong_timeout")
	case c.WS.MaxMessageBytes <= 0:
		return errors.New("config: ws.max_message_bytes must be positive")
	case c.HTTP.MaxBodyBytes <= 0:
		return errors.New("config: http.max_body_bytes must be positive")
	case c.LogFormat != "console" && c.LogFormat != "json":
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// WSOptions converts the realtime settings for the ws package.
func (c Config) WSOptions() ws.Options {
	return ws.Options{
		SendBuffer:      c.WS.SendBuffer,
		WriteTimeout:    c.WS.WriteTimeout,
		PongTimeout:     c.WS.PongTimeout,
		PingInterval:    c.WS.PingInterval,
		MaxMessageBytes: c.WS.MaxMessageBytes,
		AllowAnyOrigin:  c.WS.AllowAnyOrigin,
	}
}
