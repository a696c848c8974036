package types

// Health is the body served by the health endpoint.
type Health struct {
	Healthy     bool   `json:"healthy"`
	Connections int    `json:"connections"`
	Uptime      string `json:"uptime"`
	Version     string `json:"version"`
}
