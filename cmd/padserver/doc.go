// Package main runs padserver, the HTTP backend of mypad.
//
// HTTP API
//
//	POST /api/encrypt { "content": ..., "passphrase": ... }
//	    Seal content under passphrase. Returns
//	    { "status": "success", "encrypted_data": <base64 envelope> }.
//
//	POST /api/decrypt { "content": <base64 envelope>, "passphrase": ... }
//	    Open an envelope. Returns { "status": "success", "content": ... } or
//	    { "status": "error", "message": "Invalid password or corrupted file." }.
//
//	GET /ws
//	    Realtime channel. Every text frame a client sends is relayed verbatim
//	    to every other connected client.
//
//	GET /healthz, GET /metrics
//	    Liveness and Prometheus metrics.
//
// Behaviour
//
//   - Connection state is held in memory and lost on process exit.
//   - Responses are JSON. Passphrases, keys and note text are never logged.
//   - An access log records method, path, remote, status, bytes and duration
//     for each request.
//   - The default listen address is :8000; PORT overrides it.
package main
