// Package httpapi exposes the codec and the realtime channel over HTTP.
//
// Routes
//
//	POST /api/encrypt   {content, passphrase} -> {status, encrypted_data | message}
//	POST /api/decrypt   {content, passphrase} -> {status, content | message}
//	GET  /ws            realtime channel (WebSocket upgrade)
//	GET  /healthz       liveness and connection count
//	GET  /metrics       Prometheus exposition
//
// Codec failures are reported in the JSON body with status "error". Decrypt
// failures always carry the same message so callers cannot distinguish a wrong
// passphrase from a damaged envelope. Request bodies and passphrases are never
// logged.
package httpapi
