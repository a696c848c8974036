// Package relay is the client side of the realtime channel.
//
// It dials a padserver /ws endpoint and exchanges text frames. Frames are
// relayed verbatim by the server to every other connected client; nothing is
// queued for clients that are offline.
//
// All calls accept a context for cancellation and deadlines.
package relay
