// Package ws serves the realtime channel over WebSocket.
//
// Each accepted connection becomes a Client registered with a
// domain.Registry. A read pump relays every inbound text frame verbatim
// through Registry.Broadcast; a write pump drains the client's bounded send
// queue and keeps the connection alive with pings. Any read or write error
// closes the client and unregisters it.
//
// Send never blocks the broadcaster: when a client's queue is full the frame
// is refused with ErrSlowPeer and the registry drops that client.
package ws
