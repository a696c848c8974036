// Package session keeps the set of live realtime peers and relays text
// among them.
//
// The set is process-local and guarded by a RWMutex: Register and Unregister
// take the write lock, Broadcast snapshots recipients under the read lock and
// sends after releasing it. Peers whose Send fails, or that are already
// closed, are unregistered once the fan-out finishes; their failure never
// reaches the sender or the other recipients.
//
// Nothing is persisted. A restart starts from an empty set.
package session
