package memzero

import "runtime"

// Zero overwrites b with zeros. Best-effort: the Go runtime may still hold
// copies made before the call.
//
//go:noinline
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
