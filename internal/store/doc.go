// Package store provides file-based persistence for sealed notes.
//
// Notes are stored as the base64 envelope text produced by the envelope
// package, one file per note, written via a temp file and rename so a crash
// never leaves a half-written note. Plaintext never reaches the disk through
// this package.
package store
