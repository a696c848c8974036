package domain

import (
	interfaces "mypad/internal/domain/interfaces"
	types "mypad/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ConnID          = types.ConnID
	ConnState       = types.ConnState
	EncryptRequest  = types.EncryptRequest
	EncryptResponse = types.EncryptResponse
	DecryptRequest  = types.DecryptRequest
	DecryptResponse = types.DecryptResponse
	Health          = types.Health
)

// Connection states.
const (
	Connecting = types.Connecting
	Open       = types.Open
	Closed     = types.Closed
)

// Response statuses.
const (
	StatusSuccess = types.StatusSuccess
	StatusError   = types.StatusError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Peer      = interfaces.Peer
	Registry  = interfaces.Registry
	Codec     = interfaces.Codec
	NoteStore = interfaces.NoteStore
)
