package app

import (
	"mypad/internal/envelope"
	"mypad/internal/store"
)

// Local bundles the collaborators that work without a server: the envelope
// codec and the sealed note store.
type Local struct {
	Config Config
	Codec  *envelope.Codec
	Notes  *store.NoteFileStore
}

// NewLocal validates cfg and builds the offline collaborators.
func NewLocal(cfg Config) (*Local, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := newCodec(cfg)
	if err != nil {
		return nil, err
	}
	return &Local{
		Config: cfg,
		Codec:  codec,
		Notes:  store.NewNoteFileStore(cfg.NotesDir),
	}, nil
}

func newCodec(cfg Config) (*envelope.Codec, error) {
	return envelope.New(envelope.WithIterations(cfg.KDFIterations))
}
