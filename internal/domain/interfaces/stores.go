package interfaces

// NoteStore persists sealed notes by name.
type NoteStore interface {
	SaveSealed(name, blob string) error
	LoadSealed(name string) (string, error)
}
