package interfaces

// Codec seals text under a passphrase and opens it again.
type Codec interface {
	Encrypt(plaintext, passphrase string) (string, error)
	Decrypt(blob, passphrase string) (string, error)
}
