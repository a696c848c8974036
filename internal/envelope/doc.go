// Package envelope seals note text under a passphrase.
//
// Layout of a sealed envelope before base64 encoding:
//
//	salt (16) || nonce (12) || ciphertext || tag (16)
//
// The key is derived with PBKDF2-HMAC-SHA256 over the passphrase and the salt,
// and the text is sealed with ChaCha20-Poly1305. The salt is also bound as
// associated data. Every Encrypt call draws a fresh salt and nonce, so equal
// inputs never produce equal envelopes.
//
// Decrypt reports every failure (bad encoding, short input, wrong passphrase,
// tampering) as ErrInvalidEnvelope so callers cannot tell them apart.
package envelope
