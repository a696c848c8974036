package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"mypad/internal/domain"
	"mypad/internal/util/memzero"
)

const (
	// DefaultIterations is the PBKDF2 round count for new and existing
	// envelopes. Changing it makes previously sealed notes unreadable.
	DefaultIterations = 310_000

	// MinIterations is the lowest round count a Codec accepts.
	MinIterations = 100_000

	SaltSize  = 16
	KeySize   = chacha20poly1305.KeySize
	NonceSize = chacha20poly1305.NonceSize

	minBlobSize = SaltSize + NonceSize + chacha20poly1305.Overhead
)

var (
	// ErrInvalidEnvelope is the only error Decrypt returns.
	ErrInvalidEnvelope = errors.New("Invalid password or corrupted file.")

	// ErrEntropy is returned when the random source fails.
	ErrEntropy = errors.New("envelope: random source unavailable")
)

// Codec implements domain.Codec. The zero value is not usable; use New.
type Codec struct {
	iterations int
	rand       io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithIterations overrides the PBKDF2 round count.
func WithIterations(n int) Option {
	return func(c *Codec) { c.iterations = n }
}

// WithRand replaces the random source. Intended for tests.
func WithRand(r io.Reader) Option {
	return func(c *Codec) { c.rand = r }
}

// New returns a Codec using DefaultIterations and crypto/rand.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{iterations: DefaultIterations, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	if c.iterations < MinIterations {
		return nil, fmt.Errorf("envelope: %d iterations is below the minimum of %d", c.iterations, MinIterations)
	}
	return c, nil
}

// Iterations reports the configured PBKDF2 round count.
func (c *Codec) Iterations() int { return c.iterations }

// Encrypt seals plaintext and returns the base64 envelope.
func (c *Codec) Encrypt(plaintext, passphrase string) (string, error) {
	buf := make([]byte, SaltSize+NonceSize, minBlobSize+len(plaintext))
	if _, err := io.ReadFull(c.rand, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	salt, nonce := buf[:SaltSize], buf[SaltSize:]

	key := c.deriveKey(passphrase, salt)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", err
	}
	sealed := aead.Seal(buf, nonce, []byte(plaintext), salt)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a base64 envelope produced by Encrypt.
func (c *Codec) Decrypt(blob, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || len(raw) < minBlobSize {
		return "", ErrInvalidEnvelope
	}
	salt := raw[:SaltSize]
	nonce := raw[SaltSize : SaltSize+NonceSize]
	ct := raw[SaltSize+NonceSize:]

	key := c.deriveKey(passphrase, salt)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", ErrInvalidEnvelope
	}
	pt, err := aead.Open(nil, nonce, ct, salt)
	if err != nil {
		return "", ErrInvalidEnvelope
	}
	return string(pt), nil
}

func (c *Codec) deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, c.iterations, KeySize, sha256.New)
}

// Compile-time assertion that Codec implements domain.Codec.
var _ domain.Codec = (*Codec)(nil)
