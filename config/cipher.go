package config

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// CNICCipher encrypts CNIC values at rest with a process-wide secret.
// Without CNIC_SECRET_KEY it degrades to plaintext storage; that is a
// deliberate relaxation for non-production environments, not a feature.
//
// Constructed once in main and passed down; never read from package state.
type CNICCipher struct {
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

func NewCNICCipher() *CNICCipher {
	secret := os.Getenv("CNIC_SECRET_KEY")
	if secret == "" {
		GetLogrusInstance().Warn("CNIC_SECRET_KEY not set. CNIC values will be stored and read as plaintext. Set CNIC_SECRET_KEY in production.")
		return &CNICCipher{}
	}

	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		// Key is always 32 bytes here; NewX only rejects bad key sizes.
		GetLogrusInstance().Errorf("failed to initialize CNIC cipher: %v", err)
		return &CNICCipher{}
	}
	return &CNICCipher{aead: aead}
}

func (c *CNICCipher) Enabled() bool {
	return c.aead != nil
}

// Encrypt returns base64(nonce || ciphertext), or the input unchanged when
// the cipher is disabled or the value is empty.
func (c *CNICCipher) Encrypt(value string) string {
	if value == "" || c.aead == nil {
		return value
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		GetLogrusInstance().Errorf("cnic cipher: nonce generation failed: %v", err)
		return value
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(sealed)
}

// Decrypt reverses Encrypt. Values that do not decode as ciphertext (rows
// written while the secret was absent) are returned unchanged.
func (c *CNICCipher) Decrypt(value string) string {
	if value == "" || c.aead == nil {
		return value
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) <= chacha20poly1305.NonceSizeX {
		return value
	}
	plain, err := c.aead.Open(nil, raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return value
	}
	return string(plain)
}
