package adapter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// ContentKeySize is the symmetric key size in bytes (AES-256)
const ContentKeySize = 32

// SymmetricCipher defines the content cipher used to lock published files,
// kept narrow so the concrete scheme is swappable and mockable
//
//go:generate mockgen -source=cipher.go -destination=../mocks/cipher.go -package=mocks -mock_names=SymmetricCipher=MockSymmetricCipher
type SymmetricCipher interface {
	// GenerateKey returns fresh key material
	GenerateKey() ([]byte, error)

	// Encrypt seals plaintext under the key; output carries the nonce
	Encrypt(key []byte, plaintext []byte) ([]byte, error)

	// Decrypt opens a sealed payload produced by Encrypt
	Decrypt(key []byte, sealed []byte) ([]byte, error)
}

// AESGCMCipher implements SymmetricCipher with AES-256-GCM, nonce prepended
// to the ciphertext.
type AESGCMCipher struct{}

// NewSymmetricCipher creates the AES-256-GCM content cipher
func NewSymmetricCipher() SymmetricCipher {
	return &AESGCMCipher{}
}

func (a *AESGCMCipher) GenerateKey() ([]byte, error) {
	key := make([]byte, ContentKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

func (a *AESGCMCipher) Encrypt(key []byte, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (a *AESGCMCipher) Decrypt(key []byte, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("sealed payload shorter than nonce")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", ContentKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
