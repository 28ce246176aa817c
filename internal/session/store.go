package session

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/crypto/pbkdf2"

	"hotelclient/internal/domain"
)

// Session entry keys. Only these two values are ever stored.
const (
	KeyToken = "token"
	KeyRole  = "role"
)

const (
	keySalt       = "hotelclient.session.v1"
	keyIterations = 4096
)

// Store encrypts session values at rest with AES-GCM. The key is derived
// from a deployment-provided passphrase, never a source literal.
type Store struct {
	storage Storage
	aead    cipher.AEAD
}

func NewStore(storage Storage, passphrase string) (*Store, error) {
	if passphrase == "" {
		return nil, errors.New("session passphrase is required")
	}

	key := pbkdf2.Key([]byte(passphrase), []byte(keySalt), keyIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("session cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("session cipher: %w", err)
	}

	return &Store{storage: storage, aead: aead}, nil
}

// Save encrypts value and writes it under key.
func (s *Store) Save(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("session nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(value), nil)
	return s.storage.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

// Load reads and decrypts the value under key. Any decryption or decoding
// failure is logged and reported as absence, never returned to the caller.
func (s *Store) Load(ctx context.Context, key string) (string, bool) {
	encoded, err := s.storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("session: read %q: %v", key, err)
		}
		return "", false
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("session: decode %q: %v", key, err)
		return "", false
	}
	if len(sealed) < s.aead.NonceSize() {
		log.Printf("session: ciphertext for %q too short", key)
		return "", false
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		log.Printf("session: decrypt %q: %v", key, err)
		return "", false
	}
	return string(plaintext), true
}

// SaveSession persists the token and role issued at login.
func (s *Store) SaveSession(ctx context.Context, token string, role domain.Role) error {
	if err := s.Save(ctx, KeyToken, token); err != nil {
		return err
	}
	return s.Save(ctx, KeyRole, string(role))
}

// ClearSession removes both session entries.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.storage.Delete(ctx, KeyToken, KeyRole)
}

// Token returns the decrypted bearer token, if present.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.Load(ctx, KeyToken)
}

// IsAuthenticated reports whether a token is present. It does not check
// the token's expiry claim.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// HasRole reports whether the stored role equals the given tag.
func (s *Store) HasRole(ctx context.Context, role domain.Role) bool {
	stored, ok := s.Load(ctx, KeyRole)
	return ok && stored == string(role)
}
