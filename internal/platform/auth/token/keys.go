package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"log/slog"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrInvalidKeyFormat = errors.New("invalid key format")
)

// KeyManager manages the RSA key pair used to sign and verify claims.
type KeyManager struct {
	mu         sync.RWMutex
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	keyID      string
}

// NewKeyManager creates a new key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// Initialize loads the key pair from PEM files, or generates an ephemeral
// pair when no paths are configured. Ephemeral keys invalidate all
// outstanding tokens on restart, which is acceptable for development only.
func (km *KeyManager) Initialize(privateKeyPath, publicKeyPath string) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if privateKeyPath != "" && publicKeyPath != "" {
		if err := km.loadFromFiles(privateKeyPath, publicKeyPath); err != nil {
			return fmt.Errorf("failed to load signing keys: %w", err)
		}
		slog.Info("Loaded token signing keys", "keyId", km.keyID)
		return nil
	}

	slog.Warn("Generating ephemeral token signing keys (will be lost on restart)")
	return km.generate()
}

func (km *KeyManager) loadFromFiles(privateKeyPath, publicKeyPath string) error {
	privPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	block, _ := pem.Decode(privPEM)
	if block == nil {
		return ErrInvalidKeyFormat
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// Try PKCS8 format
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("failed to parse private key: %w", err)
		}
		var ok bool
		privateKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return ErrInvalidKeyFormat
		}
	}

	pubPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	block, _ = pem.Decode(pubPEM)
	if block == nil {
		return ErrInvalidKeyFormat
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}
	publicKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return ErrInvalidKeyFormat
	}

	km.privateKey = privateKey
	km.publicKey = publicKey
	km.keyID = fingerprint(publicKey)
	return nil
}

func (km *KeyManager) generate() error {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}
	km.privateKey = key
	km.publicKey = &key.PublicKey
	km.keyID = fingerprint(&key.PublicKey)
	return nil
}

// PrivateKey returns the signing key.
func (km *KeyManager) PrivateKey() *rsa.PrivateKey {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.privateKey
}

// PublicKey returns the verification key.
func (km *KeyManager) PublicKey() *rsa.PublicKey {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.publicKey
}

// KeyID returns a stable identifier for the current key pair.
func (km *KeyManager) KeyID() string {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.keyID
}

// fingerprint derives a key ID from the public key material.
func fingerprint(key *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "unknown"
	}
	sum := sha256.Sum256(der)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}
