// Package auth provides password hashing and stateless session tokens.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PASETO v4 requires a 256-bit (32-byte) symmetric key.
	keyLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	keyHexLength = 64

	keyFileName = "session.key"
)

// ParseKeyHex decodes a 64 character hex session key.
func ParseKeyHex(keyHex string) ([]byte, error) {
	keyHex = strings.TrimSpace(keyHex)
	if len(keyHex) != keyHexLength {
		return nil, fmt.Errorf("invalid session key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid session key format: not valid hex: %w", err)
	}
	return key, nil
}

// LoadOrGenerateKey loads the session key from <dataPath>/session.key,
// generating and saving a new one if the file does not exist.
// Replacing the file invalidates every outstanding session.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, keyFileName)

	//#nosec G304 -- Key path is derived from the configured data path
	keyBytes, err := os.ReadFile(keyPath)
	if err == nil {
		return ParseKeyHex(string(keyBytes))
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read session key: %w", err)
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save session key: %w", err)
	}

	return key, nil
}
