package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretFileName is the file under the data directory holding the signing secret
const SecretFileName = "jwt-secret.key"

// ResolveSecret returns the signing secret: JWT_SECRET, then the persisted
// key file, otherwise a freshly generated secret that is written to disk.
func ResolveSecret(dataDir string) ([]byte, error) {
	if env := os.Getenv("JWT_SECRET"); env != "" {
		return []byte(env), nil
	}

	path := filepath.Join(dataDir, SecretFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return []byte(secret), nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	raw := make([]byte, 64)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	secret := hex.EncodeToString(raw)

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dataDir, err)
	}
	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return []byte(secret), nil
}
