package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
)

// GenerateSecureRandomString returns lengthInBytes random bytes, hex encoded.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// RandomFileName keeps the lower-cased extension of original and replaces the
// rest with 32 random hex characters, so client file names never reach the disk.
func RandomFileName(original string) (string, error) {
	random, err := GenerateSecureRandomString(16)
	if err != nil {
		return "", err
	}
	return random + strings.ToLower(filepath.Ext(original)), nil
}
