// Package token provides access token generation.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultLength is the default token length in bytes.
const DefaultLength = 16

// MinLength is the smallest accepted token length in bytes.
const MinLength = 16

// GenerateWithLength generates a cryptographically secure random token of
// length bytes, Base64 RawURL encoded.
func GenerateWithLength(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("token: length %d is below minimum %d", length, MinLength)
	}
	bytes, err := GenerateBytes(length)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("token: read random: %w", err)
	}
	return bytes, nil
}
