package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

// GenerateToken returns a random URL-safe token of the requested byte length.
func GenerateToken(length int) (string, error) {
	buffer, err := randomBytes(length)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// GenerateHexKey returns length random bytes encoded as hex.
func GenerateHexKey(length int) (string, error) {
	buffer, err := randomBytes(length)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}

func randomBytes(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("crypto: length must be positive")
	}
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}
