package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const apiKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const APIKeyLength = 32

// GenerateAPIKey returns a cryptographically random opaque key. Keys are
// stored as-is on the user record and matched by unique index.
func GenerateAPIKey() (string, error) {
	key := make([]byte, APIKeyLength)
	max := big.NewInt(int64(len(apiKeyAlphabet)))

	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate api key: %w", err)
		}
		key[i] = apiKeyAlphabet[n.Int64()]
	}

	return string(key), nil
}
