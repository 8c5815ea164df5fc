package id

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Generator creates opaque, unguessable tokens such as OAuth state values.
type Generator interface {
	NewID() (string, error)
}

const defaultTokenBytes = 24

// TokenGenerator returns URL-safe base64 tokens of Size random bytes.
type TokenGenerator struct {
	Size int
}

func NewTokenGenerator(size int) *TokenGenerator {
	if size < 16 {
		size = defaultTokenBytes
	}
	return &TokenGenerator{Size: size}
}

func (g *TokenGenerator) NewID() (string, error) {
	size := defaultTokenBytes
	if g != nil && g.Size > 0 {
		size = g.Size
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
