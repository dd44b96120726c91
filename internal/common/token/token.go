package token

import (
	"crypto/rand"
	"encoding/hex"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_token.go github.com/gamenighthq/gamenight/internal/common/token Generator

// Generator produces the opaque session access tokens
type Generator interface {
	NewToken() string
}

// DefaultGenerator implements Generator with crypto/rand
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewToken returns a 32-character hex token
func (g *DefaultGenerator) NewToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
