// Package verification provides concrete implementations of the
// verification-code domain services.
package verification

import (
	"crypto/rand"
	"math/big"
	"strings"

	"shoplist/config"
	"shoplist/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultCodeLength = 6

// numericCodeGenerator produces fixed-length numeric codes from a
// cryptographic random source.
type numericCodeGenerator struct {
	length int
}

// NewCodeGenerator is the constructor for numericCodeGenerator.
func NewCodeGenerator(cfg *config.Config) service.CodeGenerator {
	length := defaultCodeLength
	if cfg != nil && cfg.Verification != nil && cfg.Verification.CodeLength > 0 {
		length = cfg.Verification.CodeLength
	}

	return &numericCodeGenerator{length: length}
}

// Generate returns a fresh numeric verification code.
func (g *numericCodeGenerator) Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(g.length)

	for range g.length {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.Wrap(err, "failed to read random digit")
		}
		sb.WriteByte(byte('0' + digit.Int64()))
	}

	return sb.String(), nil
}
