package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// randomCode returns n chars from A-Z0-9. Uses crypto/rand with math/big
// to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateReferenceCode returns a short uppercase stay/reservation
// reference like "BK-7C9E2F4A", derived from a fresh UUID.
func GenerateReferenceCode(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), strings.ToUpper(id.String()[:8]))
}

// GenerateDocumentNumber returns e.g. "INV-20260830-AB4D93". Callers retry
// on unique-index collision.
func GenerateDocumentNumber(prefix string, t time.Time) (string, error) {
	suffix, err := randomCode(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), t.Format("20060102"), suffix), nil
}
