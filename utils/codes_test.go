package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDocumentNumberFormat(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	num, err := GenerateDocumentNumber("inv", at)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV-20260830-[A-Z0-9]{6}$`), num)
}

func TestGenerateDocumentNumberVaries(t *testing.T) {
	at := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		num, err := GenerateDocumentNumber("GRC", at)
		assert.NoError(t, err)
		seen[num] = true
	}
	// 6 random chars over 50 draws should not collide every time.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateReferenceCode(t *testing.T) {
	code := GenerateReferenceCode("bk")
	assert.Regexp(t, regexp.MustCompile(`^BK-[A-F0-9]{8}$`), code)
}
