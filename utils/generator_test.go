package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePartnerCode(t *testing.T) {
	code := GeneratePartnerCode()
	assert.True(t, strings.HasPrefix(code, "BC"))
	assert.Len(t, code, 14)
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(number, "EX"))
	assert.Len(t, number, 14)
	assert.Equal(t, strings.ToUpper(number), number)
}

func TestGeneratedTokensDoNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := GenerateOrderNumber()
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}
