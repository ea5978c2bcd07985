package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const partnerCodePrefix = "BC"
const orderNumberPrefix = "EX"

func tokenHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// GeneratePartnerCode produces a public referral code like "BC1A2B3C4D5E".
func GeneratePartnerCode() string {
	return partnerCodePrefix + tokenHex(6)
}

// GenerateOrderNumber produces a displayable order number like
// "EX0F9A8B7C6D5E". Random rather than sequential so order volume cannot be
// inferred from the numbers.
func GenerateOrderNumber() string {
	return orderNumberPrefix + tokenHex(6)
}
