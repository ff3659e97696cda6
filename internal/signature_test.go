package internal

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// referenceHash is an independent implementation of the processor's
// documented recipe, used to pin the Signer output.
func referenceHash(passphrase, merchantUUID, amount, currency string) string {
	first := md5.Sum([]byte(passphrase))
	payload := strings.ToLower(hex.EncodeToString(first[:]) + merchantUUID + amount + currency)
	second := md5.Sum([]byte(payload))
	return hex.EncodeToString(second[:])
}

func TestSignerMatchesDocumentedRecipe(t *testing.T) {
	signer := NewSigner("secret-passphrase", "0a1b2c3d4e5f")
	got := signer.Hash("150.00", "AUD")

	assert.Equal(t, referenceHash("secret-passphrase", "0a1b2c3d4e5f", "150.00", "AUD"), got)
	assert.Len(t, got, 32)
	assert.Equal(t, strings.ToLower(got), got)
}

func TestSignerDeterministic(t *testing.T) {
	signer := NewSigner("secret-passphrase", "0a1b2c3d4e5f")
	first := signer.Hash("150.00", "AUD")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, signer.Hash("150.00", "AUD"))
	}
}

// Changing any single input must change the digest.
func TestSignerInputSensitivity(t *testing.T) {
	base := NewSigner("secret-passphrase", "0a1b2c3d4e5f").Hash("150.00", "AUD")

	variants := []string{
		NewSigner("other-passphrase", "0a1b2c3d4e5f").Hash("150.00", "AUD"),
		NewSigner("secret-passphrase", "ffeeddccbbaa").Hash("150.00", "AUD"),
		NewSigner("secret-passphrase", "0a1b2c3d4e5f").Hash("150.01", "AUD"),
		NewSigner("secret-passphrase", "0a1b2c3d4e5f").Hash("150.00", "NZD"),
	}

	seen := map[string]bool{base: true}
	for _, variant := range variants {
		assert.False(t, seen[variant], "digest collision across distinct inputs")
		seen[variant] = true
	}
}

// The passphrase is hashed exactly as configured; surrounding
// whitespace is significant.
func TestSignerPassphraseNotTrimmed(t *testing.T) {
	plain := NewSigner("passphrase", "uuid").Hash("10.00", "AUD")
	padded := NewSigner(" passphrase ", "uuid").Hash("10.00", "AUD")
	assert.NotEqual(t, plain, padded)
}

// The merchant UUID is lowercased with the rest of the concatenation,
// so mixed-case configuration cannot change the signature.
func TestSignerCaseNormalization(t *testing.T) {
	lower := NewSigner("passphrase", "abcdef123456").Hash("10.00", "AUD")
	upper := NewSigner("passphrase", "ABCDEF123456").Hash("10.00", "AUD")
	assert.Equal(t, lower, upper)
}
