package internal

import (
	"strings"

	"gitee.com/golang-module/dongle"
)

// Signer produces the request hash the processor verifies on every
// charge. The recipe is fixed by the processor's API: MD5 is a protocol
// requirement here, not a cryptographic choice.
type Signer struct {
	passphrase   string
	merchantUUID string
}

func NewSigner(passphrase, merchantUUID string) *Signer {
	// The passphrase is hashed exactly as configured, without trimming.
	return &Signer{
		passphrase:   passphrase,
		merchantUUID: merchantUUID,
	}
}

// Hash builds the transaction signature for an amount/currency pair:
//
//  1. MD5 of the passphrase as lowercase hex
//  2. digest + merchantUUID + amount + currency, concatenated
//  3. the whole string lowercased
//  4. MD5 of the result as lowercase hex
//
// The amount must already be in its final 2-decimal wire form, since
// the processor recomputes the hash over the posted field values.
func (s *Signer) Hash(amount, currency string) string {
	digest := dongle.Encrypt.FromString(s.passphrase).ByMd5().ToHexString()
	payload := strings.ToLower(digest + s.merchantUUID + amount + currency)
	return dongle.Encrypt.FromString(payload).ByMd5().ToHexString()
}
