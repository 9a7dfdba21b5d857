// Package signature implements HMAC-SHA256 webhook signature generation and
// verification using the sha256=<hex> header format.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix is prepended to the hex digest in the signature header.
const Prefix = "sha256="

// Sign computes the signature token for payload. The payload must be the
// exact bytes sent on the wire; re-serialising before signing breaks
// verification on the receiving side.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether header is a valid signature of payload under secret.
// Malformed headers (missing prefix, bad hex, wrong length) are a
// verification failure, never an error: the caller treats all invalid
// signatures the same way. The comparison is constant time.
func Verify(secret string, payload []byte, header string) bool {
	if secret == "" {
		return false
	}
	digest, ok := strings.CutPrefix(header, Prefix)
	if !ok {
		return false
	}
	got, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	want := mac.Sum(nil)

	return hmac.Equal(got, want)
}
