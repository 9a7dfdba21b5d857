package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	payload := []byte(`{"event":"job.completed","job_id":"abc-123"}`)
	header := Sign("s3cret", payload)

	assert.True(t, strings.HasPrefix(header, "sha256="))
	assert.True(t, Verify("s3cret", payload, header))
}

func TestVerify_KnownVector(t *testing.T) {
	// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	payload := []byte("The quick brown fox jumps over the lazy dog")
	header := "sha256=f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"

	assert.True(t, Verify("key", payload, header))
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := []byte(`{"event":"job.completed"}`)
	header := Sign("s3cret", payload)

	assert.False(t, Verify("other-secret", payload, header))
}

func TestVerify_TamperedPayload(t *testing.T) {
	payload := []byte(`{"event":"job.completed"}`)
	header := Sign("s3cret", payload)

	tampered := []byte(`{"event":"job.failed"}`)
	assert.False(t, Verify("s3cret", tampered, header))
}

func TestVerify_ExactBytesMatter(t *testing.T) {
	// Semantically equal JSON with different byte layout must not verify.
	header := Sign("s3cret", []byte(`{"a":1,"b":2}`))
	assert.False(t, Verify("s3cret", []byte(`{"b":2,"a":1}`), header))
	assert.False(t, Verify("s3cret", []byte(`{ "a": 1, "b": 2 }`), header))
}

func TestVerify_MalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)
	valid := Sign("s3cret", payload)
	digest := strings.TrimPrefix(valid, "sha256=")

	tests := []struct {
		name   string
		header string
	}{
		{name: "empty", header: ""},
		{name: "missing prefix", header: digest},
		{name: "wrong prefix", header: "sha1=" + digest},
		{name: "uppercase prefix", header: "SHA256=" + digest},
		{name: "bad hex", header: "sha256=zzzz"},
		{name: "truncated digest", header: valid[:len(valid)-2]},
		{name: "prefix only", header: "sha256="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify("s3cret", payload, tt.header))
		})
	}
}

func TestVerify_EmptySecretFailsClosed(t *testing.T) {
	payload := []byte(`{}`)
	header := Sign("", payload)

	// Even a correctly computed signature over an empty secret is rejected;
	// an empty secret means the service is misconfigured.
	assert.False(t, Verify("", payload, header))
}

func TestVerify_SecretNotTrimmed(t *testing.T) {
	payload := []byte(`{"event":"job.completed"}`)
	padded := " s3cret "

	assert.True(t, Verify(padded, payload, Sign(padded, payload)))
	assert.False(t, Verify("s3cret", payload, Sign(padded, payload)))
}
