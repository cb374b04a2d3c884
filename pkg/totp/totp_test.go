package totp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultandowl/sessionkit/pkg/totp"
)

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Regexp(t, totp.SecretKeyRegex, secret)
}

func TestGenerateCodeAt(t *testing.T) {
	t.Parallel()

	// RFC 6238 appendix B test vector: secret "12345678901234567890"
	// (Base32 GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ), SHA1, truncated to 6 digits.
	const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "t=59", at: time.Unix(59, 0), want: "287082"},
		{name: "t=1111111109", at: time.Unix(1111111109, 0), want: "081804"},
		{name: "t=1234567890", at: time.Unix(1234567890, 0), want: "005924"},
		{name: "t=2000000000", at: time.Unix(2000000000, 0), want: "279037"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.GenerateCodeAt(rfcSecret, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{name: "empty secret", secret: "", wantErr: totp.ErrMissingSecret},
		{name: "invalid base32", secret: "not-base32!", wantErr: totp.ErrInvalidSecret},
		// A 5-byte key is far below the RFC 4226 128-bit minimum.
		{name: "secret too short", secret: "GEZDGNBV", wantErr: totp.ErrInvalidSecret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := totp.GenerateCode(tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateCodeStableWithinWindow(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	at := time.Unix(1700000010, 0)
	first, err := totp.GenerateCodeAt(secret, at)
	require.NoError(t, err)

	// Same 30-second window, same code.
	second, err := totp.GenerateCodeAt(secret, at.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, totp.Digits)
}
