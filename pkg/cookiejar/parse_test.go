package cookiejar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
)

func TestParseSetCookie(t *testing.T) {
	t.Parallel()

	t.Run("full attribute list", func(t *testing.T) {
		t.Parallel()
		c, err := cookiejar.ParseSetCookie("auth=abc123; Path=/; Expires=Wed, 21 Oct 2065 07:28:00 GMT; HttpOnly")
		require.NoError(t, err)

		assert.Equal(t, "auth", c.Key)
		assert.Equal(t, "abc123", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HostOnly)
		assert.Equal(t, time.Date(2065, time.October, 21, 7, 28, 0, 0, time.UTC), c.Expires.UTC())
	})

	t.Run("attribute names are case-insensitive", func(t *testing.T) {
		t.Parallel()
		c, err := cookiejar.ParseSetCookie("auth=abc; path=/api; expires=Wed, 21 Oct 2065 07:28:00 GMT")
		require.NoError(t, err)
		assert.Equal(t, "/api", c.Path)
		assert.Equal(t, 2065, c.Expires.UTC().Year())
	})

	t.Run("missing expires defaults to now", func(t *testing.T) {
		t.Parallel()
		before := time.Now()
		c, err := cookiejar.ParseSetCookie("auth=abc; Path=/")
		require.NoError(t, err)
		after := time.Now()

		// Session-scoped: already expired for persistence purposes.
		assert.False(t, c.Expires.Before(before))
		assert.False(t, c.Expires.After(after))
		assert.True(t, c.Expired(after))
	})

	t.Run("unparseable expires treated as missing", func(t *testing.T) {
		t.Parallel()
		c, err := cookiejar.ParseSetCookie("auth=abc; Expires=not-a-date")
		require.NoError(t, err)
		assert.True(t, c.Expired(time.Now()))
	})

	t.Run("domain attribute clears hostOnly", func(t *testing.T) {
		t.Parallel()
		c, err := cookiejar.ParseSetCookie("auth=abc; Domain=example.com")
		require.NoError(t, err)
		assert.False(t, c.HostOnly)
	})

	t.Run("unknown attributes ignored", func(t *testing.T) {
		t.Parallel()
		c, err := cookiejar.ParseSetCookie("auth=abc; SameSite=Strict; Secure; Max-Age=3600")
		require.NoError(t, err)
		assert.Equal(t, "auth", c.Key)
		assert.Equal(t, "abc", c.Value)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"", "no-equals-sign", "=value; Path=/"} {
			_, err := cookiejar.ParseSetCookie(raw)
			assert.ErrorIs(t, err, cookiejar.ErrMalformedSetCookie, "raw=%q", raw)
		}
	})
}

func TestParseSetCookies(t *testing.T) {
	t.Parallel()

	t.Run("multiple headers in order", func(t *testing.T) {
		t.Parallel()
		cookies, err := cookiejar.ParseSetCookies([]string{
			"auth=v1; Path=/",
			"twoFactorAuth=tfa1; Path=/",
		})
		require.NoError(t, err)
		require.Len(t, cookies, 2)
		assert.Equal(t, "auth", cookies[0].Key)
		assert.Equal(t, "twoFactorAuth", cookies[1].Key)
	})

	t.Run("one malformed header fails the parse", func(t *testing.T) {
		t.Parallel()
		_, err := cookiejar.ParseSetCookies([]string{"auth=v1", "garbage"})
		assert.ErrorIs(t, err, cookiejar.ErrMalformedSetCookie)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		cookies, err := cookiejar.ParseSetCookies(nil)
		require.NoError(t, err)
		assert.Empty(t, cookies)
	})
}
