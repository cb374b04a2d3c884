package twofactor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
	"github.com/vaultandowl/sessionkit/pkg/totp"
	"github.com/vaultandowl/sessionkit/pkg/twofactor"
)

func TestChallengeHas(t *testing.T) {
	t.Parallel()

	ch := twofactor.Challenge{Kinds: []string{"totp", "otp"}}
	assert.True(t, ch.Has(twofactor.KindTOTP))
	assert.True(t, ch.Has(twofactor.KindOTP))
	assert.False(t, ch.Has(twofactor.KindEmailOTP))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	allKinds := twofactor.Challenge{Kinds: []string{"totp", "otp", "emailOtp"}}

	t.Run("secret wins over static and email code", func(t *testing.T) {
		t.Parallel()
		r, err := twofactor.Select(allKinds, twofactor.Config{
			Secret:    secret,
			Code:      "111111",
			EmailCode: "222222",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, twofactor.KindTOTP, r.Kind())

		code, err := r.Code()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	})

	t.Run("static code wins over email code", func(t *testing.T) {
		t.Parallel()
		r, err := twofactor.Select(allKinds, twofactor.Config{
			Code:      "111111",
			EmailCode: "222222",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, twofactor.KindOTP, r.Kind())

		code, err := r.Code()
		require.NoError(t, err)
		assert.Equal(t, "111111", code)
	})

	t.Run("email code as last resort", func(t *testing.T) {
		t.Parallel()
		r, err := twofactor.Select(allKinds, twofactor.Config{EmailCode: "222222"}, nil)
		require.NoError(t, err)
		assert.Equal(t, twofactor.KindEmailOTP, r.Kind())
	})

	t.Run("secret ignored when challenge lacks totp", func(t *testing.T) {
		t.Parallel()
		ch := twofactor.Challenge{Kinds: []string{"emailOtp"}}
		r, err := twofactor.Select(ch, twofactor.Config{
			Secret:    secret,
			EmailCode: "222222",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, twofactor.KindEmailOTP, r.Kind())
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Parallel()
		_, err := twofactor.Select(allKinds, twofactor.Config{}, nil)
		assert.ErrorIs(t, err, twofactor.ErrNotConfigured)
	})

	t.Run("malformed static code", func(t *testing.T) {
		t.Parallel()
		ch := twofactor.Challenge{Kinds: []string{"otp"}}
		_, err := twofactor.Select(ch, twofactor.Config{Code: "12a456"}, nil)
		assert.ErrorIs(t, err, twofactor.ErrNotConfigured)
		assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
	})

	t.Run("malformed email code", func(t *testing.T) {
		t.Parallel()
		ch := twofactor.Challenge{Kinds: []string{"emailOtp"}}
		_, err := twofactor.Select(ch, twofactor.Config{EmailCode: "12345"}, nil)
		assert.ErrorIs(t, err, twofactor.ErrNotConfigured)
	})

	t.Run("already used email code", func(t *testing.T) {
		t.Parallel()
		used := cookiejar.Cookie{
			Key:               "auth",
			Value:             "v1",
			Expires:           time.Now().Add(time.Hour),
			LastEmailCodeUsed: "222222",
		}
		jar := cookiejar.New(used)

		ch := twofactor.Challenge{Kinds: []string{"emailOtp"}}
		_, err := twofactor.Select(ch, twofactor.Config{EmailCode: "222222"}, jar)
		assert.ErrorIs(t, err, twofactor.ErrStaleEmailCode)

		// A different code is fine.
		r, err := twofactor.Select(ch, twofactor.Config{EmailCode: "333333"}, jar)
		require.NoError(t, err)
		assert.Equal(t, twofactor.KindEmailOTP, r.Kind())
	})
}

func TestVerifyPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/auth/twofactorauth/totp/verify", twofactor.VerifyPath(twofactor.KindTOTP))
	assert.Equal(t, "/auth/twofactorauth/otp/verify", twofactor.VerifyPath(twofactor.KindOTP))
	assert.Equal(t, "/auth/twofactorauth/emailotp/verify", twofactor.VerifyPath(twofactor.KindEmailOTP))
}
