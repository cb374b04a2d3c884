package twofactor

// Config holds the out-of-band two-factor credentials. At most one is
// used per authentication attempt; selection order is TOTP secret, then
// static code, then email code.
type Config struct {
	// Secret is the Base32 shared secret for time-based code generation.
	Secret string `env:"TWO_FACTOR_SECRET"`

	// Code is a pre-supplied 6-digit one-time code, used when no secret
	// is available.
	Code string `env:"TWO_FACTOR_CODE"`

	// EmailCode is the 6-digit code the remote system emailed to the
	// account.
	EmailCode string `env:"TWO_FACTOR_EMAIL_CODE"`
}
