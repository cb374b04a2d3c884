package twofactor

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
	"github.com/vaultandowl/sessionkit/pkg/totp"
)

// Verification kinds as declared by the login endpoint's
// requiresTwoFactorAuth field.
const (
	KindTOTP     = "totp"
	KindOTP      = "otp"
	KindEmailOTP = "emailOtp"
)

var codeRegexp = regexp.MustCompile(`^[0-9]{6}$`)

// Challenge is the server-signaled requirement for a secondary code.
type Challenge struct {
	Kinds []string
}

// Has reports whether the challenge accepts the given kind.
func (c Challenge) Has(kind string) bool {
	return slices.Contains(c.Kinds, kind)
}

// Resolver produces a verification code for one challenge kind.
type Resolver interface {
	// Kind returns the challenge kind this resolver answers.
	Kind() string
	// Code returns the 6-digit code to post.
	Code() (string, error)
}

// Select picks the resolver for a challenge given the available
// configuration: a TOTP secret is preferred over a static code, which is
// preferred over an email code. The jar is consulted to detect an email
// code that was already consumed. It fails with ErrNotConfigured when no
// challenged kind has a viable credential.
func Select(ch Challenge, cfg Config, jar *cookiejar.Jar) (Resolver, error) {
	switch {
	case ch.Has(KindTOTP) && cfg.Secret != "":
		return &totpResolver{secret: cfg.Secret}, nil

	case ch.Has(KindOTP) && cfg.Code != "":
		if !codeRegexp.MatchString(cfg.Code) {
			return nil, errors.Join(ErrNotConfigured, ErrInvalidCode)
		}
		return &staticResolver{code: cfg.Code}, nil

	case ch.Has(KindEmailOTP) && cfg.EmailCode != "":
		if !codeRegexp.MatchString(cfg.EmailCode) {
			return nil, errors.Join(ErrNotConfigured, ErrInvalidCode)
		}
		if jar != nil && emailCodeUsed(jar, cfg.EmailCode) {
			return nil, ErrStaleEmailCode
		}
		return &emailResolver{code: cfg.EmailCode}, nil

	default:
		return nil, ErrNotConfigured
	}
}

// emailCodeUsed reports whether any cookie recorded the configured code
// as already consumed.
func emailCodeUsed(jar *cookiejar.Jar, code string) bool {
	for _, c := range jar.Cookies() {
		if c.LastEmailCodeUsed != "" && c.LastEmailCodeUsed == code {
			return true
		}
	}
	return false
}

// VerifyPath returns the endpoint path for a challenge kind.
func VerifyPath(kind string) string {
	return "/auth/twofactorauth/" + strings.ToLower(kind) + "/verify"
}

type totpResolver struct {
	secret string
}

func (r *totpResolver) Kind() string { return KindTOTP }

func (r *totpResolver) Code() (string, error) {
	code, err := totp.GenerateCode(r.secret)
	if err != nil {
		return "", errors.Join(ErrNotConfigured, err)
	}
	return code, nil
}

type staticResolver struct {
	code string
}

func (r *staticResolver) Kind() string { return KindOTP }

func (r *staticResolver) Code() (string, error) { return r.code, nil }

type emailResolver struct {
	code string
}

func (r *emailResolver) Kind() string { return KindEmailOTP }

func (r *emailResolver) Code() (string, error) { return r.code, nil }
