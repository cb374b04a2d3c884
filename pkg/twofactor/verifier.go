package twofactor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vaultandowl/sessionkit/pkg/apiclient"
	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
)

// Result is the outcome of a successful verification: the server's
// verified flag, any freshly issued cookies for the caller to merge, and
// the code that was consumed.
type Result struct {
	Verified bool
	Code     string
	Cookies  []cookiejar.Cookie
}

// Verifier posts verification codes to the challenge endpoint matching
// the selected resolver.
type Verifier struct {
	client *apiclient.Client
	log    *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithLogger sets the verifier's logger.
func WithLogger(log *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if log != nil {
			v.log = log
		}
	}
}

// NewVerifier creates a verifier on top of the shared API client.
func NewVerifier(client *apiclient.Client, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		client: client,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

// Resolve obtains a code from the resolver, validates its format, posts
// it to the matching verify endpoint and returns the parsed outcome.
//
// A code failing the 6-digit check is never transmitted. HTTP 429 yields
// a RateLimitedError carrying the status; any other non-2xx status yields
// ErrVerificationFailed; a 2xx response without verified=true yields
// ErrCodeRejected.
func (v *Verifier) Resolve(ctx context.Context, r Resolver, cookieHeader string) (Result, error) {
	code, err := r.Code()
	if err != nil {
		return Result{}, err
	}
	if !codeRegexp.MatchString(code) {
		return Result{}, ErrInvalidCode
	}

	resp, err := v.client.Do(ctx, http.MethodPost, VerifyPath(r.Kind()),
		map[string]string{"code": code},
		apiclient.WithCookieHeader(cookieHeader),
	)
	if err != nil {
		return Result{}, errors.Join(ErrVerificationFailed, err)
	}

	if resp.Status == http.StatusTooManyRequests {
		return Result{}, &RateLimitedError{Status: resp.Status}
	}
	if !resp.OK() {
		return Result{}, errors.Join(ErrVerificationFailed,
			fmt.Errorf("status %d: %s", resp.Status, resp.Body))
	}

	var parsed verifyResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return Result{}, errors.Join(ErrVerificationFailed, err)
	}
	if !parsed.Verified {
		return Result{}, ErrCodeRejected
	}

	v.log.DebugContext(ctx, "two-factor code verified", slog.String("kind", r.Kind()))

	return Result{
		Verified: true,
		Code:     code,
		Cookies:  resp.Cookies,
	}, nil
}
