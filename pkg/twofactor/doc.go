// Package twofactor resolves the secondary verification challenge a
// session login may require. Three strategies exist, mirroring the remote
// API's challenge kinds: a time-based code computed from a shared secret,
// a statically supplied one-time code, and a code delivered to the
// account's email address.
//
// One strategy is chosen per attempt by Select, driven by the challenge's
// declared kinds and the credentials available in Config. Every code is
// validated against the exactly-6-ASCII-digits pattern before it is sent.
//
// Verification failures keep their causes apart: a rejected code
// (ErrCodeRejected) is not a rate limit (RateLimitedError, errors.Is
// ErrRateLimited) and neither is a transport failure
// (ErrVerificationFailed). Retry and backoff decisions belong to the
// caller; nothing here retries.
package twofactor
