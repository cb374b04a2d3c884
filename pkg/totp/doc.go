// Package totp generates time-based one-time passwords from a Base32
// shared secret, following RFC 4226 (HOTP) and RFC 6238 (TOTP) with the
// standard 6-digit, 30-second parameters.
//
// This module only ever generates codes for transmission to a remote
// verifier; server-side validation, authenticator URIs and recovery codes
// are out of scope here.
package totp
