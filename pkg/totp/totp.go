package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the standard 6-digit code length.
	Digits = 6
	// Period is the 30-second validity window (RFC 6238 standard).
	Period = 30
	// minSecretBytes is the RFC 4226 minimum key length of 128 bits.
	minSecretBytes = 16
)

// SecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7,
// optional padding.
var SecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

// GenerateSecretKey generates a new Base32-encoded shared secret.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20) // 160-bit secret (RFC 4226 recommendation)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// GenerateCode generates the time-based code for the current 30-second
// window. The secret must be a valid Base32-encoded string.
func GenerateCode(secret string) (string, error) {
	return GenerateCodeAt(secret, time.Now())
}

// GenerateCodeAt generates the time-based code for the window containing t.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	counter := t.Unix() / int64(Period)
	code := GenerateHOTP(key, counter, Digits)

	return fmt.Sprintf("%0*d", Digits, code), nil
}

// GenerateHOTP implements the RFC 4226 HMAC-based one-time password
// algorithm, converting a counter value into a numeric code via HMAC-SHA1.
func GenerateHOTP(key []byte, counter int64, digits int) int {
	// Counter is encoded big-endian into 8 bytes (RFC 4226 requirement).
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter = counter >> 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	hash := mac.Sum(nil)

	// Dynamic truncation: the last 4 bits select an offset into the hash,
	// and the MSB of the extracted value is cleared to keep it positive.
	offset := hash[len(hash)-1] & 0x0f
	code := (int(hash[offset]&0x7f) << 24) |
		(int(hash[offset+1]&0xff) << 16) |
		(int(hash[offset+2]&0xff) << 8) |
		(int(hash[offset+3] & 0xff))

	return code % int(math.Pow10(digits))
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !SecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	if len(key) < minSecretBytes {
		return nil, errors.Join(ErrInvalidSecret,
			fmt.Errorf("secret is %d bytes, need at least %d", len(key), minSecretBytes))
	}
	return key, nil
}
