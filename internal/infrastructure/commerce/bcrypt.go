package commerce

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blowfish"
)

// bcrypt with a caller-provided salt. golang.org/x/crypto/bcrypt always
// generates its own random salt, but the commerce gateway issues the salt as
// the client secret and re-derives the hash server-side, so the signature
// must be computed over that exact salt. The construction below is standard
// bcrypt on top of x/crypto/blowfish.

const (
	minHashCost    = 4
	maxHashCost    = 31
	encodedSaltLen = 22
	// bcrypt ignores key material past 72 bytes
	maxKeyLen = 72
	// the reference implementation encodes only 23 of the 24 checksum bytes
	checksumLen = 23
)

// ErrMalformedSecret indicates the client secret is not a bcrypt salt string
var ErrMalformedSecret = errors.New("commerce: client secret is not a bcrypt salt string")

// saltEncoding is bcrypt's nonstandard base64 alphabet
var saltEncoding = base64.
	NewEncoding("./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789").
	WithPadding(base64.NoPadding)

// magicText is the constant block bcrypt encrypts ("OrpheanBeholderScryDoubt")
var magicText = []byte("OrpheanBeholderScryDoubt")

// parseSecretSalt splits a "$2a$NN$<22-char salt>" secret into its parts.
func parseSecretSalt(secret string) (version string, cost int, salt string, err error) {
	if len(secret) == 0 || secret[0] != '$' {
		return "", 0, "", ErrMalformedSecret
	}
	parts := strings.SplitN(secret[1:], "$", 3)
	if len(parts) != 3 {
		return "", 0, "", ErrMalformedSecret
	}
	version = parts[0]
	if version != "2a" && version != "2b" && version != "2y" {
		return "", 0, "", fmt.Errorf("%w: unsupported version %q", ErrMalformedSecret, version)
	}
	cost, convErr := strconv.Atoi(parts[1])
	if convErr != nil || cost < minHashCost || cost > maxHashCost {
		return "", 0, "", fmt.Errorf("%w: bad cost %q", ErrMalformedSecret, parts[1])
	}
	if len(parts[2]) < encodedSaltLen {
		return "", 0, "", fmt.Errorf("%w: salt too short", ErrMalformedSecret)
	}
	return version, cost, parts[2][:encodedSaltLen], nil
}

// hashWithSalt computes the bcrypt hash of password under the salt carried in
// the secret and returns the full "$2a$NN$<salt><checksum>" text.
func hashWithSalt(password []byte, secret string) (string, error) {
	version, cost, salt, err := parseSecretSalt(secret)
	if err != nil {
		return "", err
	}
	csalt, err := saltEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}

	if len(password) > maxKeyLen {
		password = password[:maxKeyLen]
	}
	// bcrypt keys are NUL-terminated
	key := make([]byte, 0, len(password)+1)
	key = append(key, password...)
	key = append(key, 0)

	c, err := blowfish.NewSaltedCipher(key, csalt)
	if err != nil {
		return "", err
	}
	rounds := 1 << uint(cost)
	for i := 0; i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(csalt, c)
	}

	cipherData := make([]byte, len(magicText))
	copy(cipherData, magicText)
	for i := 0; i < len(cipherData); i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(cipherData[i:i+8], cipherData[i:i+8])
		}
	}

	checksum := saltEncoding.EncodeToString(cipherData[:checksumLen])
	return fmt.Sprintf("$%s$%02d$%s%s", version, cost, salt, checksum), nil
}
