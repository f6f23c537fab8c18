/*
 * file: apikey.go
 * package: apikey
 * description:
 *     Implements ports.Credentials: raw API keys are UUIDv4s rendered as
 *     32 lowercase hex digits (no dashes); their stored hash is the SHA-256
 *     of the 16 raw UUID bytes, rendered as 64 lowercase hex digits.
 *     Passwords are hashed with bcrypt at the default cost.
 */

package apikey

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborly/matchkeep/internal/core/apperr"
)

// Credentials implements ports.Credentials.
type Credentials struct{}

func New() Credentials { return Credentials{} }

func (Credentials) NewApiKey() (raw string, hash string) {
	id := uuid.New()
	rawBytes := id[:]
	sum := sha256.Sum256(rawBytes)
	return hex.EncodeToString(rawBytes), hex.EncodeToString(sum[:])
}

// HashRawApiKey validates that raw is exactly 32 hex digits (the display
// form of a raw key; upper- and lowercase digits are both accepted) and
// returns its stored hash. The hash itself
// is a plain big-endian hex encoding -- the original implementation's
// broken bitwise hex decoder for the stored form is not replicated.
func (Credentials) HashRawApiKey(raw string) (string, error) {
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != 16 {
		return "", apperr.ErrMalformedApiKey
	}
	sum := sha256.Sum256(decoded)
	return hex.EncodeToString(sum[:]), nil
}

func (Credentials) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
