/*
 * file: credentials.go
 * package: ports
 * description:
 *     Credentials isolates the dispatcher from the concrete key-generation
 *     and password-hashing primitives (UUIDv4 + SHA-256, bcrypt), keeping
 *     those algorithm choices in the adapter layer.
 */

package ports

// Credentials mints and validates API keys and hashes passwords.
type Credentials interface {
	// NewApiKey generates a fresh raw API key and its stored hash.
	NewApiKey() (raw string, hash string)
	// HashRawApiKey validates that raw is a well-formed raw API key and
	// returns its hash. Returns apperr.ErrMalformedApiKey otherwise.
	HashRawApiKey(raw string) (hash string, err error)
	// HashPassword hashes a plaintext password for storage.
	HashPassword(plain string) (string, error)
}
