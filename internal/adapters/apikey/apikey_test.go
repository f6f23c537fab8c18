package apikey

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborly/matchkeep/internal/core/apperr"
)

func TestNewApiKeyShapeAndHash(t *testing.T) {
	creds := New()
	raw, hash := creds.NewApiKey()

	assert.Len(t, raw, 32, "raw key is 16 bytes rendered as hex")
	assert.Len(t, hash, 64, "hash is a sha256 digest rendered as hex")

	rawBytes, err := hex.DecodeString(raw)
	require.NoError(t, err)
	require.Len(t, rawBytes, 16)

	sum := sha256.Sum256(rawBytes)
	assert.Equal(t, hex.EncodeToString(sum[:]), hash, "hash must be sha256 of the raw key bytes, not the hex string")
}

func TestNewApiKeyGeneratesDistinctKeys(t *testing.T) {
	creds := New()
	raw1, _ := creds.NewApiKey()
	raw2, _ := creds.NewApiKey()
	assert.NotEqual(t, raw1, raw2)
}

func TestHashRawApiKeyMatchesNewApiKey(t *testing.T) {
	creds := New()
	raw, expectedHash := creds.NewApiKey()

	hash, err := creds.HashRawApiKey(raw)
	require.NoError(t, err)
	assert.Equal(t, expectedHash, hash)
}

func TestHashRawApiKeyRejectsMalformedInput(t *testing.T) {
	creds := New()

	_, err := creds.HashRawApiKey("not-hex-at-all-zz")
	assert.ErrorIs(t, err, apperr.ErrMalformedApiKey)

	_, err = creds.HashRawApiKey("abcd")
	assert.ErrorIs(t, err, apperr.ErrMalformedApiKey, "too short to be 16 bytes")

	_, err = creds.HashRawApiKey("")
	assert.ErrorIs(t, err, apperr.ErrMalformedApiKey)
}

func TestHashPasswordProducesVerifiableBcryptHash(t *testing.T) {
	creds := New()
	hash, err := creds.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}
