package compiler

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRealityKeyPairProducesValidatablePublicKey(t *testing.T) {
	pair, err := GenerateRealityKeyPair()
	require.NoError(t, err)
	assert.True(t, realityPublicKeyValid(pair.PublicKey))

	decoded, err := base64.RawURLEncoding.DecodeString(pair.PrivateKey)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestGenerateRealityKeyPairIsRandom(t *testing.T) {
	a, err := GenerateRealityKeyPair()
	require.NoError(t, err)
	b, err := GenerateRealityKeyPair()
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey, b.PublicKey)
}
