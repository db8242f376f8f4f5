package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexSuffixLengthAndCharset(t *testing.T) {
	s, err := HexSuffix(4)
	require.NoError(t, err)
	assert.Len(t, s, 8)
	for _, c := range s {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}

func TestHexSuffixIsRandom(t *testing.T) {
	a := MustHexSuffix(4)
	b := MustHexSuffix(4)
	assert.NotEqual(t, a, b)
}

func TestGenerateWithPrefix(t *testing.T) {
	s, err := GenerateWithPrefix("batch", 8)
	require.NoError(t, err)
	assert.Len(t, s, len("batch_")+8)
}
