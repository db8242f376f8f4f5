// Package id provides cryptographically random identifier generation,
// trimmed from the teacher's Stripe-style `prefix_base62string` entity-ID
// package down to the two primitives this module actually needs: a bare
// random token generator and an 8-hex-digit suffix generator for temp
// config filenames (spec §4.4 "Temp filenames carry a random 8-hex suffix
// to avoid collisions across parallel batches").
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// base62Alphabet is kept for Generate/GenerateWithPrefix, the general
// short-ID primitives; HexSuffix below uses hex specifically because the
// runtime supervisor's temp filenames must match spec §6's
// `run_<8hex>.json` / `check_<8hex>.json` naming exactly.
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generate creates a random identifier of the given length using Base62
// encoding.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(base62Alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate random id: %w", err)
		}
		result[i] = base62Alphabet[n.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix creates a prefixed identifier in the Stripe-style
// "prefix_randomstring" shape.
func GenerateWithPrefix(prefix string, length int) (string, error) {
	suffix, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + suffix, nil
}

// HexSuffix returns n random bytes hex-encoded, for use as the 8-hex temp
// config filename suffix (spec §4.4, §6).
func HexSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate hex suffix: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// MustHexSuffix panics on error; use only where failure would indicate a
// broken crypto/rand source (a fatal condition anywhere in the process).
func MustHexSuffix(n int) string {
	s, err := HexSuffix(n)
	if err != nil {
		panic(err)
	}
	return s
}
