package compiler

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// RealityKeyPair is an X25519 key pair in the base64url encoding Reality
// descriptors carry their public key in (spec §3, §8 "rejected unless
// public-key decodes to exactly 32 bytes"). Adapted from the teacher's
// export-direction GenerateRealityKeyPair (valueobjects/reality.go),
// repurposed here to produce realistic fixtures for compiler tests
// instead of hand-rolled byte sequences.
type RealityKeyPair struct {
	PrivateKey string
	PublicKey  string
}

// GenerateRealityKeyPair generates a fresh X25519 key pair.
func GenerateRealityKeyPair() (*RealityKeyPair, error) {
	var privateKey [32]byte
	if _, err := rand.Read(privateKey[:]); err != nil {
		return nil, fmt.Errorf("generate reality private key: %w", err)
	}

	privateKey[0] &= 248
	privateKey[31] &= 127
	privateKey[31] |= 64

	var publicKey [32]byte
	curve25519.ScalarBaseMult(&publicKey, &privateKey)

	return &RealityKeyPair{
		PrivateKey: base64.RawURLEncoding.EncodeToString(privateKey[:]),
		PublicKey:  base64.RawURLEncoding.EncodeToString(publicKey[:]),
	}, nil
}
