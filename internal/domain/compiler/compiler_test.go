package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/internal/domain/descriptor"
)

func validRealityPubKey() string {
	pair, err := GenerateRealityKeyPair()
	if err != nil {
		panic(err)
	}
	return pair.PublicKey
}

func validRealityDescriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Protocol:       descriptor.ProtocolVLESS,
		Server:         "1.2.3.4",
		Port:           443,
		UUID:           "550e8400-e29b-41d4-a716-446655440000",
		Security:       descriptor.SecurityReality,
		SNI:            "www.example.com",
		RealityPubKey:  validRealityPubKey(),
		RealityShortID: "0123abcd",
		Fingerprint:    "Chrome",
	}
}

func TestCompileAcceptsValidReality(t *testing.T) {
	d := validRealityDescriptor()
	out, ok := Compile(d, "proxy-0")
	require.True(t, ok)
	assert.Equal(t, "vless", out.Type)
	assert.Equal(t, d.UUID, out.UUID)
	require.NotNil(t, out.TLS)
	assert.True(t, out.TLS.Reality.Enabled)
	assert.Equal(t, "chrome", out.TLS.UTLS.Fingerprint)
}

func TestCompileIsDeterministic(t *testing.T) {
	d := validRealityDescriptor()
	a, ok1 := Compile(d, "proxy-0")
	b, ok2 := Compile(d, "proxy-0")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, a, b)
}

func TestCompileRejectsInvalidUUID(t *testing.T) {
	d := validRealityDescriptor()
	d.UUID = "not-a-uuid"
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}

func TestCompileRejectsShortRealityKey(t *testing.T) {
	d := validRealityDescriptor()
	d.RealityPubKey = "tooshort"
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}

func TestCompileRejectsRealityWithoutDomainSNI(t *testing.T) {
	d := validRealityDescriptor()
	d.SNI = ""
	d.Server = "1.2.3.4"
	d.Host = ""
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}

func TestCompileRejectsShadowsocksBadCipher(t *testing.T) {
	d := descriptor.Descriptor{
		Protocol: descriptor.ProtocolShadowsocks,
		Server:   "host", Port: 8388,
		Method: "rc4-md5", Password: "secret",
	}
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}

func TestCompileAcceptsShadowsocksAEAD(t *testing.T) {
	d := descriptor.Descriptor{
		Protocol: descriptor.ProtocolShadowsocks,
		Server:   "host", Port: 8388,
		Method: "aes-256-gcm", Password: "secret",
	}
	out, ok := Compile(d, "proxy-1")
	require.True(t, ok)
	assert.Equal(t, "secret", out.Password)
	assert.Nil(t, out.TLS)
}

func TestCompileRejectsTrojanWithoutPassword(t *testing.T) {
	d := descriptor.Descriptor{Protocol: descriptor.ProtocolTrojan, Server: "host", Port: 443}
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}

func TestCompileTLSPresenceMatchesSecurityMode(t *testing.T) {
	plain := descriptor.Descriptor{
		Protocol: descriptor.ProtocolTrojan, Server: "host", Port: 443,
		Password: "pw", Security: descriptor.SecurityNone,
	}
	out, ok := Compile(plain, "proxy-0")
	require.True(t, ok)
	assert.Nil(t, out.TLS)

	withTLS := plain
	withTLS.Security = descriptor.SecurityTLS
	withTLS.SNI = "host.example.com"
	out2, ok2 := Compile(withTLS, "proxy-1")
	require.True(t, ok2)
	assert.NotNil(t, out2.TLS)
}

func TestCompileHysteria2AlwaysCarriesTLS(t *testing.T) {
	d := descriptor.Descriptor{
		Protocol: descriptor.ProtocolHysteria2, Server: "host", Port: 443,
		Password: "pw", SNI: "host.example.com",
	}
	out, ok := Compile(d, "proxy-0")
	require.True(t, ok)
	assert.NotNil(t, out.TLS)
}

func TestCompileUnknownProtocolRejected(t *testing.T) {
	d := descriptor.Descriptor{Protocol: "wireguard", Server: "host", Port: 1}
	_, ok := Compile(d, "proxy-0")
	assert.False(t, ok)
}
