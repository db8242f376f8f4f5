package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictIdentityIncludesCredential(t *testing.T) {
	a := Descriptor{Protocol: ProtocolVLESS, Server: "example.com", Port: 443, UUID: "u1", SNI: "sni.example.com"}
	b := a
	b.UUID = "u2"

	assert.NotEqual(t, a.StrictIdentity(), b.StrictIdentity())
	assert.Equal(t, a.MachineIdentity(), b.MachineIdentity())
}

func TestStrictIdentityShadowsocksUsesMethodAndPassword(t *testing.T) {
	a := Descriptor{Protocol: ProtocolShadowsocks, Server: "host", Port: 8388, Method: "aes-256-gcm", Password: "p1"}
	b := Descriptor{Protocol: ProtocolShadowsocks, Server: "host", Port: 8388, Method: "aes-256-gcm", Password: "p2"}

	assert.NotEqual(t, a.StrictIdentity(), b.StrictIdentity())
}

func TestCloneIsIndependent(t *testing.T) {
	d := Descriptor{
		Protocol: ProtocolVMess,
		Server:   "host",
		Port:     1,
		ALPN:     []string{"h2", "http/1.1"},
		Metadata: Metadata{"k": "v"},
	}
	c := d.Clone()
	c.ALPN[0] = "mutated"
	c.Metadata["k"] = "mutated"

	assert.Equal(t, "h2", d.ALPN[0])
	assert.Equal(t, "v", d.Metadata["k"])
}

func TestMetadataBoolHonorsTruthyLiterals(t *testing.T) {
	m := Metadata{"allowInsecure": "YES"}
	assert.True(t, m.Bool("allowinsecure"))

	m2 := Metadata{"insecure": "0"}
	assert.False(t, m2.Bool("insecure"))
}

func TestClampSpeed(t *testing.T) {
	assert.Equal(t, 0.0, ClampSpeed(-5))
	assert.Equal(t, MaxSpeedMbps, ClampSpeed(5000))
	assert.Equal(t, 42.0, ClampSpeed(42))
}

func TestTransportIsHTTPFamily(t *testing.T) {
	assert.True(t, TransportWS.IsHTTPFamily())
	assert.True(t, TransportH2.IsHTTPFamily())
	assert.False(t, TransportTCP.IsHTTPFamily())
	assert.False(t, TransportGRPC.IsHTTPFamily())
}

func TestSecurityRequiresTLS(t *testing.T) {
	assert.True(t, SecurityTLS.RequiresTLS())
	assert.True(t, SecurityReality.RequiresTLS())
	assert.True(t, SecurityAuto.RequiresTLS())
	assert.False(t, SecurityNone.RequiresTLS())
}
