// Package descriptor defines the canonical in-memory shape of a proxy
// endpoint (C1) and the identity functions derived from it.
package descriptor

// Protocol identifies which proxy protocol a Descriptor describes.
type Protocol string

const (
	ProtocolVLESS        Protocol = "vless"
	ProtocolVMess        Protocol = "vmess"
	ProtocolTrojan       Protocol = "trojan"
	ProtocolShadowsocks  Protocol = "shadowsocks"
	ProtocolHysteria2    Protocol = "hysteria2"
)

var validProtocols = map[Protocol]bool{
	ProtocolVLESS:       true,
	ProtocolVMess:       true,
	ProtocolTrojan:      true,
	ProtocolShadowsocks: true,
	ProtocolHysteria2:   true,
}

// IsValid reports whether p is one of the five supported protocol tags.
func (p Protocol) IsValid() bool {
	return validProtocols[p]
}

func (p Protocol) String() string {
	return string(p)
}

// TransportType identifies the wire transport carrying the protocol.
type TransportType string

const (
	TransportTCP         TransportType = "tcp"
	TransportWS          TransportType = "ws"
	TransportGRPC        TransportType = "grpc"
	TransportHTTPUpgrade TransportType = "httpupgrade"
	TransportXHTTP       TransportType = "xhttp"
	TransportHTTP        TransportType = "http"
	TransportH2          TransportType = "h2"
	TransportQUIC        TransportType = "quic"
)

var validTransports = map[TransportType]bool{
	TransportTCP:         true,
	TransportWS:          true,
	TransportGRPC:        true,
	TransportHTTPUpgrade: true,
	TransportXHTTP:       true,
	TransportHTTP:        true,
	TransportH2:          true,
	TransportQUIC:        true,
}

func (t TransportType) IsValid() bool {
	if t == "" {
		return true // empty defaults to tcp
	}
	return validTransports[t]
}

func (t TransportType) String() string {
	return string(t)
}

// IsHTTPFamily reports whether the transport carries its own Host header
// in a way that makes it unsuitable as an SNI-resolution fallback (spec
// §4.1 TLS layer SNI precedence: "virtual host (only if transport is not
// HTTP-family)").
func (t TransportType) IsHTTPFamily() bool {
	switch t {
	case TransportWS, TransportHTTPUpgrade, TransportXHTTP, TransportHTTP, TransportH2:
		return true
	default:
		return false
	}
}

// SecurityMode identifies the TLS posture of the outbound connection.
type SecurityMode string

const (
	SecurityNone    SecurityMode = "none"
	SecurityTLS     SecurityMode = "tls"
	SecurityReality SecurityMode = "reality"
	SecurityAuto    SecurityMode = "auto"
)

var validSecurityModes = map[SecurityMode]bool{
	SecurityNone:    true,
	SecurityTLS:     true,
	SecurityReality: true,
	SecurityAuto:    true,
}

func (s SecurityMode) IsValid() bool {
	if s == "" {
		return true // empty defaults to none
	}
	return validSecurityModes[s]
}

func (s SecurityMode) String() string {
	return string(s)
}

// RequiresTLS reports whether a TLS sub-object must be compiled for this
// security mode (spec §4.1: "appended when security ∈ {tls,reality,auto}").
// `auto` is treated as equivalent to `tls` per spec §9's open question.
func (s SecurityMode) RequiresTLS() bool {
	return s == SecurityTLS || s == SecurityReality || s == SecurityAuto
}

func (s SecurityMode) IsReality() bool {
	return s == SecurityReality
}
