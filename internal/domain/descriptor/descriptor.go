package descriptor

import (
	"strconv"
	"strings"
)

// Metadata is a free-form, string-keyed passthrough bag preserving
// unrecognized key/value pairs from the source URI (spec §3). Compile
// paths consult a closed allowlist of known keys; everything else is
// carried verbatim for export (spec §9 "Dynamic metadata bag").
type Metadata map[string]string

// Lookup performs a case-insensitive key lookup, returning the value and
// whether the key was present. The parser.py reference carries keys like
// "allowinsecure"/"insecure" in mixed case depending on the source URI.
func (m Metadata) Lookup(key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	lower := strings.ToLower(key)
	for k, v := range m {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	return "", false
}

// Bool interprets the value at key as a boolean flag, honoring the same
// closed set of truthy literals as engine.py's allowinsecure/insecure
// handling: "1", "true", "yes" (case-insensitive).
func (m Metadata) Bool(key string) bool {
	v, ok := m.Lookup(key)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Clone returns a defensive copy.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Descriptor is the canonical, immutable-after-parse internal record for
// one proxy endpoint (spec §3, C1). It is valid-by-construction only for
// host/port/credential presence; all protocol-specific field validity is
// the Outbound Compiler's responsibility (C2).
type Descriptor struct {
	Protocol  Protocol
	Server    string
	Port      int
	Transport TransportType
	Security  SecurityMode

	// Credential holds exactly one of UUID (vless/vmess), Password
	// (trojan/hysteria2/shadowsocks), or Method+Password (shadowsocks).
	UUID     string
	Password string
	Method   string // shadowsocks cipher

	// Protocol-specific transport/TLS fields.
	Path          string // ws/httpupgrade/xhttp/http path
	Host          string // virtual host header
	SNI           string // explicit TLS server name
	Fingerprint   string // TLS client fingerprint (utls)
	ALPN          []string
	RealityPubKey string
	RealityShortID string
	Flow          string // vless flow control
	ServiceName   string // grpc service name
	AlterID       int    // vmess alter id
	Obfs          string // hysteria2 obfuscation type
	ObfsPassword  string

	Metadata Metadata

	// RawURI is the opaque original source URI, kept for fallback
	// re-export (spec §3). The core never parses or re-derives it.
	RawURI string
}

// Clone returns a deep copy safe to annotate independently (spec §3
// "Lifecycle": descriptors are never mutated in place).
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.ALPN != nil {
		out.ALPN = append([]string(nil), d.ALPN...)
	}
	out.Metadata = d.Metadata.Clone()
	return out
}

// StrictIdentity returns the per-endpoint identity used by the Champion
// Stage (C8) to match re-probed survivors back into the final set:
// `proto | credential | host:port | sni | path | service` (spec §3).
func (d Descriptor) StrictIdentity() string {
	return strings.Join([]string{
		string(d.Protocol),
		d.credential(),
		d.hostPort(),
		d.SNI,
		d.Path,
		d.ServiceName,
	}, "|")
}

// MachineIdentity is the strict identity without the credential, used by
// ingestion to cap accounts-per-host. The core never computes this itself
// (it only receives already-deduplicated input per spec §6) but the
// function is exposed for callers that need it.
func (d Descriptor) MachineIdentity() string {
	return strings.Join([]string{
		string(d.Protocol),
		d.hostPort(),
		d.SNI,
		d.Path,
		d.ServiceName,
	}, "|")
}

func (d Descriptor) credential() string {
	switch d.Protocol {
	case ProtocolVLESS, ProtocolVMess:
		return d.UUID
	case ProtocolShadowsocks:
		return d.Method + ":" + d.Password
	default:
		return d.Password
	}
}

func (d Descriptor) hostPort() string {
	return d.Server + ":" + strconv.Itoa(d.Port)
}
