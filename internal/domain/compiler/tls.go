package compiler

import (
	"net"
	"strings"

	"sentinel/internal/domain/descriptor"
)

// defaultRealityALPN is applied when security is reality and no ALPN was
// carried on the descriptor (spec §4.1).
var defaultRealityALPN = []string{"h2", "http/1.1"}

// normalizeFingerprint lowercases fp and drops it (returns "") if it is
// not in the closed allowlist (spec §3 "TLS fingerprint is normalized
// lowercase and must be in a closed allowlist; otherwise dropped").
func normalizeFingerprint(fp string) string {
	fp = strings.ToLower(strings.TrimSpace(fp))
	if fp == "" {
		return ""
	}
	if !realityFingerprintAllowlist[fp] {
		return ""
	}
	return fp
}

// stripIPLiteral returns "" if s is an IP literal (with or without the
// bracket notation used for IPv6 hosts), otherwise returns s unchanged.
func stripIPLiteral(s string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if net.ParseIP(trimmed) != nil {
		return ""
	}
	return s
}

// resolveSNI implements the precedence from spec §4.1: explicit SNI →
// virtual host (only if transport is not HTTP-family) → server address.
// IP literals are never returned; if every candidate is an IP, SNI is
// omitted entirely (empty string).
func resolveSNI(d descriptor.Descriptor) string {
	if sni := stripIPLiteral(d.SNI); sni != "" {
		return sni
	}
	if !d.Transport.IsHTTPFamily() {
		if host := stripIPLiteral(d.Host); host != "" {
			return host
		}
	}
	return stripIPLiteral(d.Server)
}

// tlsObject is the compiled TLS sub-object appended when security requires
// TLS (spec §4.1).
type tlsObject struct {
	Enabled    bool              `json:"enabled"`
	ServerName string            `json:"server_name,omitempty"`
	Insecure   bool              `json:"insecure,omitempty"`
	ALPN       []string          `json:"alpn,omitempty"`
	UTLS       *utlsObject       `json:"utls,omitempty"`
	Reality    *realityTLSObject `json:"reality,omitempty"`
}

type utlsObject struct {
	Enabled     bool   `json:"enabled"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type realityTLSObject struct {
	Enabled   bool   `json:"enabled"`
	PublicKey string `json:"public_key"`
	ShortID   string `json:"short_id,omitempty"`
}

// buildTLSObject compiles the TLS layer for d, or returns (nil, false) if
// a Reality invariant is violated (spec §3/§4.1). Non-Reality TLS never
// fails here — field absence just yields sparse output.
func buildTLSObject(d descriptor.Descriptor) (*tlsObject, bool) {
	if !d.Security.RequiresTLS() {
		return nil, true
	}

	sni := resolveSNI(d)

	if d.Security.IsReality() {
		if !realityPublicKeyValid(d.RealityPubKey) {
			return nil, false
		}
		if !realityShortIDValid(d.RealityShortID) {
			return nil, false
		}
		if !isDomainShaped(sni) && !isDomainShaped(d.Host) {
			return nil, false
		}

		fp := normalizeFingerprint(d.Fingerprint)
		if fp == "" {
			fp = defaultRealityFingerprint
		}

		alpn := d.ALPN
		if len(alpn) == 0 {
			alpn = defaultRealityALPN
		}

		return &tlsObject{
			Enabled:    true,
			ServerName: sni,
			ALPN:       alpn,
			UTLS:       &utlsObject{Enabled: true, Fingerprint: fp},
			Reality: &realityTLSObject{
				Enabled:   true,
				PublicKey: d.RealityPubKey,
				ShortID:   d.RealityShortID,
			},
		}, true
	}

	obj := &tlsObject{
		Enabled:    true,
		ServerName: sni,
		ALPN:       d.ALPN,
		// insecure is honored only for non-Reality security (spec §4.1).
		Insecure: d.Metadata.Bool("allowinsecure") || d.Metadata.Bool("insecure"),
	}
	if fp := normalizeFingerprint(d.Fingerprint); fp != "" {
		obj.UTLS = &utlsObject{Enabled: true, Fingerprint: fp}
	}
	return obj, true
}
