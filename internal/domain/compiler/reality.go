package compiler

import (
	"encoding/base64"
	"encoding/hex"
	"net"
	"strings"
)

// realityPublicKeyValid checks that pbk decodes (as unpadded URL-safe
// base64, the sing-box/xray convention) to exactly 32 bytes. spec §3
// states the encoded length must fall in [40, 46]; decoding and checking
// the byte length directly is equivalent and also serves as the decode
// step itself.
func realityPublicKeyValid(pbk string) bool {
	if len(pbk) < 40 || len(pbk) > 46 {
		return false
	}
	padded := pbk
	if m := len(padded) % 4; m != 0 {
		padded += strings.Repeat("=", 4-m)
	}
	decoded, err := base64.URLEncoding.DecodeString(padded)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// realityShortIDValid checks sid is hex, even length, and at most 16
// characters (spec §3).
func realityShortIDValid(sid string) bool {
	if sid == "" {
		return true // short id is optional
	}
	if len(sid)%2 != 0 || len(sid) > 16 {
		return false
	}
	_, err := hex.DecodeString(sid)
	return err == nil
}

// isDomainShaped reports whether s looks like a DNS name rather than an
// IP literal: at least 4 characters, contains a dot, and does not parse
// as an IP address (spec §3 "For `reality` security, at least one of
// {SNI, virtual host} must resolve to a domain-shaped string").
func isDomainShaped(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if len(s) < 4 || !strings.Contains(s, ".") {
		return false
	}
	return net.ParseIP(s) == nil
}

// realityFingerprintAllowlist mirrors engine.py's allowed utls fingerprint
// set. Reality requires a fingerprint; "chrome" is the default.
var realityFingerprintAllowlist = map[string]bool{
	"chrome": true, "firefox": true, "edge": true, "safari": true,
	"360": true, "qq": true, "ios": true, "android": true,
	"random": true, "randomized": true,
}

const defaultRealityFingerprint = "chrome"
