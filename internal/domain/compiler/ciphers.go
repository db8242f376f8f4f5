package compiler

// shadowsocksCipherAllowlist is the closed set of AEAD and 2022-blake3
// methods accepted by the compiler (spec §4.1 "method ∈ closed cipher
// set (AEAD ciphers plus 2022-blake3 variants)"). Grounded verbatim on
// parser.py's SS_VALID_METHODS — intentionally narrower than the
// legacy stream-cipher set (cfb/ctr/rc4-md5), which this compiler
// rejects.
var shadowsocksCipherAllowlist = map[string]bool{
	"aes-128-gcm":                     true,
	"aes-192-gcm":                     true,
	"aes-256-gcm":                     true,
	"chacha20-ietf-poly1305":          true,
	"xchacha20-ietf-poly1305":         true,
	"2022-blake3-aes-128-gcm":         true,
	"2022-blake3-aes-256-gcm":         true,
	"2022-blake3-chacha20-poly1305":   true,
}

func isValidShadowsocksMethod(method string) bool {
	return shadowsocksCipherAllowlist[method]
}
