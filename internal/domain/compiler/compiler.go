// Package compiler implements the Outbound Compiler (C2): a pure
// function translating one Descriptor into the external tunnel runtime's
// outbound-object schema, rejecting malformed input by returning ok=false
// rather than raising (spec §4.1).
package compiler

import (
	"github.com/google/uuid"

	"sentinel/internal/domain/descriptor"
)

// Compile translates d into an Outbound tagged tag. It returns
// (Outbound{}, false) on any invariant violation from spec §3/§4.1 — the
// compiler never panics and never returns an error type, since a
// compile-reject (spec §7) is an expected, silently-dropped outcome, not
// a failure path.
func Compile(d descriptor.Descriptor, tag string) (Outbound, bool) {
	out := Outbound{
		Type:   string(d.Protocol),
		Tag:    tag,
		Server: d.Server,
		Port:   d.Port,
	}

	switch d.Protocol {
	case descriptor.ProtocolVLESS:
		if !isCanonicalUUID(d.UUID) {
			return Outbound{}, false
		}
		out.UUID = d.UUID
		out.Flow = d.Flow
		out.PacketEncoding = "xudp"
		out.Transport = buildTransportObject(string(d.Transport), d.Path, d.Host, d.ServiceName)

	case descriptor.ProtocolVMess:
		if !isCanonicalUUID(d.UUID) {
			return Outbound{}, false
		}
		out.UUID = d.UUID
		out.AlterID = d.AlterID
		out.Security = "auto"
		out.Transport = buildTransportObject(string(d.Transport), d.Path, d.Host, d.ServiceName)

	case descriptor.ProtocolTrojan:
		if d.Password == "" {
			return Outbound{}, false
		}
		out.Password = d.Password
		out.Transport = buildTransportObject(string(d.Transport), d.Path, d.Host, d.ServiceName)

	case descriptor.ProtocolShadowsocks:
		if d.Password == "" || !isValidShadowsocksMethod(d.Method) {
			return Outbound{}, false
		}
		out.Password = d.Password
		out.Method = d.Method
		out.Transport = buildTransportObject(string(d.Transport), d.Path, d.Host, d.ServiceName)

	case descriptor.ProtocolHysteria2:
		if d.Password == "" {
			return Outbound{}, false
		}
		out.Password = d.Password
		out.Obfs = d.Obfs
		out.ObfsPassword = d.ObfsPassword
		// hysteria2 always carries its own TLS block regardless of the
		// descriptor's declared security mode (engine.py parity).
		tls, ok := buildTLSObject(withTLSRequired(d))
		if !ok {
			return Outbound{}, false
		}
		out.TLS = tls
		return out, true

	default:
		return Outbound{}, false
	}

	if d.Security.RequiresTLS() {
		tls, ok := buildTLSObject(d)
		if !ok {
			return Outbound{}, false
		}
		out.TLS = tls
	}

	return out, true
}

// withTLSRequired returns a copy of d with Security forced to at least
// tls, for protocols (hysteria2) whose wire format always carries TLS.
func withTLSRequired(d descriptor.Descriptor) descriptor.Descriptor {
	if d.Security.RequiresTLS() {
		return d
	}
	d.Security = descriptor.SecurityTLS
	return d
}

func isCanonicalUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
