package runtimeconfig

import (
	"fmt"

	"sentinel/internal/domain/compiler"
	"sentinel/internal/domain/descriptor"
)

// Accepted pairs the zero-based position of a descriptor within the
// original input slice with the descriptor itself and the inbound port it
// was assigned in the built Config. The Runtime Supervisor and Probe Driver
// use this to reconcile ports back to descriptors (spec §4.2 "The caller
// reconciles by matching tags to original indices").
type Accepted struct {
	OriginalIndex int
	Descriptor    descriptor.Descriptor
	Port          int
}

// Build assembles descriptors into a single Config with one SOCKS inbound
// per accepted descriptor at 127.0.0.1:basePort+i (spec §4.2). Descriptors
// the Outbound Compiler rejects are skipped entirely — the returned Config
// may contain fewer inbounds than len(descriptors), and Accepted reports
// exactly which survived with their reassigned port.
func Build(descriptors []descriptor.Descriptor, basePort int) (Config, []Accepted) {
	cfg := Config{
		Log: logConfig{Level: "fatal", Disabled: false},
		DNS: dnsConfig{
			Servers:          []dnsServer{{Tag: dnsServerTag, Address: publicResolver, Detour: outboundDirect}},
			IndependentCache: true,
		},
		Route: routeConfig{Final: outboundBlock},
	}

	accepted := make([]Accepted, 0, len(descriptors))
	slot := 0
	for i, d := range descriptors {
		tag := fmt.Sprintf("proxy-%d", slot)
		out, ok := compiler.Compile(d, tag)
		if !ok {
			continue
		}

		port := basePort + slot
		inTag := fmt.Sprintf("in-%d", slot)

		cfg.Inbounds = append(cfg.Inbounds, inbound{
			Type: "socks", Tag: inTag, Listen: "127.0.0.1", ListenPort: port,
		})
		cfg.Outbounds = append(cfg.Outbounds, out)
		cfg.Route.Rules = append(cfg.Route.Rules, routeRule{
			Inbound: []string{inTag}, Outbound: tag,
		})

		accepted = append(accepted, Accepted{OriginalIndex: i, Descriptor: d, Port: port})
		slot++
	}

	cfg.Outbounds = append(cfg.Outbounds, compiler.Outbound{Type: outboundDirect, Tag: outboundDirect})
	cfg.Outbounds = append(cfg.Outbounds, compiler.Outbound{Type: outboundBlock, Tag: outboundBlock})

	return cfg, accepted
}
