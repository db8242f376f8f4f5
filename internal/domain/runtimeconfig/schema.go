// Package runtimeconfig implements the Batch Config Builder (C3):
// assembling N descriptors into one runtime configuration with N local
// SOCKS inbounds and routing rules (spec §4.2).
package runtimeconfig

import "sentinel/internal/domain/compiler"

// Config is the full JSON document handed to the external tunnel runtime
// via `runtime check -c <file>` / `runtime run -c <file>` (spec §6).
type Config struct {
	Log        logConfig           `json:"log"`
	DNS        dnsConfig           `json:"dns"`
	Inbounds   []inbound           `json:"inbounds"`
	Outbounds  []compiler.Outbound `json:"outbounds"`
	Route      routeConfig         `json:"route"`
}

type logConfig struct {
	Level    string `json:"level"`
	Disabled bool   `json:"disabled"`
}

type dnsServer struct {
	Tag     string `json:"tag"`
	Address string `json:"address"`
	Detour  string `json:"detour,omitempty"`
}

type dnsConfig struct {
	Servers          []dnsServer `json:"servers"`
	IndependentCache bool        `json:"independent_cache"`
}

type inbound struct {
	Type       string `json:"type"`
	Tag        string `json:"tag"`
	Listen     string `json:"listen"`
	ListenPort int    `json:"listen_port"`
}

type routeRule struct {
	Inbound  []string `json:"inbound,omitempty"`
	Outbound string   `json:"outbound"`
}

type routeConfig struct {
	Rules []routeRule `json:"rules"`
	Final string      `json:"final"`
}

const (
	outboundDirect = "direct"
	outboundBlock  = "block"
	dnsServerTag   = "dns-direct"
	publicResolver = "udp://8.8.8.8"
)
