package compiler

import "strings"

// Outbound is the compiled runtime-schema representation of one upstream
// proxy (spec §4.1). Field names follow the external tunnel runtime's
// sing-box-compatible outbound object; json tags are used only when the
// Batch Config Builder (C3) marshals the full runtime configuration.
type Outbound struct {
	Type   string `json:"type"`
	Tag    string `json:"tag"`
	Server string `json:"server,omitempty"`
	Port   int    `json:"server_port,omitempty"`

	UUID           string `json:"uuid,omitempty"`
	Password       string `json:"password,omitempty"`
	Method         string `json:"method,omitempty"`
	Flow           string `json:"flow,omitempty"`
	AlterID        int    `json:"alter_id,omitempty"`
	Security       string `json:"security,omitempty"` // vmess cipher, "auto" default
	PacketEncoding string `json:"packet_encoding,omitempty"`

	Obfs         string `json:"obfs,omitempty"`
	ObfsPassword string `json:"obfs_password,omitempty"`

	Transport *transportObject `json:"transport,omitempty"`
	TLS       *tlsObject       `json:"tls,omitempty"`
}

type transportObject struct {
	Type        string            `json:"type"`
	Path        string            `json:"path,omitempty"`
	Host        any               `json:"host,omitempty"`
	ServiceName string            `json:"service_name,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// buildTransportObject compiles the transport layer, appended whenever
// transport type != tcp (spec §4.1 "Transport layer"). Shapes follow
// engine.py's per-type branches: ws carries its host in a Host header,
// httpupgrade/xhttp (a single runtime transport type) carry host as a
// scalar, and http/h2 carry host as a comma-split list. Every web
// transport defaults an empty path to "/".
func buildTransportObject(transport string, path, host, serviceName string) *transportObject {
	switch transport {
	case "", "tcp":
		return nil
	case "quic":
		return &transportObject{Type: "quic"}
	case "ws":
		obj := &transportObject{Type: "ws", Path: defaultPath(path)}
		if host != "" {
			obj.Headers = map[string]string{"Host": host}
		}
		return obj
	case "grpc":
		svc := serviceName
		if svc == "" {
			svc = path
		}
		return &transportObject{Type: "grpc", ServiceName: svc}
	case "httpupgrade", "xhttp":
		obj := &transportObject{Type: "httpupgrade", Path: defaultPath(path)}
		if host != "" {
			obj.Host = host
		}
		return obj
	case "http", "h2":
		obj := &transportObject{Type: "http", Path: defaultPath(path)}
		if host != "" {
			obj.Host = splitCommaList(host)
		}
		return obj
	default:
		return nil
	}
}

func defaultPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
