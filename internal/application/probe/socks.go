package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// socksClient builds an http.Client that tunnels every request through a
// local SOCKS5 listener with remote DNS resolution (spec §4.5 "opens a
// SOCKS5 session ... with remote DNS"), matching aiohttp_socks.ProxyConnector's
// rdns=True behavior from engine.py.
func socksClient(port int, timeout time.Duration) (*http.Client, error) {
	dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("127.0.0.1:%d", port), nil, proxy.Direct)
	if err != nil {
		return nil, err
	}

	contextDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 dialer does not support contexts")
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return contextDialer.DialContext(ctx, network, addr)
		},
	}

	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
