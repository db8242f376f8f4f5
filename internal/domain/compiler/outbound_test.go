package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransportObjectXHTTPMapsToHTTPUpgradeShape(t *testing.T) {
	obj := buildTransportObject("xhttp", "/api", "cdn.example.com", "")
	require.NotNil(t, obj)
	assert.Equal(t, "httpupgrade", obj.Type)
	assert.Equal(t, "cdn.example.com", obj.Host)
}

func TestBuildTransportObjectHTTPUpgradeHostIsScalar(t *testing.T) {
	obj := buildTransportObject("httpupgrade", "/", "cdn.example.com", "")
	require.NotNil(t, obj)
	assert.Equal(t, "httpupgrade", obj.Type)
	assert.Equal(t, "cdn.example.com", obj.Host)
}

func TestBuildTransportObjectHTTPHostIsSplitList(t *testing.T) {
	obj := buildTransportObject("h2", "/", "a.example.com, b.example.com", "")
	require.NotNil(t, obj)
	assert.Equal(t, "http", obj.Type)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, obj.Host)
}

func TestBuildTransportObjectDefaultsEmptyPathToSlash(t *testing.T) {
	for _, transport := range []string{"ws", "httpupgrade", "xhttp", "http", "h2"} {
		obj := buildTransportObject(transport, "", "", "")
		require.NotNil(t, obj, transport)
		assert.Equal(t, "/", obj.Path, transport)
	}
}

func TestBuildTransportObjectPreservesExplicitPath(t *testing.T) {
	obj := buildTransportObject("ws", "/ray", "", "")
	require.NotNil(t, obj)
	assert.Equal(t, "/ray", obj.Path)
}

func TestBuildTransportObjectGRPCFallsBackToPathForServiceName(t *testing.T) {
	obj := buildTransportObject("grpc", "fallback-service", "", "")
	require.NotNil(t, obj)
	assert.Equal(t, "fallback-service", obj.ServiceName)
}
