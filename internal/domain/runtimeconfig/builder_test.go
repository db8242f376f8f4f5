package runtimeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/internal/domain/descriptor"
)

func TestBuildSkipsRejectedDescriptors(t *testing.T) {
	descriptors := []descriptor.Descriptor{
		{Protocol: descriptor.ProtocolVLESS, Server: "host", Port: 443, UUID: "not-a-uuid"},
		{Protocol: descriptor.ProtocolTrojan, Server: "host2", Port: 443, Password: "pw"},
	}

	cfg, accepted := Build(descriptors, 10000)

	require.Len(t, accepted, 1)
	assert.Equal(t, 1, accepted[0].OriginalIndex)
	assert.Equal(t, 10000, accepted[0].Port)
	require.Len(t, cfg.Inbounds, 1)
	assert.Equal(t, "in-0", cfg.Inbounds[0].Tag)
	assert.Equal(t, 10000, cfg.Inbounds[0].ListenPort)
	// accepted outbounds plus direct+block sentinels
	assert.Len(t, cfg.Outbounds, 3)
}

func TestBuildEmptyInputProducesNoInbounds(t *testing.T) {
	cfg, accepted := Build(nil, 10000)
	assert.Empty(t, accepted)
	assert.Empty(t, cfg.Inbounds)
	assert.Len(t, cfg.Outbounds, 2) // direct + block only
}

func TestBuildAssignsSequentialPorts(t *testing.T) {
	descriptors := []descriptor.Descriptor{
		{Protocol: descriptor.ProtocolTrojan, Server: "a", Port: 1, Password: "pw"},
		{Protocol: descriptor.ProtocolTrojan, Server: "b", Port: 2, Password: "pw"},
	}
	_, accepted := Build(descriptors, 20000)
	require.Len(t, accepted, 2)
	assert.Equal(t, 20000, accepted[0].Port)
	assert.Equal(t, 20001, accepted[1].Port)
}

func TestBuildRouteRulesTargetProxyByTag(t *testing.T) {
	descriptors := []descriptor.Descriptor{
		{Protocol: descriptor.ProtocolTrojan, Server: "a", Port: 1, Password: "pw"},
	}
	cfg, _ := Build(descriptors, 10000)
	require.Len(t, cfg.Route.Rules, 1)
	assert.Equal(t, "proxy-0", cfg.Route.Rules[0].Outbound)
	assert.Equal(t, "block", cfg.Route.Final)
	assert.True(t, cfg.DNS.IndependentCache)
}
