package runtime

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/internal/domain/runtimeconfig"
	"sentinel/internal/shared/logger"
)

func TestWaitForPortSucceedsOnceListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	ok := waitForPort(context.Background(), "127.0.0.1", port, time.Second)
	assert.True(t, ok)
}

func TestWaitForPortTimesOutWhenNothingListens(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	ok := waitForPort(context.Background(), "127.0.0.1", port, 200*time.Millisecond)
	assert.False(t, ok)
}

func TestWriteConfigProducesPrefixedJSONFile(t *testing.T) {
	dir := t.TempDir()
	s := New(logger.NewLogger(), dir)

	cfg := runtimeconfig.Config{}
	path, err := s.writeConfig("run_", cfg)
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, path, "run_")
	assert.Contains(t, path, ".json")
}

func TestCapturedStderrAccumulatesWrites(t *testing.T) {
	var c capturedStderr
	_, _ = c.Write([]byte("part1 "))
	_, _ = c.Write([]byte("part2"))
	assert.Equal(t, "part1 part2", c.String())
}
