package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocksClientBuildsWithoutDialing(t *testing.T) {
	client, err := socksClient(19999, time.Second)
	require.NoError(t, err)
	assert.NotNil(t, client.Transport)
	assert.Equal(t, time.Second, client.Timeout)
}
