package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatesEnforceCapacity(t *testing.T) {
	g := NewGates(2, 2, 1)

	ctx := context.Background()
	require := assert.New(t)

	require.NoError(g.Speed.Acquire(ctx, 1))
	acquired := g.Speed.TryAcquire(1)
	require.False(acquired, "speed gate cap is 1, second acquire must fail")
	g.Speed.Release(1)

	require.True(g.Speed.TryAcquire(1))
	g.Speed.Release(1)
}
