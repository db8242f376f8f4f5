package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sentinel/internal/domain/descriptor"
)

func survivorWithSpeed(server string, speed float64) descriptor.Survivor {
	return descriptor.Survivor{
		Descriptor:  descriptor.Descriptor{Server: server, Port: 443},
		Measurement: descriptor.Measurement{SpeedMbps: speed, Alive: true},
	}
}

func TestTopCandidatesSortsDescendingAndCaps(t *testing.T) {
	survivors := []descriptor.Survivor{
		survivorWithSpeed("a", 10),
		survivorWithSpeed("b", 50),
		survivorWithSpeed("c", 30),
		survivorWithSpeed("d", 5),
		survivorWithSpeed("e", 40),
		survivorWithSpeed("f", 20),
	}

	top := topCandidates(survivors, 5)
	assert.Len(t, top, 5)
	assert.Equal(t, "b", top[0].Descriptor.Server)
	assert.Equal(t, "e", top[1].Descriptor.Server)
	assert.Equal(t, "c", top[2].Descriptor.Server)
	assert.Equal(t, "f", top[3].Descriptor.Server)
	assert.Equal(t, "a", top[4].Descriptor.Server)
}

func TestTopCandidatesDoesNotMutateInput(t *testing.T) {
	survivors := []descriptor.Survivor{
		survivorWithSpeed("a", 10),
		survivorWithSpeed("b", 50),
	}
	_ = topCandidates(survivors, 1)
	assert.Equal(t, "a", survivors[0].Descriptor.Server)
}

func TestTopCandidatesHandlesFewerThanN(t *testing.T) {
	survivors := []descriptor.Survivor{survivorWithSpeed("a", 10)}
	top := topCandidates(survivors, 5)
	assert.Len(t, top, 1)
}
