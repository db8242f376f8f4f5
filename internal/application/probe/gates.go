package probe

import "golang.org/x/sync/semaphore"

// Gates holds the three process-global counting semaphores spec §5
// mandates: batch (outstanding batches), ping (Phase-A requests), and
// speed (Phase-B requests). A single Gates instance is constructed once
// at startup and shared by every batch the orchestrator schedules.
type Gates struct {
	Batch *semaphore.Weighted
	Ping  *semaphore.Weighted
	Speed *semaphore.Weighted
}

const (
	DefaultBatchGateCap = 5
	DefaultPingGateCap  = 150
	DefaultSpeedGateCap = 5
)

// NewGates constructs the three gates at the given capacities. Pass
// DefaultBatchGateCap/DefaultPingGateCap/DefaultSpeedGateCap (spec §5)
// unless a deployment has a specific reason to override them.
func NewGates(batchCap, pingCap, speedCap int) *Gates {
	return &Gates{
		Batch: semaphore.NewWeighted(int64(batchCap)),
		Ping:  semaphore.NewWeighted(int64(pingCap)),
		Speed: semaphore.NewWeighted(int64(speedCap)),
	}
}
