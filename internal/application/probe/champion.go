package probe

import (
	"context"
	"sort"

	"sentinel/internal/domain/descriptor"
)

const championCandidateCount = 5

// Champion re-probes the top survivors one at a time in champion mode to
// establish peak bandwidth (spec §4.7). The single-at-a-time discipline
// is intentional: bandwidth measurement must not compete with itself.
func (o *Orchestrator) Champion(ctx context.Context, survivors []descriptor.Survivor) ([]descriptor.Survivor, float64) {
	if len(survivors) == 0 {
		return survivors, 0
	}

	candidates := topCandidates(survivors, championCandidateCount)

	o.log.Info("champion stage starting", "candidates", len(candidates))

	var peak float64
	for _, c := range candidates {
		results := o.runBatch(ctx, []descriptor.Descriptor{c.Descriptor}, 0, true)
		if len(results) == 0 {
			continue
		}
		champ := results[0]
		o.log.Info("champion result", "server", champ.Descriptor.Server, "speed", champ.Measurement.SpeedMbps)

		for i := range survivors {
			if survivors[i].Descriptor.StrictIdentity() == champ.Descriptor.StrictIdentity() {
				survivors[i].Measurement = champ.Measurement
				break
			}
		}
		if champ.Measurement.SpeedMbps > peak {
			peak = champ.Measurement.SpeedMbps
		}
	}

	return survivors, peak
}

// topCandidates returns up to n survivors sorted by throughput
// descending, without mutating the input slice.
func topCandidates(survivors []descriptor.Survivor, n int) []descriptor.Survivor {
	sorted := make([]descriptor.Survivor, len(survivors))
	copy(sorted, survivors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Measurement.SpeedMbps > sorted[j].Measurement.SpeedMbps
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
