// Package probe implements the probe driver, batch orchestrator, and
// champion stage (spec §4.5-4.7): everything downstream of a ready
// runtime. Grounded in _examples/original_source/core/engine.py's
// BatchEngine/Inspector classes, reshaped onto errgroup/semaphore
// goroutine fan-out in place of asyncio tasks.
package probe

import "time"

// Settings is the subset of spec §6's configuration table this package
// consumes, read once at startup by infrastructure/config.
type Settings struct {
	BatchSize        int
	MinSpeedMbps     float64
	MaxLatencyMS     int
	SpeedtestURL     string
	ChampionTestURL  string
	ConnectivityURLs []string
	UserAgent        string
}

// DefaultSettings mirrors engine.py's module-level defaults.
func DefaultSettings() Settings {
	return Settings{
		BatchSize:        100,
		MinSpeedMbps:     1.0,
		MaxLatencyMS:     5000,
		SpeedtestURL:     "https://speed.cloudflare.com/__down?bytes=5000000",
		ChampionTestURL:  "https://speed.cloudflare.com/__down?bytes=20000000",
		ConnectivityURLs: []string{"http://www.gstatic.com/generate_204", "http://cp.cloudflare.com/generate_204"},
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	}
}

const (
	championTransferBytes = 10 * 1024 * 1024
	normalTransferBytes   = 1 * 1024 * 1024
	chunkSize             = 64 * 1024

	batchHardTimeout  = 180 * time.Second
	pingStagger       = 20 * time.Millisecond
	pingTotalTimeout  = 8 * time.Second
	geoLookupTimeout  = 3 * time.Second
	normalDLTimeout   = 8 * time.Second
	championDLTimeout = 12 * time.Second
	dropByteFloor     = 50000

	geoTraceURL = "http://cp.cloudflare.com/cdn-cgi/trace"
)
