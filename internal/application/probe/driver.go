package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sentinel/internal/domain/descriptor"
	"sentinel/internal/domain/runtimeconfig"
	"sentinel/internal/infrastructure/geocache"
	"sentinel/internal/shared/goroutine"
	"sentinel/internal/shared/logger"
)

// PhaseAStats and PhaseBStats are the aggregate counters the driver
// returns alongside survivors, for the two-line per-batch summary (spec
// §7 "Observability").
type PhaseAStats struct {
	OK          int
	Timeout     int
	HighLatency int
	Error       int
}

type PhaseBStats struct {
	OK       int
	LowSpeed int
	Drop     int
	Error    int
}

// Driver runs Phase A (latency) then Phase B (throughput) against a
// ready batch of inbounds (spec §4.5).
type Driver struct {
	settings Settings
	gates    *Gates
	geo      geocache.Cache
	log      logger.Interface
}

// NewDriver constructs a Driver sharing the process-wide gates and geo
// cache across every batch.
func NewDriver(settings Settings, gates *Gates, geo geocache.Cache, log logger.Interface) *Driver {
	return &Driver{settings: settings, gates: gates, geo: geo, log: log.Named("probe")}
}

type pingResult struct {
	status  string
	entry   runtimeconfig.Accepted
	latency int
}

// Run probes every entry in accepted, returning a copy of each survivor's
// descriptor annotated with latency/speed/country plus both phases'
// histograms. isChampion selects the Phase-B transfer budget (spec
// §4.5's mode flag).
func (d *Driver) Run(ctx context.Context, accepted []runtimeconfig.Accepted, isChampion bool) ([]descriptor.Survivor, PhaseAStats, PhaseBStats) {
	pingResults := d.runPhaseA(ctx, accepted)

	var aStats PhaseAStats
	var forSpeed []pingResult
	for _, r := range pingResults {
		switch r.status {
		case "ok":
			aStats.OK++
			forSpeed = append(forSpeed, r)
		case "timeout":
			aStats.Timeout++
		case "high_latency":
			aStats.HighLatency++
		default:
			aStats.Error++
		}
	}

	if len(forSpeed) == 0 {
		return nil, aStats, PhaseBStats{}
	}

	survivors, bStats := d.runPhaseB(ctx, forSpeed, isChampion)
	return survivors, aStats, bStats
}

func (d *Driver) runPhaseA(ctx context.Context, accepted []runtimeconfig.Accepted) []pingResult {
	results := make([]pingResult, len(accepted))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, entry := range accepted {
		i, entry := i, entry
		eg.Go(func() error {
			defer goroutine.Recover(d.log, "ping-task")
			results[i] = d.pingOne(egCtx, entry, time.Duration(i)*pingStagger)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func (d *Driver) pingOne(ctx context.Context, entry runtimeconfig.Accepted, delay time.Duration) pingResult {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return pingResult{status: "error", entry: entry}
		}
	}

	if err := d.gates.Ping.Acquire(ctx, 1); err != nil {
		return pingResult{status: "error", entry: entry}
	}
	defer d.gates.Ping.Release(1)

	client, err := socksClient(entry.Port, pingTotalTimeout)
	if err != nil {
		return pingResult{status: "error", entry: entry}
	}

	reqCtx, cancel := context.WithTimeout(ctx, pingTotalTimeout)
	defer cancel()

	target := d.settings.ConnectivityURLs[0]
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return pingResult{status: "error", entry: entry}
	}
	req.Header.Set("User-Agent", d.settings.UserAgent)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return pingResult{status: "timeout", entry: entry}
		}
		return pingResult{status: "error", entry: entry}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	elapsed := time.Since(start)
	switch resp.StatusCode {
	case 200, 204, 301, 302:
	default:
		return pingResult{status: "error", entry: entry}
	}

	latencyMS := int(elapsed.Milliseconds())
	if latencyMS > d.settings.MaxLatencyMS {
		return pingResult{status: "high_latency", entry: entry}
	}
	return pingResult{status: "ok", entry: entry, latency: latencyMS}
}

func (d *Driver) runPhaseB(ctx context.Context, candidates []pingResult, isChampion bool) ([]descriptor.Survivor, PhaseBStats) {
	survivors := make([]*descriptor.Survivor, len(candidates))
	statuses := make([]string, len(candidates))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, c := range candidates {
		i, c := i, c
		eg.Go(func() error {
			defer goroutine.Recover(d.log, "speed-task")
			s, status := d.speedOne(egCtx, c, isChampion)
			survivors[i] = s
			statuses[i] = status
			return nil
		})
	}
	_ = eg.Wait()

	var stats PhaseBStats
	var out []descriptor.Survivor
	for i, status := range statuses {
		switch status {
		case "ok":
			stats.OK++
			out = append(out, *survivors[i])
		case "low_speed":
			stats.LowSpeed++
		case "drop":
			stats.Drop++
		default:
			stats.Error++
		}
	}
	return out, stats
}

func (d *Driver) speedOne(ctx context.Context, c pingResult, isChampion bool) (*descriptor.Survivor, string) {
	if err := d.gates.Speed.Acquire(ctx, 1); err != nil {
		return nil, "error"
	}
	defer d.gates.Speed.Release(1)

	dlTimeout := normalDLTimeout
	targetBytes := int64(normalTransferBytes)
	url := d.settings.SpeedtestURL
	if isChampion {
		dlTimeout = championDLTimeout
		targetBytes = championTransferBytes
		url = d.settings.ChampionTestURL
	}

	client, err := socksClient(c.entry.Port, dlTimeout)
	if err != nil {
		return nil, "error"
	}

	reqCtx, cancel := context.WithTimeout(ctx, dlTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "error"
	}
	req.Header.Set("User-Agent", d.settings.UserAgent)

	start := time.Now()
	var total int64
	resp, err := client.Do(req)
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "error"
		}
		buf := make([]byte, chunkSize)
		for total < targetBytes {
			n, rerr := resp.Body.Read(buf)
			total += int64(n)
			if rerr != nil {
				break
			}
		}
	}

	elapsed := time.Since(start)
	if (err != nil || total < targetBytes) && total < dropByteFloor {
		return nil, "drop"
	}

	elapsedSec := elapsed.Seconds()
	if elapsedSec < 0.1 {
		elapsedSec = 0.1
	}
	speed := descriptor.ClampSpeed((float64(total) * 8) / (elapsedSec * 1_000_000))
	speed = float64(int(speed*10+0.5)) / 10

	if speed < d.settings.MinSpeedMbps {
		return nil, "low_speed"
	}

	country := d.lookupGeo(ctx, c.entry.Descriptor.Server, client)
	m := descriptor.Measurement{LatencyMS: c.latency, SpeedMbps: speed, Country: country, Alive: true}
	survivor := descriptor.Annotate(c.entry.Descriptor, m)
	return &survivor, "ok"
}

func (d *Driver) lookupGeo(ctx context.Context, host string, client *http.Client) (country string) {
	if cached, ok := d.geo.Get(ctx, host); ok {
		return cached
	}
	// Failed lookups are cached as UnknownCountry too, so a host is not
	// looked up again while its entry lives in the cache.
	defer func() { d.geo.Set(ctx, host, country) }()

	reqCtx, cancel := context.WithTimeout(ctx, geoLookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, geoTraceURL, nil)
	if err != nil {
		return descriptor.UnknownCountry
	}
	resp, err := client.Do(req)
	if err != nil {
		return descriptor.UnknownCountry
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil {
		return descriptor.UnknownCountry
	}

	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(line, "loc=") {
			country := strings.ToUpper(strings.TrimPrefix(line, "loc="))
			country = strings.TrimSpace(country)
			if country == "" {
				return descriptor.UnknownCountry
			}
			return country
		}
	}
	return descriptor.UnknownCountry
}
