package probe

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sentinel/internal/domain/descriptor"
	"sentinel/internal/domain/runtimeconfig"
	"sentinel/internal/infrastructure/portalloc"
	"sentinel/internal/infrastructure/runtime"
	"sentinel/internal/shared/goroutine"
	"sentinel/internal/shared/logger"
)

// Orchestrator slices the input into batches, schedules them under the
// batch gate, and aggregates survivors (spec §4.6). It owns the port
// allocator and runtime supervisor factory shared by every batch.
type Orchestrator struct {
	settings Settings
	gates    *Gates
	driver   *Driver
	ports    *portalloc.Allocator
	baseDir  string
	log      logger.Interface
}

// NewOrchestrator wires an Orchestrator from its collaborators. baseDir
// is where per-batch runtime configs are staged (spec §6 "A data/
// directory for temporary configs").
func NewOrchestrator(settings Settings, gates *Gates, driver *Driver, ports *portalloc.Allocator, baseDir string, log logger.Interface) *Orchestrator {
	return &Orchestrator{settings: settings, gates: gates, driver: driver, ports: ports, baseDir: baseDir, log: log.Named("orchestrator")}
}

// ProcessAll runs every batch of descriptors and returns the union of
// survivors across all batches. A batch that fails — compile rejection
// of everything, spawn failure, readiness timeout, or hard timeout —
// contributes the empty set and never aborts the others.
func (o *Orchestrator) ProcessAll(ctx context.Context, descriptors []descriptor.Descriptor) []descriptor.Survivor {
	batchSize := o.settings.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	total := len(descriptors)
	numBatches := (total + batchSize - 1) / batchSize
	o.log.Info("starting batch pipeline", "descriptors", total, "batch_size", batchSize, "batches", numBatches)

	results := make([][]descriptor.Survivor, numBatches)
	eg, egCtx := errgroup.WithContext(ctx)

	for i := 0; i < numBatches; i++ {
		start := i * batchSize
		end := start + batchSize
		if end > total {
			end = total
		}
		batchNum := i + 1
		batch := descriptors[start:end]

		eg.Go(func() error {
			defer goroutine.Recover(o.log, "batch-dispatch")

			if err := o.gates.Batch.Acquire(egCtx, 1); err != nil {
				return nil
			}
			defer o.gates.Batch.Release(1)

			o.log.Info("batch starting", "batch", batchNum, "size", len(batch))
			survivors := o.runBatch(egCtx, batch, batchNum, false)
			o.log.Info("batch finished", "batch", batchNum, "alive", len(survivors), "total", len(batch))
			results[i] = survivors
			return nil
		})
	}
	_ = eg.Wait()

	var alive []descriptor.Survivor
	for _, r := range results {
		alive = append(alive, r...)
	}
	return alive
}

// runBatch runs one batch end-to-end: build config, validate, spawn,
// probe, teardown. Wrapped in the 180s hard timeout (spec §4.6); on
// timeout it returns the empty set and the Supervisor's own teardown
// path still runs via its deferred Stop.
func (o *Orchestrator) runBatch(ctx context.Context, batch []descriptor.Descriptor, batchNum int, isChampion bool) []descriptor.Survivor {
	batchCtx, cancel := context.WithTimeout(ctx, batchHardTimeout)
	defer cancel()

	resultCh := make(chan []descriptor.Survivor, 1)
	goroutine.SafeGo(o.log, "batch-body", func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- nil
				panic(r)
			}
		}()
		resultCh <- o.runBatchBody(batchCtx, batch, batchNum, isChampion)
	})

	select {
	case survivors := <-resultCh:
		return survivors
	case <-batchCtx.Done():
		o.log.Warn("hard batch timeout", "batch", batchNum)
		return nil
	}
}

func (o *Orchestrator) runBatchBody(ctx context.Context, batch []descriptor.Descriptor, batchNum int, isChampion bool) []descriptor.Survivor {
	basePort := o.ports.Reserve(len(batch))
	cfg, accepted := runtimeconfig.Build(batch, basePort)
	if len(accepted) == 0 {
		return nil
	}

	sup := runtime.New(o.log, o.baseDir)

	if ok, _ := sup.Validate(ctx, cfg); !ok {
		cfg, accepted = o.fallbackSingleEntry(ctx, sup, batch, basePort)
		if len(accepted) == 0 {
			return nil
		}
	}

	firstPort := accepted[0].Port
	handle, err := sup.Run(ctx, cfg, firstPort)
	if err != nil {
		o.log.Warn("runtime spawn/readiness failed", "batch", batchNum, "error", err)
		return nil
	}
	defer handle.Stop()

	survivors, aStats, bStats := o.driver.Run(ctx, accepted, isChampion)
	logPrefix := "B"
	if isChampion {
		logPrefix = "CHAMP"
	}
	o.log.Info(logPrefix+" ping summary", "batch", batchNum, "ok", aStats.OK, "timeout", aStats.Timeout, "high_latency", aStats.HighLatency, "error", aStats.Error)
	o.log.Info(logPrefix+" speed summary", "batch", batchNum, "ok", bStats.OK, "low_speed", bStats.LowSpeed, "drop", bStats.Drop, "error", bStats.Error)

	return survivors
}

// fallbackSingleEntry is the Runtime-reject recovery path (spec §7):
// when the whole batch config fails `check`, validate each descriptor's
// single-entry config individually and keep only the ones the runtime
// accepts alone.
func (o *Orchestrator) fallbackSingleEntry(ctx context.Context, sup *runtime.Supervisor, batch []descriptor.Descriptor, basePort int) (runtimeconfig.Config, []runtimeconfig.Accepted) {
	var survivors []descriptor.Descriptor
	for _, d := range batch {
		single, _ := runtimeconfig.Build([]descriptor.Descriptor{d}, basePort)
		if ok, _ := sup.Validate(ctx, single); ok {
			survivors = append(survivors, d)
		}
	}
	if len(survivors) == 0 {
		return runtimeconfig.Config{}, nil
	}
	return runtimeconfig.Build(survivors, basePort)
}
