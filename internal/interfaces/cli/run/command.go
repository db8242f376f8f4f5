// Package run implements the `sentinel run` command: load a descriptor
// file, drive one pass of the batch pipeline plus champion stage, and
// print the surviving descriptors. Descriptor ingestion (URI parsing,
// dedup, host-validity filtering) is an external collaborator (spec §6
// "Consumed (from Ingestion, C1-external)"); this command's JSON file
// input is only a stand-in surface for exercising the pipeline.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sentinel/internal/application/probe"
	"sentinel/internal/domain/descriptor"
	infraconfig "sentinel/internal/infrastructure/config"
	"sentinel/internal/infrastructure/geocache"
	"sentinel/internal/infrastructure/portalloc"
	"sentinel/internal/infrastructure/runtime"
	"sentinel/internal/shared/logger"
)

// NewCommand returns the `run` subcommand.
func NewCommand() *cobra.Command {
	var (
		configPath string
		inputPath  string
		champion   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one pass of the probe pipeline over a descriptor file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), configPath, inputPath, champion)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (optional)")
	cmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON array of descriptors (required)")
	cmd.Flags().BoolVar(&champion, "champion", true, "run the champion re-probe stage after the bulk pipeline")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func execute(ctx context.Context, configPath, inputPath string, runChampion bool) error {
	cfg, err := infraconfig.Load("", configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.NewLogger()

	descriptors, err := loadDescriptors(inputPath)
	if err != nil {
		return fmt.Errorf("load descriptors: %w", err)
	}
	log.Info("loaded descriptors", "count", len(descriptors))

	runtime.Binary = cfg.Runtime.Binary

	var geo geocache.Cache = geocache.NewMemory()
	if cfg.Redis.Host != "" {
		geo = geocache.NewRedis(newRedisClient(cfg), "geo:", hoursToDuration(cfg.Redis.TTLHours))
	}

	settings := probe.Settings{
		BatchSize:        cfg.Probe.BatchSize,
		MinSpeedMbps:     cfg.Probe.MinSpeedMbps,
		MaxLatencyMS:     cfg.Probe.MaxLatencyMS,
		SpeedtestURL:     cfg.Probe.SpeedtestURL,
		ChampionTestURL:  cfg.Probe.ChampionTestURL,
		ConnectivityURLs: cfg.Probe.ConnectivityURLs,
		UserAgent:        cfg.Probe.UserAgent,
	}

	gates := probe.NewGates(cfg.Gates.Batch, cfg.Gates.Ping, cfg.Gates.Speed)
	driver := probe.NewDriver(settings, gates, geo, log)
	ports := portalloc.New(portalloc.DefaultStart)
	orchestrator := probe.NewOrchestrator(settings, gates, driver, ports, cfg.Runtime.BaseDir, log)

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	survivors := orchestrator.ProcessAll(runCtx, descriptors)
	log.Info("bulk pipeline complete", "survivors", len(survivors))

	peak := 0.0
	if runChampion && len(survivors) > 0 {
		survivors, peak = orchestrator.Champion(runCtx, survivors)
		log.Info("champion stage complete", "peak_bandwidth", peak)
	}

	return printSurvivors(survivors, peak)
}

func loadDescriptors(path string) ([]descriptor.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var descriptors []descriptor.Descriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

func printSurvivors(survivors []descriptor.Survivor, peak float64) error {
	output := struct {
		Survivors     []descriptor.Survivor `json:"survivors"`
		PeakBandwidth float64                `json:"peak_bandwidth"`
	}{Survivors: survivors, PeakBandwidth: peak}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
