package main

import (
	"os"

	"github.com/spf13/cobra"

	"sentinel/internal/interfaces/cli/run"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "sentinel",
		Short:   "Sentinel - proxy endpoint probing pipeline",
		Long:    `Sentinel compiles proxy descriptors into tunnel-runtime configs, supervises the runtime, and probes the resulting inbounds for latency, throughput, and geography.`,
		Version: version,
	}

	rootCmd.Flags().BoolP("version", "v", false, "version for sentinel")

	rootCmd.AddCommand(
		run.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
