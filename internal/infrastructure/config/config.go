package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "sentinel/internal/shared/config"
)

// Config is the top-level configuration, read once at startup (spec §6
// "Configuration ... read once at startup, all keys optional with
// defaults as stated"). The only fatal path in the whole pipeline is
// this load (spec §7 "Propagation policy").
type Config struct {
	Logger  sharedConfig.LoggerConfig  `mapstructure:"logger"`
	Probe   sharedConfig.ProbeConfig   `mapstructure:"probe"`
	Runtime sharedConfig.RuntimeConfig `mapstructure:"runtime"`
	Gates   sharedConfig.GatesConfig   `mapstructure:"gates"`
	Redis   sharedConfig.RedisConfig   `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from an optional config file plus environment
// variables (prefix SENTINEL_, e.g. SENTINEL_PROBE_MIN_SPEED). A missing
// config file is not an error — defaults and env vars still apply.
func Load(env string, configPath ...string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if len(configPath) > 0 && configPath[0] != "" {
		viper.SetConfigFile(configPath[0])
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("../configs")
		viper.AddConfigPath("../../configs")
	}

	viper.SetEnvPrefix("SENTINEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("logger.level", env)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the previously loaded configuration, or nil if Load has
// not run yet.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	viper.SetDefault("probe.batch_size", 100)
	viper.SetDefault("probe.min_speed", 1.0)
	viper.SetDefault("probe.max_latency", 5000)
	viper.SetDefault("probe.speedtest_url", "https://speed.cloudflare.com/__down?bytes=5000000")
	viper.SetDefault("probe.champion_test_url", "https://speed.cloudflare.com/__down?bytes=20000000")
	viper.SetDefault("probe.connectivity_urls", []string{"http://www.gstatic.com/generate_204", "http://cp.cloudflare.com/generate_204"})
	viper.SetDefault("probe.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")

	viper.SetDefault("runtime.binary", "sing-box")
	viper.SetDefault("runtime.base_dir", "./data")

	viper.SetDefault("gates.batch", 5)
	viper.SetDefault("gates.ping", 150)
	viper.SetDefault("gates.speed", 5)

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl_hours", 24)
}
