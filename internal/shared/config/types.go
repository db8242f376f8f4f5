package config

// LoggerConfig controls the slog+tint console/json logger (AMBIENT
// STACK: logging).
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProbeConfig holds spec §6's probe-tunable table: batch size, speed/
// latency policy thresholds, and the fixed probe URLs.
type ProbeConfig struct {
	BatchSize        int      `mapstructure:"batch_size"`
	MinSpeedMbps     float64  `mapstructure:"min_speed"`
	MaxLatencyMS     int      `mapstructure:"max_latency"`
	SpeedtestURL     string   `mapstructure:"speedtest_url"`
	ChampionTestURL  string   `mapstructure:"champion_test_url"`
	ConnectivityURLs []string `mapstructure:"connectivity_urls"`
	UserAgent        string   `mapstructure:"user_agent"`
}

// RuntimeConfig locates the external tunnel-runtime binary and the
// directory it stages temp configs under (spec §6 "Filesystem surface").
type RuntimeConfig struct {
	Binary  string `mapstructure:"binary"`
	BaseDir string `mapstructure:"base_dir"`
}

// GatesConfig overrides the process-global concurrency caps (spec §5).
// Defaults match the spec exactly; these exist for load-testing and
// constrained environments, not for routine tuning.
type GatesConfig struct {
	Batch int `mapstructure:"batch"`
	Ping  int `mapstructure:"ping"`
	Speed int `mapstructure:"speed"`
}

// RedisConfig configures the optional geo-cache backend. Host empty
// means "use the in-memory cache" (DOMAIN STACK: geo cache).
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLHours int    `mapstructure:"ttl_hours"`
}
