package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seoscope/seoscope/pkg/scoring"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:seoscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Analysis history database configuration"`

	Cache struct {
		TTL        time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=15m,description=Cached analysis lifetime"`
		MaxEntries int           `yaml:"max_entries" json:"max_entries" jsonschema:"default=1000,description=Maximum cached analyses"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Analysis cache configuration"`

	Analysis AnalysisConfig `yaml:"analysis" json:"analysis" jsonschema:"description=Analysis pipeline configuration"`

	Fetch struct {
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Page fetch timeout for analyze-by-URL"`
	} `yaml:"fetch" json:"fetch" jsonschema:"description=Page fetching configuration"`
}

// AnalysisConfig holds analysis pipeline settings. Weights and thresholds
// default to the documented scoring contract when omitted.
type AnalysisConfig struct {
	DebounceInterval time.Duration      `yaml:"debounce_interval" json:"debounce_interval" jsonschema:"default=2s,description=Quiet period before a draft analysis runs"`
	ReadingSpeed     int                `yaml:"reading_speed" json:"reading_speed" jsonschema:"default=225,description=Reading speed in words per minute"`
	HistoryLimit     int                `yaml:"history_limit" json:"history_limit" jsonschema:"default=50,description=Maximum history entries returned per article"`
	Weights          scoring.Weights    `yaml:"weights" json:"weights" jsonschema:"description=Sub-score weights; must sum to the category budgets"`
	Thresholds       scoring.Thresholds `yaml:"thresholds" json:"thresholds" jsonschema:"description=Scoring bands for density and metadata lengths"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:seoscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 1000
	}

	if cfg.Analysis.DebounceInterval == 0 {
		cfg.Analysis.DebounceInterval = 2 * time.Second
	}
	if cfg.Analysis.ReadingSpeed == 0 {
		cfg.Analysis.ReadingSpeed = 225
	}
	if cfg.Analysis.HistoryLimit == 0 {
		cfg.Analysis.HistoryLimit = 50
	}
	if cfg.Analysis.Weights == (scoring.Weights{}) {
		cfg.Analysis.Weights = scoring.DefaultWeights()
	}
	if cfg.Analysis.Thresholds == (scoring.Thresholds{}) {
		cfg.Analysis.Thresholds = scoring.DefaultThresholds()
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if !cfg.Analysis.Weights.Validate() {
		return fmt.Errorf("analysis.weights must sum to the category budgets (%v/%v/%v/%v)",
			scoring.BudgetContentQuality, scoring.BudgetKeywordOptimization,
			scoring.BudgetTechnicalSEO, scoring.BudgetUserExperience)
	}

	t := cfg.Analysis.Thresholds
	if t.DensityMin <= 0 || t.DensityMax <= t.DensityMin {
		return fmt.Errorf("analysis.thresholds density band is invalid")
	}
	if t.TitleMinLen <= 0 || t.TitleMaxLen <= t.TitleMinLen {
		return fmt.Errorf("analysis.thresholds title band is invalid")
	}
	if t.MetaMinLen <= 0 || t.MetaMaxLen <= t.MetaMinLen {
		return fmt.Errorf("analysis.thresholds meta band is invalid")
	}
	if t.TargetWordCount <= 0 {
		return fmt.Errorf("analysis.thresholds target_word_count must be positive")
	}
	if t.WordsPerImageMin <= 0 || t.WordsPerImageMax <= t.WordsPerImageMin {
		return fmt.Errorf("analysis.thresholds words-per-image band is invalid")
	}
	if t.ProximityWindow <= 0 {
		return fmt.Errorf("analysis.thresholds proximity_window must be positive")
	}

	if cfg.Analysis.ReadingSpeed < 0 {
		return fmt.Errorf("analysis.reading_speed must be non-negative")
	}
	if cfg.Analysis.DebounceInterval < 100*time.Millisecond {
		return fmt.Errorf("analysis.debounce_interval must be at least 100ms")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetAnalysisConfig returns analysis pipeline configuration
func (c *Config) GetAnalysisConfig() AnalysisConfig {
	return c.Analysis
}
