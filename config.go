package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml"
)

type Config struct {
	UID                 string
	PatternFile         string
	OutputDir           string
	Threads             int
	MaxBackshiftDays    int
	SpeedSampleBlock    int
	SpeedDisplaySeconds int

	// KeyEntropy is mixed into seed derivation. Empty means fingerprints are
	// reproducible from (uid, creation time) alone; set a secret here to make
	// generated keys non-derivable from their public parameters.
	KeyEntropy string

	EncryptExports bool
	StatsJSONPath  string
	LogLevel       string
	LogFile        string
}

func defaultConfig() Config {
	return Config{
		UID:                 defaultUID,
		PatternFile:         defaultPatternFile,
		OutputDir:           defaultOutputDir,
		Threads:             runtime.NumCPU(),
		MaxBackshiftDays:    defaultMaxBackshiftDays,
		SpeedSampleBlock:    defaultSpeedSampleBlock,
		SpeedDisplaySeconds: defaultSpeedDisplaySeconds,
		LogLevel:            "info",
	}
}

// fileConfig mirrors the TOML config file. Zero values mean "not set"; the
// merge keeps the default for those fields.
type fileConfig struct {
	UID                 string `toml:"uid"`
	PatternFile         string `toml:"pattern_file"`
	OutputDir           string `toml:"output_dir"`
	Threads             int    `toml:"threads"`
	MaxBackshiftDays    int    `toml:"max_backshift_days"`
	SpeedSampleBlock    int    `toml:"speed_sample_block"`
	SpeedDisplaySeconds int    `toml:"speed_display_seconds"`
	KeyEntropy          string `toml:"key_entropy"`
	EncryptExports      bool   `toml:"encrypt_exports"`
	StatsJSONPath       string `toml:"stats_json"`
	LogLevel            string `toml:"log_level"`
	LogFile             string `toml:"log_file"`
}

// loadConfig merges the config file at path over the defaults. An empty path
// falls back to defaultConfigPath, which is allowed to be absent; an
// explicitly given path is not.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyFileConfig(&cfg, fc)
	logger.Debug("loaded config file", "path", path)
	return cfg, nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.UID != "" {
		cfg.UID = fc.UID
	}
	if fc.PatternFile != "" {
		cfg.PatternFile = fc.PatternFile
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.Threads > 0 {
		cfg.Threads = fc.Threads
	}
	if fc.MaxBackshiftDays > 0 {
		cfg.MaxBackshiftDays = fc.MaxBackshiftDays
	}
	if fc.SpeedSampleBlock > 0 {
		cfg.SpeedSampleBlock = fc.SpeedSampleBlock
	}
	if fc.SpeedDisplaySeconds > 0 {
		cfg.SpeedDisplaySeconds = fc.SpeedDisplaySeconds
	}
	if fc.KeyEntropy != "" {
		cfg.KeyEntropy = fc.KeyEntropy
	}
	if fc.EncryptExports {
		cfg.EncryptExports = true
	}
	if fc.StatsJSONPath != "" {
		cfg.StatsJSONPath = fc.StatsJSONPath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
}

// flagOverrides carries command-line values; zero values leave the config
// untouched. Flags win over the config file.
type flagOverrides struct {
	uid              string
	patternFile      string
	outputDir        string
	threads          int
	maxBackshiftDays int
	encrypt          bool
	statsJSONPath    string
	logLevel         string
	logFile          string
}

func applyOverrides(cfg *Config, o flagOverrides) {
	if o.uid != "" {
		cfg.UID = o.uid
	}
	if o.patternFile != "" {
		cfg.PatternFile = o.patternFile
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.threads > 0 {
		cfg.Threads = o.threads
	}
	if o.maxBackshiftDays > 0 {
		cfg.MaxBackshiftDays = o.maxBackshiftDays
	}
	if o.encrypt {
		cfg.EncryptExports = true
	}
	if o.statsJSONPath != "" {
		cfg.StatsJSONPath = o.statsJSONPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.UID) == "" {
		return fmt.Errorf("uid must not be empty")
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.MaxBackshiftDays < 0 {
		return fmt.Errorf("max_backshift_days must not be negative, got %d", cfg.MaxBackshiftDays)
	}
	if cfg.SpeedSampleBlock <= 0 {
		cfg.SpeedSampleBlock = defaultSpeedSampleBlock
	}
	if cfg.SpeedDisplaySeconds <= 0 {
		cfg.SpeedDisplaySeconds = defaultSpeedDisplaySeconds
	}
	if _, ok := parseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return nil
}
