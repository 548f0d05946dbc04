package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stuarthighley/bsp"
	"github.com/stuarthighley/bsp/internal/report"
)

// EnvPrefix prefixes environment overrides, e.g. VERTICE_INPUT_DIR.
const EnvPrefix = "VERTICE"

// Config holds all settings of a vertice run.
type Config struct {
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"`
	Workers   int    `mapstructure:"workers"`
	LogLevel  string `mapstructure:"log_level"`
	Decoding  string `mapstructure:"decoding"`
}

// Flag names, bound to the config keys above.
var flagKeys = map[string]string{
	"input":     "input_dir",
	"output":    "output_dir",
	"format":    "format",
	"workers":   "workers",
	"log-level": "log_level",
	"decoding":  "decoding",
}

// Default returns Config with the tool's defaults.
func Default() Config {
	return Config{
		InputDir:  "input",
		OutputDir: "output",
		Format:    report.FormatText,
		Workers:   1,
		LogLevel:  "info",
		Decoding:  string(bsp.DecodeDrop),
	}
}

// RegisterFlags adds the command line flags that override config values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a YAML config file")
	fs.String("input", d.InputDir, "directory holding .bsp and .pk3 files")
	fs.String("output", d.OutputDir, "directory the report is written to")
	fs.String("format", d.Format, "report format: text or yaml")
	fs.Int("workers", d.Workers, "maps processed in parallel")
	fs.String("log-level", d.LogLevel, "debug, info, warn or error")
	fs.String("decoding", d.Decoding, "entity text decoding: drop, replace or latin1")
}

// Load merges defaults, the optional YAML file at path, VERTICE_* environment
// variables and any flags set on fs, in increasing priority. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("decoding", d.Decoding)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if c.InputDir == "" {
		errs = append(errs, errors.New("input_dir is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is empty"))
	}
	if c.Format != report.FormatText && c.Format != report.FormatYAML {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := bsp.ParseDecoding(c.Decoding); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DecodingPolicy returns the parsed decoding. Call after Validate.
func (c Config) DecodingPolicy() bsp.Decoding {
	d, _ := bsp.ParseDecoding(c.Decoding)
	return d
}

// ParseLevel converts a log level name to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
