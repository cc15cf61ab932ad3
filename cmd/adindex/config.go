package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/model"
)

// Config holds the settings of one CLI invocation.
// Values are layered: flags over ADINDEX_* environment variables over the
// config file over defaults.
type Config struct {
	Seed        int64  `mapstructure:"seed"`
	Repeats     int    `mapstructure:"repeats"`
	Sink        string `mapstructure:"sink"`
	Out         string `mapstructure:"out"`
	Codec       string `mapstructure:"codec"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
	CPUProfile  string `mapstructure:"cpuprofile"`
	MetricsAddr string `mapstructure:"metrics-addr"`
	Accelerate  bool   `mapstructure:"accelerate"`

	Input       string `mapstructure:"input"`
	URL         string `mapstructure:"url"`
	Prefix      string `mapstructure:"prefix"`
	Plan        string `mapstructure:"plan"`
	Mode        string `mapstructure:"mode"`
	Workers     int    `mapstructure:"workers"`
	Compression string `mapstructure:"compression"`
	Limit       int    `mapstructure:"limit"`

	MaxParallelCalls      int64 `mapstructure:"max-parallel-calls"`
	FrameMemoryLimitBytes int64 `mapstructure:"frame-memory-limit"`
	DispatchBytesPerSec   int64 `mapstructure:"dispatch-rate"`

	// Bounds is derived from the min-*/max-* settings that are present.
	Bounds model.Bounds `mapstructure:"-"`
}

var boundKeys = []struct {
	key string
	dim model.Dimension
	max bool
}{
	{"min-price", model.Price, false},
	{"max-price", model.Price, true},
	{"min-year", model.Year, false},
	{"max-year", model.Year, true},
	{"min-mileage", model.Mileage, false},
	{"max-mileage", model.Mileage, true},
}

func newFlagSet(cmd string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)

	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("codec", "go-json", "codec for rows and reports: json or go-json")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("cpuprofile", "", "write a CPU profile to this file")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	fs.Bool("accelerate", true, "use the accelerated filter kernel when available")

	switch cmd {
	case "bench", "compare":
		fs.Int64("seed", 42, "row generator seed")
		fs.Int("repeats", 1, "measurements per size; the median is reported")
		fs.String("sink", "", "report destination: directory or file://, s3://, minio:// URL")
		fs.String("out", "", "report name within the sink; empty prints to stdout")
	case "query":
		fs.String("input", "", "rows file (JSON array or JSON lines), local path or URL")
		fs.String("url", "", "look up a single ad by url")
		fs.String("prefix", "", "list ads whose url has this prefix")
		fs.String("plan", "scan", "filter plan: scan, indexed or parallel")
		fs.String("mode", "thread", "parallel mode: thread or isolated")
		fs.Int("workers", adindex.DefaultWorkers, "parallel workers")
		fs.String("compression", "none", "isolated frame compression: none, lz4 or zstd")
		fs.Int("limit", 0, "print at most this many records; 0 prints all")
		fs.Int64("max-parallel-calls", 0, "cap concurrent parallel filter calls")
		fs.Int64("frame-memory-limit", 0, "cap in-flight frame bytes of isolated workers")
		fs.Int64("dispatch-rate", 0, "cap frame bytes dispatched per second")
		for _, b := range boundKeys {
			fs.Int64(b.key, 0, "inclusive "+strings.ReplaceAll(b.key, "-", " ")+" bound")
		}
	}
	return fs
}

// loadConfig parses args for cmd and returns the merged configuration and
// the positional arguments.
func loadConfig(cmd string, args []string) (*Config, []string, error) {
	fs := newFlagSet(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, nil, err
	}

	v.SetEnvPrefix("ADINDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cmd == "query" {
		for _, b := range boundKeys {
			if !v.IsSet(b.key) {
				continue
			}
			if b.max {
				cfg.Bounds = cfg.Bounds.WithMax(b.dim, v.GetInt64(b.key))
			} else {
				cfg.Bounds = cfg.Bounds.WithMin(b.dim, v.GetInt64(b.key))
			}
		}
	}

	return cfg, fs.Args(), nil
}

func (c *Config) logger() (*adindex.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "":
		return adindex.NewTextLogger(level), nil
	case "json":
		return adindex.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.LogFormat)
	}
}
