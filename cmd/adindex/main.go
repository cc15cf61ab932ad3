// Command adindex benchmarks and queries the ad index.
//
// Usage:
//
//	adindex bench SIZE... [--repeats N] [--sink DIR|URL --out NAME]
//	adindex compare SIZE... [--repeats N] [--sink DIR|URL --out NAME]
//	adindex query --input rows.json [--min-price N] [--max-year N] ...
//	              [--plan scan|indexed|parallel] [--mode thread|isolated]
//	              [--url U] [--prefix P]
//
// Every flag can also be set as ADINDEX_<FLAG> (dashes become underscores)
// or in a config file passed with --config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/bench"
	"github.com/hupe1980/adindex/blobstore"
	_ "github.com/hupe1980/adindex/blobstore/minio"
	_ "github.com/hupe1980/adindex/blobstore/s3"
	"github.com/hupe1980/adindex/codec"
	"github.com/hupe1980/adindex/metrics/prommetrics"
)

const usage = `usage: adindex <command> [flags]

commands:
  bench SIZE...     build and query synthetic batches, emit a report
  compare SIZE...   like bench, plus a naive scan baseline
  query             load rows and run lookups, range filters and parallel filters
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "bench", "compare", "query":
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "adindex: unknown command %q\n\n%s", cmd, usage)
		return 1
	}

	cfg, rest, err := loadConfig(cmd, args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "adindex %s: %v\n", cmd, err)
		return 1
	}

	if err := execute(ctx, cmd, cfg, rest, stdout); err != nil {
		fmt.Fprintf(stderr, "adindex %s: %v\n", cmd, err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, cmd string, cfg *Config, rest []string, stdout io.Writer) (err error) {
	logger, err := cfg.logger()
	if err != nil {
		return err
	}

	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.Codec)
	}

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("cpuprofile: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("cpuprofile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	opts := []adindex.Option{
		adindex.WithLogger(logger),
		adindex.WithAcceleration(cfg.Accelerate),
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		mc, err := prommetrics.New(reg, "adindex")
		if err != nil {
			return err
		}
		opts = append(opts, adindex.WithMetricsCollector(mc))

		shutdown := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer shutdown()
	}

	switch cmd {
	case "bench", "compare":
		sizes, err := parseSizes(rest)
		if err != nil {
			return err
		}
		return runBench(ctx, cmd, cfg, sizes, opts, logger, c, stdout)
	default:
		return runQuery(ctx, cfg, opts, logger, c, stdout)
	}
}

func parseSizes(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one SIZE is required")
	}

	sizes := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", a, bench.ErrInvalidSize)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func runBench(ctx context.Context, cmd string, cfg *Config, sizes []int, opts []adindex.Option, logger *adindex.Logger, c codec.Codec, stdout io.Writer) error {
	bc := bench.Config{
		Sizes:        sizes,
		Seed:         cfg.Seed,
		Repeats:      cfg.Repeats,
		IndexOptions: opts,
		Logger:       logger,
	}

	var (
		report any
		err    error
	)
	if cmd == "compare" {
		report, err = bench.RunCompare(ctx, bc)
	} else {
		report, err = bench.Run(ctx, bc)
	}
	if err != nil {
		return err
	}

	if cfg.Out == "" {
		return writeStdout(stdout, c, report)
	}

	sink := cfg.Sink
	if sink == "" {
		sink = "."
	}
	store, err := blobstore.Open(ctx, sink)
	if err != nil {
		return err
	}
	if err := bench.WriteReport(ctx, store, cfg.Out, c, report); err != nil {
		return err
	}
	logger.InfoContext(ctx, "report written", "sink", sink, "name", cfg.Out)
	return nil
}

func writeStdout(w io.Writer, c codec.Codec, v any) error {
	data, err := c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *adindex.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
