package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"dla/internal/app"
	"dla/internal/core"
	"dla/internal/sims/dla"
	"dla/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("override %q is not key=value", kv)
		}
		out[parts[0]] = parts[1]
	}
	return out, nil
}

func main() {
	simName := flag.String("sim", "dla", "registered simulation to run")
	configPath := flag.String("config", "", "YAML file overriding the embedded defaults")
	iterations := flag.Int("iterations", 0, "attachments to grow (0 keeps the configured budget)")
	seed := flag.Int64("seed", 0, "seed for the run (0 keeps the configured seed)")
	csvPath := flag.String("csv", "", "write one CSV row per attachment to this file")
	configOut := flag.String("config-out", "", "write the effective configuration as YAML")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	frameEvery := flag.Int("frame-every", 100, "log a frame marker every N attachments (0 disables)")
	progressTPS := flag.Int("progress-tps", 2, "progress log lines per second")
	verbose := flag.Bool("v", false, "log every rejected and encircled walk")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, options{
		sim:         *simName,
		configPath:  *configPath,
		overrides:   overrides,
		iterations:  *iterations,
		seed:        *seed,
		csvPath:     *csvPath,
		configOut:   *configOut,
		metricsAddr: *metricsAddr,
		frameEvery:  *frameEvery,
		progressTPS: *progressTPS,
	}); err != nil {
		logger.Error("run failed", "err", err)
		if errors.Is(err, dla.ErrConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	sim         string
	configPath  string
	overrides   kvList
	iterations  int
	seed        int64
	csvPath     string
	configOut   string
	metricsAddr string
	frameEvery  int
	progressTPS int
}

func run(logger *slog.Logger, opts options) error {
	kv, err := opts.overrides.Map()
	if err != nil {
		return err
	}
	if opts.configPath != "" {
		kv["config"] = opts.configPath
	}
	if opts.seed != 0 {
		kv["seed"] = strconv.FormatInt(opts.seed, 10)
	}
	if opts.iterations > 0 {
		kv["iterations"] = strconv.Itoa(opts.iterations)
	}

	field, err := app.OpenField(opts.sim, kv)
	if err != nil {
		return err
	}
	field.SetLogger(logger)
	cfg := field.Config()
	if opts.configOut != "" {
		if err := cfg.WriteYAML(opts.configOut); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	if opts.metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(opts.metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	collector := telemetry.NewCollector()
	logger = logger.With("run_id", collector.RunID().String())
	logger.Info("starting run", "width", cfg.Width, "seed", cfg.Seed, "iterations", cfg.Params.Iterations)

	progress := core.NewFixedStep(opts.progressTPS)
	budget := cfg.Params.Iterations
	// Outcomes spawns before it yields, so an empty budget must not range it.
	if budget > 0 {
		for out := range field.Outcomes(0) {
			collector.Observe(out, field.Drift())
			metrics.Observe(out, field.AggregateSize(), field.Drift())
			if !out.Joined() {
				continue
			}
			if opts.frameEvery > 0 && out.Iteration%opts.frameEvery == 0 {
				logger.Info("frame", "count", out.Iteration, "aggregate", field.AggregateSize())
			} else if progress.ShouldStep() {
				logger.Info("progress", "count", out.Iteration, "walks", collector.Walks(), "drift", field.Drift())
			}
			if out.Iteration >= budget {
				break
			}
		}
	}

	if err := field.Err(); err != nil {
		return err
	}

	if opts.csvPath != "" {
		if err := writeCSV(opts.csvPath, collector); err != nil {
			return err
		}
	}
	logger.Info("run finished", "summary", collector.Summary())
	return nil
}

func writeCSV(path string, c *telemetry.Collector) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
