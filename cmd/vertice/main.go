package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/stuarthighley/bsp"
	"github.com/stuarthighley/bsp/internal/archive"
	"github.com/stuarthighley/bsp/internal/batch"
	"github.com/stuarthighley/bsp/internal/config"
	"github.com/stuarthighley/bsp/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("vertice", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfgPath, _ := fs.GetString("config")

	cfg, err := config.Load(cfgPath, fs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	bsp.SetLogger(log.With("component", "bsp"))

	slog.Info("running vertice", "input", cfg.InputDir, "output", cfg.OutputDir, "format", cfg.Format, "workers", cfg.Workers)

	sources, err := archive.Discover(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.InputDir, err)
	}
	slog.Info("maps found", "count", len(sources))

	start := time.Now()
	res := batch.Run(ctx, sources, batch.Options{Workers: cfg.Workers, Decoding: cfg.DecodingPolicy()})
	if res.Canceled {
		slog.Warn("run canceled, writing partial report")
	}

	path, err := writeReport(cfg, report.New(start, res.Reports))
	if err != nil {
		return err
	}

	slog.Info("done",
		"report", path,
		"maps", len(res.Reports),
		"skipped", res.Skipped,
		"failed", len(res.Failures),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func writeReport(cfg config.Config, doc report.Document) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, report.FileName(doc.GeneratedAt, cfg.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	if err := report.Write(f, doc, cfg.Format); err != nil {
		f.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
