package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/phenixzain/portfolio-blog/internal/app"
	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/config"
	"github.com/phenixzain/portfolio-blog/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	search := fs.String("search", "", "case-insensitive title/description filter")
	tag := fs.String("tag", blog.AllTags, "exact tag filter; empty exports all tags")
	format := fs.String("format", app.FormatYAML, "output format (yaml, json)")
	out := fs.String("out", "-", "output file; - writes to stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("export starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := app.NewExporter(cfg, *format, log)
	if err != nil {
		logger.ErrorObj("failed to initialize exporter", "error", err)
		return err
	}

	fanout, err := app.NewPublishers(ctx, cfg.PublishersFile, log)
	if err != nil {
		logger.ErrorObj("failed to initialize publishers", "error", err)
		return err
	}
	defer fanout.Close()
	exporter.SetPublishers(fanout)

	if _, err := exporter.ExportFile(ctx, blog.Query{Search: *search, Tag: *tag}, *out); err != nil {
		return fmt.Errorf("export run: %w", err)
	}

	return nil
}
