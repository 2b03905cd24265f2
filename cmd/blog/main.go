package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/phenixzain/portfolio-blog/internal/app"
	"github.com/phenixzain/portfolio-blog/internal/config"
	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "blog start failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("blog", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	article := fs.String("article", "", "open this article id instead of the listing")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// the terminal belongs to the reader; logs go to log_file or nowhere
	log, err := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: io.Discard})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("blog starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader, err := app.NewReader(ctx, cfg, log, app.ReaderOptions{
		Article:        domain.ArticleID(*article),
		ProgramOptions: []tea.ProgramOption{tea.WithAltScreen()},
	})
	if err != nil {
		logger.ErrorObj("failed to initialize reader", "error", err)
		return err
	}

	if err := reader.Run(); err != nil {
		return fmt.Errorf("reader run: %w", err)
	}

	return nil
}
