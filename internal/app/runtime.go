// Package app wires configuration, the article API client and the loaders
// into the reader and exporter runtimes.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/phenixzain/portfolio-blog/internal/config"
	"github.com/phenixzain/portfolio-blog/internal/logger"
	"github.com/phenixzain/portfolio-blog/pkg/devto"
	"github.com/phenixzain/portfolio-blog/pkg/httpclient"
	"github.com/phenixzain/portfolio-blog/pkg/publishers"
)

// NewAPIClient builds the article API client over the resty transport.
func NewAPIClient(cfg *config.Config, log logger.Logger) (*devto.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	client, err := devto.NewClient(transport, cfg.APIBase)
	if err != nil {
		return nil, fmt.Errorf("build article client: %w", err)
	}

	log.InfoObj("article client ready", "client_meta", map[string]any{
		"base_url":    client.BaseURL(),
		"username":    cfg.Username,
		"per_page":    cfg.PerPage,
		"timeout":     cfg.HTTPTimeout.String(),
		"user_agent":  cfg.UserAgent,
		"body_policy": cfg.BodyPolicy,
	})
	return client, nil
}

// NewPublishers builds the export sinks listed in path. An empty path
// yields an empty fanout.
func NewPublishers(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	log = logger.Ensure(log)
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, cfg := range enabled {
		summaries = append(summaries, map[string]string{"id": cfg.ID, "type": cfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}
