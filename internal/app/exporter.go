package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/config"
	"github.com/phenixzain/portfolio-blog/internal/logger"
	"github.com/phenixzain/portfolio-blog/pkg/publishers"
)

// Supported export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParseFormat normalizes an export format name. Empty selects YAML.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", name)
	}
}

// Export is the document written by the exporter.
type Export struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Username   string    `json:"username" yaml:"username"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`

	blog.Listing `yaml:",inline"`
}

// Exporter runs the listing pipeline once and writes the visible articles.
type Exporter struct {
	loader   *blog.ListLoader
	username string
	format   string
	fanout   *publishers.Fanout
	log      logger.Logger
	now      func() time.Time
}

// NewExporter builds an exporter that fetches through the configured API.
func NewExporter(cfg *config.Config, format string, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	client, err := NewAPIClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewExporterWithLister(client, cfg.Username, cfg.PerPage, format, log)
}

// NewExporterWithLister builds an exporter over an arbitrary article source.
func NewExporterWithLister(client blog.ArticleLister, username string, perPage int, format string, log logger.Logger) (*Exporter, error) {
	if client == nil {
		return nil, fmt.Errorf("article lister must not be nil")
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	log = logger.Ensure(log)
	return &Exporter{
		loader:   blog.NewListLoader(client, username, perPage, log),
		username: username,
		format:   f,
		log:      log,
		now:      time.Now,
	}, nil
}

// Export loads the author's articles, filters them by q and encodes the
// result to w. A failed load returns its message as the error.
func (e *Exporter) Export(ctx context.Context, q blog.Query, w io.Writer) (Export, error) {
	start := e.now()
	runID := uuid.NewString()
	e.log.InfoObj("export started", "export_meta", map[string]any{
		"run_id":   runID,
		"username": e.username,
		"search":   q.Search,
		"tag":      q.Tag,
		"format":   e.format,
	})

	listing := blog.BuildListing(e.loader.Load(ctx), q)
	if listing.Mode == blog.ListingError {
		e.log.ErrorObj("export failed", "export_meta", map[string]any{
			"run_id": runID,
			"error":  listing.Error,
		})
		return Export{}, fmt.Errorf("load articles: %s", listing.Error)
	}

	doc := Export{
		RunID:      runID,
		Username:   e.username,
		ExportedAt: start.UTC(),
		Listing:    listing,
	}
	if err := e.encode(w, doc); err != nil {
		return Export{}, err
	}

	e.log.InfoObj("export completed", "export_meta", map[string]any{
		"run_id":     runID,
		"mode":       listing.Mode.String(),
		"visible":    len(listing.Articles),
		"total":      listing.Total,
		"elapsed_ms": e.now().Sub(start).Milliseconds(),
	})
	return doc, nil
}

// SetPublishers announces every successful ExportFile run to fanout.
func (e *Exporter) SetPublishers(fanout *publishers.Fanout) { e.fanout = fanout }

// ExportFile writes the export to path, or to stdout when path is empty or
// "-", then announces it to the configured publishers.
func (e *Exporter) ExportFile(ctx context.Context, q blog.Query, path string) (Export, error) {
	doc, err := e.writeFile(ctx, q, path)
	if err != nil {
		return Export{}, err
	}
	if err := e.deliver(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func (e *Exporter) deliver(ctx context.Context, doc Export) error {
	if e.fanout.Size() == 0 {
		return nil
	}
	evt := publishers.NewEvent(doc.RunID, doc.Username, doc.Query.Search, doc.Query.Tag,
		doc.Mode.String(), doc.Total, doc.Articles, doc.ExportedAt)
	delivered, err := e.fanout.Publish(ctx, evt)
	meta := map[string]any{
		"run_id":     doc.RunID,
		"delivered":  delivered,
		"publishers": e.fanout.Size(),
	}
	if err != nil {
		meta["error"] = err.Error()
		e.log.ErrorObj("export delivery failed", "delivery_meta", meta)
		return fmt.Errorf("deliver export: %w", err)
	}
	e.log.InfoObj("export delivered", "delivery_meta", meta)
	return nil
}

func (e *Exporter) writeFile(ctx context.Context, q blog.Query, path string) (Export, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return e.Export(ctx, q, os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Export{}, fmt.Errorf("create export directory: %w", err)
		}
	}

	// the previous export stays in place until encoding succeeds
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return Export{}, fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	doc, err := e.Export(ctx, q, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close export file: %w", closeErr)
	}
	if err != nil {
		return Export{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Export{}, fmt.Errorf("write export file: %w", err)
	}
	return doc, nil
}

func (e *Exporter) encode(w io.Writer, doc Export) error {
	switch e.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json export: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
	}
	return nil
}
