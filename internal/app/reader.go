package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/config"
	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/logger"
	"github.com/phenixzain/portfolio-blog/internal/markup"
	"github.com/phenixzain/portfolio-blog/internal/tui"
)

// ReaderOptions holds per-run choices that are not configuration.
type ReaderOptions struct {
	// Article opens the detail screen for this id on start.
	Article domain.ArticleID
	// ProgramOptions are passed through to tea.NewProgram.
	ProgramOptions []tea.ProgramOption
}

// Reader is the interactive blog runtime.
type Reader struct {
	cfg   *config.Config
	model tui.Model
	opts  []tea.ProgramOption
	log   logger.Logger
}

// NewReader builds the reader from cfg. Fetches started by the reader are
// bounded by ctx.
func NewReader(ctx context.Context, cfg *config.Config, log logger.Logger, opts ReaderOptions) (*Reader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	client, err := NewAPIClient(cfg, log)
	if err != nil {
		return nil, err
	}
	policy, err := markup.PolicyFor(cfg.BodyPolicy)
	if err != nil {
		return nil, fmt.Errorf("resolve body policy: %w", err)
	}

	model := tui.NewModel(tui.Options{
		List:    blog.NewListLoader(client, cfg.Username, cfg.PerPage, log),
		Detail:  blog.NewDetailLoader(client, log),
		Policy:  policy,
		Log:     log,
		Article: opts.Article,
		Context: ctx,
	})

	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, opts.ProgramOptions...)
	return &Reader{cfg: cfg, model: model, opts: programOpts, log: log}, nil
}

// Model returns the initial tea model.
func (r *Reader) Model() tui.Model { return r.model }

// Run blocks until the reader quits or its context is cancelled.
func (r *Reader) Run() error {
	if r == nil {
		return fmt.Errorf("reader is not initialized")
	}
	r.log.InfoObj("reader starting", "reader_meta", map[string]any{
		"username": r.cfg.Username,
		"policy":   r.cfg.BodyPolicy,
	})

	if _, err := tea.NewProgram(r.model, r.opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			r.log.InfoObj("reader exiting", "reason", "context cancelled")
			return nil
		}
		return fmt.Errorf("run reader: %w", err)
	}
	r.log.InfoObj("reader exiting", "reason", "quit")
	return nil
}
