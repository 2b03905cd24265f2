// Package tui renders the blog listing and article screens in the terminal.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/logger"
	"github.com/phenixzain/portfolio-blog/internal/markup"
)

// Screen is the active view.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// Options configures a Model.
type Options struct {
	List   *blog.ListLoader
	Detail *blog.DetailLoader
	Policy markup.BodyPolicy
	Log    logger.Logger
	// Article, when set, opens the detail screen on start.
	Article domain.ArticleID
	// Context bounds every fetch the model starts.
	Context context.Context
}

// Model is the tea model for the blog reader. Loader state lives in the
// loaders; the model only holds view state.
type Model struct {
	ctx    context.Context
	list   *blog.ListLoader
	detail *blog.DetailLoader
	policy markup.BodyPolicy
	log    logger.Logger

	screen    Screen
	query     blog.Query
	searching bool
	cursor    int
	scroll    int
	width     int
	height    int
	// notice is a one-line hint shown under the article until the screen changes
	notice string

	initialArticle domain.ArticleID

	// rendered body text cache, keyed by article id
	bodyKey  string
	bodyText string
}

// NewModel creates the reader model.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	policy := opts.Policy
	if policy == nil {
		policy = markup.Trusted{}
	}
	m := Model{
		ctx:            ctx,
		list:           opts.List,
		detail:         opts.Detail,
		policy:         policy,
		log:            logger.Ensure(opts.Log),
		initialArticle: opts.Article,
		width:          100,
		height:         40,
	}
	if opts.Article != "" {
		m.screen = ScreenDetail
	}
	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{runList(m.list.Start(m.ctx))}
	if m.initialArticle != "" {
		cmds = append(cmds, runDetail(m.detail.Open(m.ctx, m.initialArticle)))
	}
	return tea.Batch(cmds...)
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Query returns the current search text and tag selection.
func (m Model) Query() blog.Query { return m.query }

// Listing derives the listing render model from the list loader.
func (m Model) Listing() blog.Listing {
	return blog.BuildListing(m.list.State(), m.query)
}

// Detail derives the detail render model from the detail loader.
func (m Model) Detail() blog.Detail {
	return blog.BuildDetail(m.detail.State(), m.policy)
}
