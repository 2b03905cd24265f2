package tui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/markup"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case listLoadedMsg:
		return m.handleListLoaded(msg)
	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == ScreenDetail {
			return m.handleDetailKey(msg)
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if m.list.Apply(msg.Result) {
		m.clampCursor()
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.detail.Apply(msg.Result) {
		return m, nil
	}
	m.scroll = 0
	m.bodyKey, m.bodyText = "", ""
	if d := m.Detail(); d.Mode == blog.DetailReady {
		text, err := markup.Text(d.BodyHTML)
		if err != nil {
			m.log.WarnObj("article body render failed", "render_error", map[string]any{
				"article_id": d.Article.ID.String(),
				"error":      err.Error(),
			})
			text = d.BodyHTML
		}
		m.bodyKey, m.bodyText = d.Article.ID.String(), text
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	listing := m.Listing()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.cursor = 0
		return m, runList(m.list.Start(m.ctx))
	}

	if !listing.ShowFilters() {
		return m, nil
	}

	switch msg.String() {
	case "/":
		m.searching = true
	case "tab":
		m.query.Tag = cycleTag(listing.Tags, m.query.Tag, 1)
		m.cursor = 0
	case "shift+tab":
		m.query.Tag = cycleTag(listing.Tags, m.query.Tag, -1)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(listing.Articles)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(listing.Articles) {
			return m.openArticle(listing.Articles[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
	case tea.KeyBackspace:
		if m.query.Search != "" {
			_, size := utf8.DecodeLastRuneInString(m.query.Search)
			m.query.Search = m.query.Search[:len(m.query.Search)-size]
		}
		m.cursor = 0
	case tea.KeySpace:
		m.query.Search += " "
		m.cursor = 0
	case tea.KeyRunes:
		m.query.Search += string(msg.Runes)
		m.cursor = 0
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "b":
		// leaving the screen abandons any in-flight fetch
		m.detail.Open(m.ctx, "")
		m.screen = ScreenList
		m.scroll = 0
		m.notice = ""
	case "o":
		if d := m.Detail(); d.Mode == blog.DetailReady && d.Article.URL != "" {
			m.notice = TextOpenHint + " " + d.Article.URL
		}
	case "up", "k":
		m.scrollBy(-1)
	case "down", "j":
		m.scrollBy(1)
	case "pgup":
		m.scrollBy(-m.pageSize())
	case "pgdown", " ":
		m.scrollBy(m.pageSize())
	}
	return m, nil
}

// scrollBy moves the detail offset by delta, keeping the last page in view.
func (m *Model) scrollBy(delta int) {
	maxScroll := len(m.detailLines(m.Detail())) - m.pageSize()
	m.scroll += delta
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m Model) openArticle(id domain.ArticleID) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	m.scroll = 0
	m.notice = ""
	return m, runDetail(m.detail.Open(m.ctx, id))
}

func (m *Model) clampCursor() {
	n := len(m.Listing().Articles)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) pageSize() int {
	if m.height > 10 {
		return m.height - 6
	}
	return 5
}

// cycleTag steps through "All" followed by tags, wrapping in both directions.
func cycleTag(tags []string, current string, step int) string {
	options := append([]string{blog.AllTags}, tags...)
	idx := 0
	for i, t := range options {
		if t == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}
