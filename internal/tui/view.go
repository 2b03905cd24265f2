package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phenixzain/portfolio-blog/internal/blog"
	"github.com/phenixzain/portfolio-blog/internal/domain"
)

// View implements tea.Model interface
func (m Model) View() string {
	if m.screen == ScreenDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder
	listing := m.Listing()

	b.WriteString(TitleStyle.Render(TextListTitle))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(TextListSubtitle))
	b.WriteString("\n\n")

	switch listing.Mode {
	case blog.ListingIdle, blog.ListingLoading:
		b.WriteString(StatusStyle.Render(blog.LoadingNotice))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("q quit"))
		return b.String()
	case blog.ListingError:
		b.WriteString(ErrorStyle.Render(blog.ErrorPrefix + listing.Error))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("r retry | q quit"))
		return b.String()
	}

	b.WriteString(m.searchBox())
	b.WriteString("\n")
	b.WriteString(m.tagBar(listing.Tags))
	b.WriteString("\n\n")

	if listing.Mode == blog.ListingEmpty {
		b.WriteString(InfoStyle.Render(blog.NoResultsNotice))
		b.WriteString("\n\n")
	} else {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%d of %d articles", len(listing.Articles), listing.Total)))
		b.WriteString("\n")
		start, window := m.visibleWindow(listing.Articles)
		for i, a := range window {
			b.WriteString(m.card(a, start+i == m.cursor))
			b.WriteString("\n")
		}
	}

	footer := TextFooterList
	if m.searching {
		footer = TextFooterSearching
	}
	b.WriteString(InfoStyle.Render(footer))
	return b.String()
}

// visibleWindow returns the slice of articles that fits on screen with the
// cursor in view, and the index of its first element.
func (m Model) visibleWindow(articles []domain.Article) (int, []domain.Article) {
	const cardHeight = 7
	capacity := (m.height - 10) / cardHeight
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if m.cursor >= capacity {
		start = m.cursor - capacity + 1
	}
	end := start + capacity
	if end > len(articles) {
		end = len(articles)
	}
	if start > end {
		start = end
	}
	return start, articles[start:end]
}

func (m Model) searchBox() string {
	text := m.query.Search
	if text == "" && !m.searching {
		return InfoStyle.Render("🔍 " + TextSearchPrompt)
	}
	cursor := ""
	if m.searching {
		cursor = "█"
	}
	return "🔍 " + text + cursor
}

func (m Model) tagBar(tags []string) string {
	parts := make([]string, 0, len(tags)+1)
	render := func(label string, active bool) string {
		if active {
			return ActiveTagStyle.Render(label)
		}
		return InactiveTagStyle.Render(label)
	}
	parts = append(parts, render(blog.AllTagsLabel, m.query.Tag == blog.AllTags))
	for _, t := range tags {
		parts = append(parts, render("#"+t, m.query.Tag == t))
	}
	return lipgloss.NewStyle().Width(m.contentWidth()).Render(strings.Join(parts, " "))
}

func (m Model) card(a domain.Article, selected bool) string {
	var b strings.Builder

	if tags := firstTags(a.Tags, 3); tags != "" {
		b.WriteString(TagStyle.Render(tags))
		b.WriteString("\n")
	}
	b.WriteString(CardTitleStyle.Render(a.Title))
	b.WriteString("\n")
	if a.Description != "" {
		b.WriteString(a.Description)
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s · %d min read · ♥ %d · 💬 %d",
		a.ReadablePublishDate, a.ReadingTimeMinutes, a.PositiveReactions, a.Comments)))

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Width(m.contentWidth()).Render(b.String())
}

func (m Model) detailView() string {
	var b strings.Builder
	detail := m.Detail()

	switch detail.Mode {
	case blog.DetailIdle, blog.DetailLoading:
		b.WriteString(StatusStyle.Render(blog.DetailLoadingNotice))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterDetailErr))
		return b.String()
	case blog.DetailError:
		b.WriteString(ErrorStyle.Render(blog.DetailErrorPrefix + detail.Error))
		b.WriteString("\n\n")
		if detail.BackLink {
			b.WriteString(InfoStyle.Render("← " + blog.BackLinkLabel + " (esc)"))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(strings.Join(scrollWindow(m.detailLines(detail), m.scroll, m.pageSize()), "\n"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(StatusStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(TextFooterDetail))
	return b.String()
}

// detailLines renders a ready article as the lines the detail screen scrolls
// through. Any other mode has no lines.
func (m Model) detailLines(detail blog.Detail) []string {
	if detail.Mode != blog.DetailReady || detail.Article == nil {
		return nil
	}
	a := detail.Article
	var doc strings.Builder
	doc.WriteString(InfoStyle.Render("← " + blog.BackLinkLabel))
	doc.WriteString("\n\n")
	if len(a.Tags) > 0 {
		doc.WriteString(TagStyle.Render(firstTags(a.Tags, len(a.Tags))))
		doc.WriteString("\n")
	}
	doc.WriteString(TitleStyle.Render(a.Title))
	doc.WriteString("\n")
	if a.Description != "" {
		doc.WriteString(SubtitleStyle.Render(a.Description))
		doc.WriteString("\n\n")
	}
	doc.WriteString(fmt.Sprintf("%s @%s\n", a.Author.Name, a.Author.Username))
	doc.WriteString(InfoStyle.Render(fmt.Sprintf("%s · %d min read · %d reactions · %d comments",
		a.ReadablePublishDate, a.ReadingTimeMinutes, a.PositiveReactions, a.Comments)))
	doc.WriteString("\n")
	doc.WriteString(InfoStyle.Render(TextViewOnDevTo + ": " + a.URL))
	doc.WriteString("\n\n")

	body := m.bodyText
	if m.bodyKey != a.ID.String() {
		body = detail.BodyHTML
	}
	doc.WriteString(lipgloss.NewStyle().Width(m.contentWidth()).Render(body))
	doc.WriteString("\n\n")
	doc.WriteString(InfoStyle.Render(TextEnjoyed + " " + a.URL))

	return strings.Split(doc.String(), "\n")
}

func (m Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return 76
}

func scrollWindow(lines []string, offset, size int) []string {
	if offset > len(lines)-1 {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + size
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

func firstTags(tags []string, n int) string {
	if n > len(tags) {
		n = len(tags)
	}
	out := make([]string, 0, n)
	for _, t := range tags[:n] {
		out = append(out, "#"+t)
	}
	return strings.Join(out, " ")
}
