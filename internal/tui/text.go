package tui

// UI Text Constants
const (
	TextListTitle    = "My Dev.to Blog"
	TextListSubtitle = "Sharing knowledge about data science, Python, automation, and scientific computing"
	TextSearchPrompt = "Search articles..."

	TextFooterList      = "/ search | tab/shift+tab tags | ↑/↓ select | enter open | r reload | q quit"
	TextFooterSearching = "type to search | enter/esc done"
	TextFooterDetail    = "↑/↓ scroll | pgup/pgdown page | o link | esc back | q quit"
	TextFooterDetailErr = "esc back | q quit"

	TextViewOnDevTo = "View on Dev.to"
	TextOpenHint    = "Open in your browser:"
	TextEnjoyed     = "Enjoyed this article? React on Dev.to:"
)
