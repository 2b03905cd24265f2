package tui

import "github.com/phenixzain/portfolio-blog/internal/blog"

// Messages for the tea program

// listLoadedMsg carries the outcome of one list attempt.
type listLoadedMsg struct {
	Result blog.ListResult
}

// detailLoadedMsg carries the outcome of one detail attempt. Results of
// superseded attempts are dropped by the loader when applied.
type detailLoadedMsg struct {
	Result blog.DetailResult
}
