package publishers

import (
	"time"

	"github.com/phenixzain/portfolio-blog/internal/domain"
)

// ArticleRef is the slice of an article downstream consumers need to link to it.
type ArticleRef struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
}

// Event announces a completed export run.
type Event struct {
	RunID      string       `json:"run_id"`
	Username   string       `json:"username"`
	Search     string       `json:"search,omitempty"`
	Tag        string       `json:"tag,omitempty"`
	Mode       string       `json:"mode"`
	Total      int          `json:"total"`
	Articles   []ArticleRef `json:"articles"`
	ExportedAt time.Time    `json:"exported_at"`
}

// NewEvent builds the announcement for an export of articles.
func NewEvent(runID, username, search, tag, mode string, total int, articles []domain.Article, exportedAt time.Time) Event {
	refs := make([]ArticleRef, 0, len(articles))
	for _, a := range articles {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		refs = append(refs, ArticleRef{ID: a.ID.String(), Title: a.Title, URL: a.URL, Tags: tags})
	}
	return Event{
		RunID:      runID,
		Username:   username,
		Search:     search,
		Tag:        tag,
		Mode:       mode,
		Total:      total,
		Articles:   refs,
		ExportedAt: exportedAt.UTC(),
	}
}

// attributes are the message attributes every broker sink attaches.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"run_id":   e.RunID,
		"username": e.Username,
		"mode":     e.Mode,
	}
}
