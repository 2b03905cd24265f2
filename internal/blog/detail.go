package blog

import (
	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/fetchstate"
	"github.com/phenixzain/portfolio-blog/internal/markup"
)

const (
	NotFoundMessage     = "Article not found"
	DetailLoadingNotice = "Loading article..."
	DetailErrorPrefix   = "Error loading article: "
	BackLinkLabel       = "Back to articles"
)

// DetailMode selects what the detail view renders.
type DetailMode int

const (
	DetailIdle DetailMode = iota
	DetailLoading
	DetailError
	DetailReady
)

// Detail is the derived render model of one article.
type Detail struct {
	Mode  DetailMode
	Error string
	// BackLink is shown with errors so the reader can return to the listing.
	BackLink bool
	Article  *domain.Article
	// BodyHTML is the article body after the configured policy.
	BodyHTML string
}

// BuildDetail derives the detail view. A settled state without an article
// and without an error renders NotFoundMessage.
func BuildDetail(state DetailState, policy markup.BodyPolicy) Detail {
	if policy == nil {
		policy = markup.Trusted{}
	}
	switch state.Status {
	case fetchstate.Idle:
		return Detail{Mode: DetailIdle}
	case fetchstate.Loading:
		return Detail{Mode: DetailLoading}
	}

	if state.Status == fetchstate.Failure || state.Data == nil {
		msg := state.Err
		if msg == "" {
			msg = NotFoundMessage
		}
		return Detail{Mode: DetailError, Error: msg, BackLink: true}
	}

	article := *state.Data
	return Detail{
		Mode:     DetailReady,
		Article:  &article,
		BodyHTML: policy.Apply(article.BodyHTML),
	}
}
