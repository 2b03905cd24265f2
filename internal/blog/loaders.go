package blog

import (
	"context"
	"time"

	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/fetchstate"
	"github.com/phenixzain/portfolio-blog/internal/logger"
)

type (
	ListState     = fetchstate.State[[]domain.Article]
	ListAttempt   = fetchstate.Attempt[[]domain.Article]
	ListResult    = fetchstate.Result[[]domain.Article]
	DetailState   = fetchstate.State[*domain.Article]
	DetailAttempt = fetchstate.Attempt[*domain.Article]
	DetailResult  = fetchstate.Result[*domain.Article]
)

// ListLoader manages the fetch state of an author's article collection.
type ListLoader struct {
	client   ArticleLister
	username string
	perPage  int
	tracker  *fetchstate.Tracker[[]domain.Article]
	log      logger.Logger
}

// NewListLoader returns an idle loader; articles start as an empty collection.
func NewListLoader(client ArticleLister, username string, perPage int, log logger.Logger) *ListLoader {
	return &ListLoader{
		client:   client,
		username: username,
		perPage:  perPage,
		tracker:  fetchstate.NewTracker([]domain.Article{}),
		log:      logger.Ensure(log),
	}
}

// Start enters Loading and returns the attempt to run. Any in-flight attempt is superseded.
func (l *ListLoader) Start(ctx context.Context) *ListAttempt {
	attempt := l.tracker.Begin(ctx, l.username, func(ctx context.Context) ([]domain.Article, error) {
		return l.client.ListArticles(ctx, l.username, l.perPage)
	})
	l.log.DebugObj("article list fetch started", "fetch_meta", map[string]any{
		"attempt_id": attempt.ID,
		"username":   l.username,
		"per_page":   l.perPage,
	})
	return attempt
}

// Apply settles r. It reports false when r belongs to a superseded attempt.
func (l *ListLoader) Apply(r ListResult) bool {
	applied := l.tracker.Settle(r)
	logSettle(l.log, "article list", r.AttemptID, r.Key, r.Err, applied, len(r.Value))
	return applied
}

// Load runs one full fetch synchronously and returns the settled state.
func (l *ListLoader) Load(ctx context.Context) ListState {
	l.Apply(l.Start(ctx).Run())
	return l.State()
}

// State returns (articles, loading, error) as a snapshot.
func (l *ListLoader) State() ListState { return l.tracker.Snapshot() }

// Observe forwards every state transition to fn.
func (l *ListLoader) Observe(fn func(ListState)) { l.tracker.Observe(fn) }

// DetailLoader manages the fetch state of one article keyed by identifier.
type DetailLoader struct {
	client  ArticleGetter
	tracker *fetchstate.Tracker[*domain.Article]
	log     logger.Logger
}

// NewDetailLoader returns an idle loader with no article.
func NewDetailLoader(client ArticleGetter, log logger.Logger) *DetailLoader {
	return &DetailLoader{
		client:  client,
		tracker: fetchstate.NewTracker[*domain.Article](nil),
		log:     logger.Ensure(log),
	}
}

// Open starts fetching id. An empty id starts nothing: it returns nil and
// abandons any in-flight attempt, restoring the state held before it began.
func (d *DetailLoader) Open(ctx context.Context, id domain.ArticleID) *DetailAttempt {
	if id == "" {
		d.tracker.Cancel()
		return nil
	}
	attempt := d.tracker.Begin(ctx, id.String(), func(ctx context.Context) (*domain.Article, error) {
		article, err := d.client.GetArticle(ctx, id)
		if err != nil {
			return nil, err
		}
		return &article, nil
	})
	d.log.DebugObj("article fetch started", "fetch_meta", map[string]any{
		"attempt_id": attempt.ID,
		"article_id": id.String(),
	})
	return attempt
}

// Apply settles r. It reports false when r belongs to a superseded attempt.
func (d *DetailLoader) Apply(r DetailResult) bool {
	applied := d.tracker.Settle(r)
	count := 0
	if r.Value != nil {
		count = 1
	}
	logSettle(d.log, "article", r.AttemptID, r.Key, r.Err, applied, count)
	return applied
}

// Load opens id and settles it synchronously. An empty id returns the current state.
func (d *DetailLoader) Load(ctx context.Context, id domain.ArticleID) DetailState {
	if attempt := d.Open(ctx, id); attempt != nil {
		d.Apply(attempt.Run())
	}
	return d.State()
}

// State returns (article or nil, loading, error) as a snapshot.
func (d *DetailLoader) State() DetailState { return d.tracker.Snapshot() }

// Observe forwards every state transition to fn.
func (d *DetailLoader) Observe(fn func(DetailState)) { d.tracker.Observe(fn) }

func logSettle(log logger.Logger, what, attemptID, key string, err error, applied bool, count int) {
	meta := map[string]any{
		"attempt_id": attemptID,
		"key":        key,
		"settled_at": time.Now().UTC(),
	}
	switch {
	case !applied:
		log.DebugObj(what+" fetch superseded; result discarded", "fetch_meta", meta)
	case err != nil:
		meta["error"] = err.Error()
		log.ErrorObj(what+" fetch failed", "fetch_meta", meta)
	default:
		meta["count"] = count
		log.InfoObj(what+" fetch completed", "fetch_meta", meta)
	}
}
