package blog

import (
	"sort"
	"strings"

	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/fetchstate"
)

const (
	// AllTags is the reserved "no tag filter" selection.
	AllTags = ""

	AllTagsLabel    = "All"
	NoResultsNotice = "No articles found matching your criteria."
	LoadingNotice   = "Loading articles from Dev.to..."
	ErrorPrefix     = "Error loading articles: "
)

// Query is the listing's search text and single tag selection.
type Query struct {
	Search string `json:"search" yaml:"search"`
	Tag    string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Tags returns the sorted, deduplicated union of every article's tags.
func Tags(articles []domain.Article) []string {
	set := make(map[string]struct{})
	for _, a := range articles {
		for _, t := range a.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether a passes both the search and the tag filter.
func Matches(a domain.Article, q Query) bool {
	return matchesSearch(a, strings.ToLower(q.Search)) && matchesTag(a, q.Tag)
}

func matchesSearch(a domain.Article, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Description), needle)
}

func matchesTag(a domain.Article, tag string) bool {
	return tag == AllTags || a.HasTag(tag)
}

// Filter returns the articles that match q, in their original order. The
// input slice is never modified.
func Filter(articles []domain.Article, q Query) []domain.Article {
	needle := strings.ToLower(q.Search)
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if matchesSearch(a, needle) && matchesTag(a, q.Tag) {
			out = append(out, a)
		}
	}
	return out
}

// ListingMode selects what the listing renders.
type ListingMode int

const (
	ListingIdle ListingMode = iota
	ListingLoading
	ListingError
	ListingEmpty
	ListingGrid
)

func (m ListingMode) String() string {
	switch m {
	case ListingIdle:
		return "idle"
	case ListingLoading:
		return "loading"
	case ListingError:
		return "error"
	case ListingEmpty:
		return "empty"
	case ListingGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// MarshalText renders the mode by name in exports.
func (m ListingMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Listing is the derived render model of the article listing.
type Listing struct {
	Mode  ListingMode `json:"mode" yaml:"mode"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
	// Tags and Query are set only when filters are shown.
	Tags     []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Query    Query            `json:"query" yaml:"query"`
	Articles []domain.Article `json:"articles" yaml:"articles"`
	Total    int              `json:"total" yaml:"total"`
}

// ShowFilters reports whether the search box and tag bar are visible.
func (l Listing) ShowFilters() bool {
	return l.Mode == ListingEmpty || l.Mode == ListingGrid
}

// BuildListing derives the listing from the list state and query. Loading
// and error are exclusive states that suppress filters and content.
func BuildListing(state ListState, q Query) Listing {
	switch state.Status {
	case fetchstate.Idle:
		return Listing{Mode: ListingIdle, Query: q}
	case fetchstate.Loading:
		return Listing{Mode: ListingLoading, Query: q}
	case fetchstate.Failure:
		return Listing{Mode: ListingError, Error: state.Err, Query: q}
	}

	visible := Filter(state.Data, q)
	mode := ListingGrid
	if len(visible) == 0 {
		mode = ListingEmpty
	}
	return Listing{
		Mode:     mode,
		Tags:     Tags(state.Data),
		Query:    q,
		Articles: visible,
		Total:    len(state.Data),
	}
}
