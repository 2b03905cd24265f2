// Package markup prepares article body HTML for display.
//
// Body HTML comes from the publishing platform and is treated as trusted,
// already-sanitized markup by default. The sanitize policy interposes a
// bluemonday allow-list for deployments that do not extend that trust.
package markup

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	PolicyTrusted  = "trusted"
	PolicySanitize = "sanitize"
)

// BodyPolicy transforms body HTML before it is rendered.
type BodyPolicy interface {
	Name() string
	Apply(rawHTML string) string
}

// PolicyFor resolves a configured policy name.
func PolicyFor(name string) (BodyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyTrusted:
		return Trusted{}, nil
	case PolicySanitize:
		return NewSanitizer(), nil
	default:
		return nil, fmt.Errorf("unknown body policy %q", name)
	}
}

// Trusted passes body HTML through verbatim.
type Trusted struct{}

func (Trusted) Name() string                { return PolicyTrusted }
func (Trusted) Apply(rawHTML string) string { return rawHTML }

// Sanitizer strips everything outside an article-content allow-list.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the allow-list:
//   - block and inline text elements, lists, tables, headings, code
//   - links with href, forced target=_blank and rel=noopener noreferrer
//   - img with https src and alt only
//   - no script, iframe, style, or on* attributes
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code", "kbd",
		"strong", "em", "b", "i", "del", "sup", "sub",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"table", "thead", "tbody", "tr", "th", "td",
		"figure", "figcaption",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(*url.URL) bool { return true })

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Name() string { return PolicySanitize }

func (s *Sanitizer) Apply(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
