package blog

import (
	"strings"
	"testing"

	"github.com/phenixzain/portfolio-blog/internal/domain"
	"github.com/phenixzain/portfolio-blog/internal/fetchstate"
	"github.com/phenixzain/portfolio-blog/internal/markup"
)

func TestBuildDetailStates(t *testing.T) {
	if d := BuildDetail(DetailState{Status: fetchstate.Idle}, nil); d.Mode != DetailIdle {
		t.Fatalf("expected idle, got %v", d.Mode)
	}
	if d := BuildDetail(DetailState{Status: fetchstate.Loading}, nil); d.Mode != DetailLoading {
		t.Fatalf("expected loading, got %v", d.Mode)
	}

	failed := BuildDetail(DetailState{Status: fetchstate.Failure, Err: "failed to fetch article: status 404"}, nil)
	if failed.Mode != DetailError || failed.Error != "failed to fetch article: status 404" || !failed.BackLink {
		t.Fatalf("unexpected failure render %+v", failed)
	}

	missing := BuildDetail(DetailState{Status: fetchstate.Success}, nil)
	if missing.Mode != DetailError || missing.Error != NotFoundMessage || !missing.BackLink {
		t.Fatalf("settled without article must render not found, got %+v", missing)
	}
}

func TestBuildDetailFailureWinsOverStaleArticle(t *testing.T) {
	stale := &domain.Article{ID: "1"}
	d := BuildDetail(DetailState{Status: fetchstate.Failure, Err: "boom", Data: stale}, nil)
	if d.Mode != DetailError || d.Article != nil {
		t.Fatalf("error must suppress content, got %+v", d)
	}
}

func TestBuildDetailBodyPolicies(t *testing.T) {
	body := `<p>ok</p><script>alert(1)</script>`
	state := DetailState{Status: fetchstate.Success, Data: &domain.Article{ID: "1", BodyHTML: body}}

	trusted := BuildDetail(state, markup.Trusted{})
	if trusted.Mode != DetailReady || trusted.BodyHTML != body {
		t.Fatalf("trusted body must be verbatim, got %q", trusted.BodyHTML)
	}

	sanitized := BuildDetail(state, markup.NewSanitizer())
	if strings.Contains(sanitized.BodyHTML, "script") || !strings.Contains(sanitized.BodyHTML, "<p>ok</p>") {
		t.Fatalf("unexpected sanitized body %q", sanitized.BodyHTML)
	}
	if state.Data.BodyHTML != body {
		t.Fatal("policy must not mutate the loaded article")
	}
}
