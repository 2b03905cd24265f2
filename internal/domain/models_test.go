package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

const listPayload = `{
  "type_of": "article",
  "id": 1876543,
  "title": "Automating lab data with Python",
  "description": "Small scripts, big wins",
  "cover_image": null,
  "readable_publish_date": "Mar 4",
  "tag_list": ["python", "automation"],
  "tags": "python, automation",
  "url": "https://dev.to/phenixzain/automating-lab-data",
  "comments_count": 3,
  "positive_reactions_count": 42,
  "reading_time_minutes": 6,
  "user": {"name": "Zain", "username": "phenixzain", "profile_image_90": "https://img/90.png"}
}`

const detailPayload = `{
  "id": "1876543",
  "title": "Automating lab data with Python",
  "description": "Small scripts, big wins",
  "body_html": "<p>Hello</p>",
  "cover_image": "https://img/cover.png",
  "tag_list": "python, automation",
  "tags": ["python", "automation"],
  "readable_publish_date": "Mar 4",
  "user": {"name": "Zain", "username": "phenixzain", "profile_image": "https://img/full.png"}
}`

func TestArticleDecodesListPayload(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(listPayload), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "1876543" {
		t.Fatalf("unexpected id %q", a.ID)
	}
	if !reflect.DeepEqual(a.Tags, []string{"python", "automation"}) {
		t.Fatalf("unexpected tags %#v", a.Tags)
	}
	if a.CoverImage != "" {
		t.Fatalf("expected empty cover image, got %q", a.CoverImage)
	}
	if a.PositiveReactions != 42 || a.Comments != 3 || a.ReadingTimeMinutes != 6 {
		t.Fatalf("unexpected counters %+v", a)
	}
	if a.Author.ProfileImage != "https://img/90.png" {
		t.Fatalf("unexpected avatar %q", a.Author.ProfileImage)
	}
}

func TestArticleDecodesDetailPayload(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(detailPayload), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "1876543" {
		t.Fatalf("string and numeric ids must agree, got %q", a.ID)
	}
	if !reflect.DeepEqual(a.Tags, []string{"python", "automation"}) {
		t.Fatalf("unexpected tags %#v", a.Tags)
	}
	if a.BodyHTML != "<p>Hello</p>" {
		t.Fatalf("unexpected body %q", a.BodyHTML)
	}
	if a.Author.ProfileImage != "https://img/full.png" {
		t.Fatalf("expected fallback avatar, got %q", a.Author.ProfileImage)
	}
}

func TestArticleWithoutTagsHasEmptyList(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id": 7, "title": "x"}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Tags == nil || len(a.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", a.Tags)
	}
}

func TestArticleIDRejectsObjects(t *testing.T) {
	var id ArticleID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Fatal("expected error decoding object as id")
	}
}

func TestHasTag(t *testing.T) {
	a := Article{Tags: []string{"python", "sql"}}
	if !a.HasTag("sql") {
		t.Fatal("expected sql tag")
	}
	if a.HasTag("Python") {
		t.Fatal("tag membership is exact")
	}
}
