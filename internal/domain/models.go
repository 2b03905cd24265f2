package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Domain contains core models shared by the client, loaders and views.

// ArticleID is the opaque identifier assigned by the publishing platform.
// It decodes from either a JSON number or a JSON string.
type ArticleID string

// UnmarshalJSON accepts numeric and string identifiers.
func (id *ArticleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode article id: %w", err)
		}
		*id = ArticleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode article id: %w", err)
	}
	*id = ArticleID(n.String())
	return nil
}

func (id ArticleID) String() string { return string(id) }

// TagList decodes tags sent either as a JSON array or as a comma separated string.
type TagList []string

// UnmarshalJSON accepts ["a","b"] and "a, b".
func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '[' {
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return fmt.Errorf("decode tag list: %w", err)
		}
		*t = TagList(tags)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode tag list: %w", err)
	}
	*t = splitTags(raw)
	return nil
}

func splitTags(raw string) TagList {
	parts := strings.Split(raw, ",")
	out := make(TagList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Author is the nested user record attached to an article.
type Author struct {
	Name         string `json:"name" yaml:"name"`
	Username     string `json:"username" yaml:"username"`
	ProfileImage string `json:"profile_image_90" yaml:"profile_image"`
}

// Article is one blog post mirrored from the publishing platform.
//
// BodyHTML is only populated by detail fetches. It is markup authored on the
// platform and is treated as trusted content; see markup.BodyPolicy.
type Article struct {
	ID                  ArticleID `json:"id" yaml:"id"`
	Title               string    `json:"title" yaml:"title"`
	Description         string    `json:"description" yaml:"description"`
	BodyHTML            string    `json:"body_html,omitempty" yaml:"body_html,omitempty"`
	CoverImage          string    `json:"cover_image,omitempty" yaml:"cover_image,omitempty"`
	Tags                []string  `json:"tag_list" yaml:"tags"`
	ReadablePublishDate string    `json:"readable_publish_date" yaml:"readable_publish_date"`
	ReadingTimeMinutes  int       `json:"reading_time_minutes" yaml:"reading_time_minutes"`
	PositiveReactions   int       `json:"positive_reactions_count" yaml:"positive_reactions_count"`
	Comments            int       `json:"comments_count" yaml:"comments_count"`
	URL                 string    `json:"url" yaml:"url"`
	Author              Author    `json:"user" yaml:"author"`
}

// wireArticle mirrors the platform payload where the tag fields change shape
// between list and detail responses.
type wireArticle struct {
	ID                  ArticleID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	BodyHTML            string    `json:"body_html"`
	CoverImage          *string   `json:"cover_image"`
	TagList             TagList   `json:"tag_list"`
	Tags                TagList   `json:"tags"`
	ReadablePublishDate string    `json:"readable_publish_date"`
	ReadingTimeMinutes  int       `json:"reading_time_minutes"`
	PositiveReactions   int       `json:"positive_reactions_count"`
	Comments            int       `json:"comments_count"`
	URL                 string    `json:"url"`
	User                struct {
		Name           string `json:"name"`
		Username       string `json:"username"`
		ProfileImage90 string `json:"profile_image_90"`
		ProfileImage   string `json:"profile_image"`
	} `json:"user"`
}

// UnmarshalJSON decodes the platform's article payload.
func (a *Article) UnmarshalJSON(data []byte) error {
	var w wireArticle
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	tags := []string(w.TagList)
	if len(w.Tags) > len(tags) {
		tags = []string(w.Tags)
	}
	if tags == nil {
		tags = []string{}
	}

	cover := ""
	if w.CoverImage != nil {
		cover = strings.TrimSpace(*w.CoverImage)
	}

	avatar := w.User.ProfileImage90
	if avatar == "" {
		avatar = w.User.ProfileImage
	}

	*a = Article{
		ID:                  w.ID,
		Title:               w.Title,
		Description:         w.Description,
		BodyHTML:            w.BodyHTML,
		CoverImage:          cover,
		Tags:                tags,
		ReadablePublishDate: w.ReadablePublishDate,
		ReadingTimeMinutes:  w.ReadingTimeMinutes,
		PositiveReactions:   w.PositiveReactions,
		Comments:            w.Comments,
		URL:                 w.URL,
		Author: Author{
			Name:         w.User.Name,
			Username:     w.User.Username,
			ProfileImage: avatar,
		},
	}
	return nil
}

// HasTag reports whether tag is a member of the article's tag list.
func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
