package blog

import (
	"context"

	"github.com/phenixzain/portfolio-blog/internal/domain"
)

// ArticleLister lists an author's published articles.
type ArticleLister interface {
	ListArticles(ctx context.Context, username string, perPage int) ([]domain.Article, error)
}

// ArticleGetter fetches one article by identifier.
type ArticleGetter interface {
	GetArticle(ctx context.Context, id domain.ArticleID) (domain.Article, error)
}
