package render

import "context"

type Renderer interface {
	RenderTitleIndex(ctx context.Context, page TitleIndexPage) ([]byte, error)
	RenderDateIndex(ctx context.Context, page DateIndexPage) ([]byte, error)
	RenderArticle(ctx context.Context, page ArticlePage) ([]byte, error)
}
