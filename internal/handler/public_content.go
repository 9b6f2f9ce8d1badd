// Package handler exposes HTTP handlers for both the admin back office and
// the public site.  This file defines the public article feed.  These
// routes require no authentication and only ever see published rows.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/content"
	"github.com/visapath/content-service/internal/repository"
	"github.com/visapath/content-service/internal/service"
)

// PublicHandler aggregates the read-side dependencies for unauthenticated
// browsing.
type PublicHandler struct {
	Articles     *repository.ArticleRepo
	Destinations *repository.CountryRepo
	Origins      *repository.CountryRepo
	VisaTypes    *repository.VisaTypeRepo
	Categories   *repository.CategoryRepo
	Checklists   *repository.ChecklistRepo
	Items        *repository.ChecklistItemRepo
	CategoryMaps *repository.ArticleCategoryMapRepo
	CategorySvc  *service.CategoryAssignments
}

// publicArticle is the feed card shape: no body, no draft state.
type publicArticle struct {
	ID                     string   `json:"id"`
	Slug                   string   `json:"slug"`
	Title                  string   `json:"title"`
	Summary                *string  `json:"summary,omitempty"`
	CoverImageURL          *string  `json:"cover_image_url,omitempty"`
	DestinationCountryCode *string  `json:"destination_country_code,omitempty"`
	OriginCountryCode      *string  `json:"origin_country_code,omitempty"`
	VisaTypes              []string `json:"visa_types,omitempty"`
	IsGlobal               bool     `json:"is_global"`
	AccessTier             string   `json:"access_tier"`
	ReadingTimeMinutes     *int     `json:"reading_time_minutes,omitempty"`
	CategoryIDs            []string `json:"category_ids,omitempty"`
}

// GetArticles handles GET /v1/articles.  Drafts never appear here no
// matter what the query string says: the published axis is pinned before
// filtering.
func (h *PublicHandler) GetArticles(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Articles.ListPublished(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	byArticle, err := h.CategoryMaps.ActiveMap(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	f := content.Filter{
		Destination: upperCode(c.QueryParam("destination")),
		Origin:      upperCode(c.QueryParam("origin")),
		Visa:        upperCode(c.QueryParam("visa")),
		Category:    c.QueryParam("category"),
		Tier:        c.QueryParam("tier"),
		Published:   content.PublishedOnly,
		Query:       c.QueryParam("q"),
	}
	filtered := content.FilterArticles(items, f, byArticle)

	out := make([]publicArticle, 0, len(filtered))
	for _, a := range filtered {
		out = append(out, publicArticle{
			ID:                     a.ID,
			Slug:                   a.Slug,
			Title:                  a.Title,
			Summary:                a.Summary,
			CoverImageURL:          a.CoverImageURL,
			DestinationCountryCode: a.DestinationCountryCode,
			OriginCountryCode:      a.OriginCountryCode,
			VisaTypes:              a.VisaTypes,
			IsGlobal:               a.IsGlobal,
			AccessTier:             string(a.AccessTier),
			ReadingTimeMinutes:     a.ReadingTimeMinutes,
			CategoryIDs:            byArticle[a.ID],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// publicArticleDetail adds the body to the feed card shape.
type publicArticleDetail struct {
	publicArticle
	Content string `json:"content"`
}

// GetArticleBySlug handles GET /v1/articles/:slug.  Draft articles are
// indistinguishable from missing ones.
func (h *PublicHandler) GetArticleBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.Articles.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		if err == repository.ErrArticleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	cats, err := h.CategorySvc.CategoriesOf(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, publicArticleDetail{
		publicArticle: publicArticle{
			ID:                     a.ID,
			Slug:                   a.Slug,
			Title:                  a.Title,
			Summary:                a.Summary,
			CoverImageURL:          a.CoverImageURL,
			DestinationCountryCode: a.DestinationCountryCode,
			OriginCountryCode:      a.OriginCountryCode,
			VisaTypes:              a.VisaTypes,
			IsGlobal:               a.IsGlobal,
			AccessTier:             string(a.AccessTier),
			ReadingTimeMinutes:     a.ReadingTimeMinutes,
			CategoryIDs:            cats,
		},
		Content: a.Content,
	})
}
