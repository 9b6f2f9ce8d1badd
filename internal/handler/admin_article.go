package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/content"
	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

// articleReq is the admin form payload for creating or updating an article.
// Destination accepts the sentinel "global" in place of a country code.
type articleReq struct {
	Title                  string   `json:"title"`
	Slug                   string   `json:"slug"`
	Summary                string   `json:"summary"`
	Content                string   `json:"content"`
	CoverImageURL          string   `json:"cover_image_url"`
	DestinationCountryCode string   `json:"destination_country_code"`
	OriginCountryCode      string   `json:"origin_country_code"`
	VisaTypes              []string `json:"visa_types"`
	AccessTier             string   `json:"access_tier"`
	Published              bool     `json:"published"`
	CategoryIDs            []string `json:"category_ids"`
}

// articlePatchReq is the partial-update payload: every field is optional and
// an absent field leaves the stored value untouched.  Pointer fields tell
// "omitted" apart from "set to the zero value", which plain PUT binding
// cannot.
type articlePatchReq struct {
	Title                  *string   `json:"title"`
	Slug                   *string   `json:"slug"`
	Summary                *string   `json:"summary"`
	Content                *string   `json:"content"`
	CoverImageURL          *string   `json:"cover_image_url"`
	DestinationCountryCode *string   `json:"destination_country_code"`
	OriginCountryCode      *string   `json:"origin_country_code"`
	VisaTypes              *[]string `json:"visa_types"`
	AccessTier             *string   `json:"access_tier"`
	Published              *bool     `json:"published"`
	CategoryIDs            *[]string `json:"category_ids"`
}

// articleResp is an article together with its active category ids.
type articleResp struct {
	*model.Article
	CategoryIDs []string `json:"category_ids"`
}

func (r articleReq) toInput() model.ArticleInput {
	in := model.ArticleInput{
		Title:                  r.Title,
		Slug:                   r.Slug,
		Summary:                r.Summary,
		Content:                r.Content,
		CoverImageURL:          r.CoverImageURL,
		DestinationCountryCode: r.DestinationCountryCode,
		OriginCountryCode:      r.OriginCountryCode,
		VisaTypes:              r.VisaTypes,
		AccessTier:             r.AccessTier,
		Published:              r.Published,
	}
	// The admin form sends "global" as the destination choice instead of a
	// separate flag.  An empty destination stays empty and is rejected by
	// validation.
	if r.DestinationCountryCode == "global" {
		in.IsGlobal = true
		in.DestinationCountryCode = ""
	}
	return in
}

// merge builds a full ArticleInput from the stored article, then overwrites
// only the fields the patch actually carries.  The destination sentinel
// "global" works the same way it does on the full form.
func (r articlePatchReq) merge(a *model.Article) model.ArticleInput {
	in := model.ArticleInput{
		Title:      a.Title,
		Slug:       a.Slug,
		Content:    a.Content,
		VisaTypes:  a.VisaTypes,
		IsGlobal:   a.IsGlobal,
		AccessTier: string(a.AccessTier),
		Published:  a.Published,
	}
	if a.Summary != nil {
		in.Summary = *a.Summary
	}
	if a.CoverImageURL != nil {
		in.CoverImageURL = *a.CoverImageURL
	}
	if a.DestinationCountryCode != nil {
		in.DestinationCountryCode = *a.DestinationCountryCode
	}
	if a.OriginCountryCode != nil {
		in.OriginCountryCode = *a.OriginCountryCode
	}

	if r.Title != nil {
		in.Title = *r.Title
	}
	if r.Slug != nil {
		in.Slug = content.Slugify(*r.Slug)
	}
	if r.Summary != nil {
		in.Summary = *r.Summary
	}
	if r.Content != nil {
		in.Content = *r.Content
	}
	if r.CoverImageURL != nil {
		in.CoverImageURL = *r.CoverImageURL
	}
	if r.DestinationCountryCode != nil {
		if *r.DestinationCountryCode == "global" {
			in.IsGlobal = true
			in.DestinationCountryCode = ""
		} else {
			in.IsGlobal = false
			in.DestinationCountryCode = *r.DestinationCountryCode
		}
	}
	if r.OriginCountryCode != nil {
		in.OriginCountryCode = *r.OriginCountryCode
	}
	if r.VisaTypes != nil {
		in.VisaTypes = *r.VisaTypes
	}
	if r.AccessTier != nil {
		in.AccessTier = *r.AccessTier
	}
	if r.Published != nil {
		in.Published = *r.Published
	}
	return in
}

// allowedVisaCodes resolves the visa codes an article may reference: the
// active codes of its destination country, or every active code for global
// articles.
func (h *AdminHandler) allowedVisaCodes(c echo.Context, a *model.Article) (map[string]bool, error) {
	ctx := c.Request().Context()
	var (
		types []*model.VisaType
		err   error
	)
	if a.IsGlobal {
		types, err = h.VisaTypes.ListActive(ctx)
	} else {
		types, err = h.VisaTypes.ListActiveByCountry(ctx, *a.DestinationCountryCode)
	}
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(types))
	for _, v := range types {
		allowed[v.Code] = true
	}
	return allowed, nil
}

// CreateArticle handles POST /v1/admin/articles.
func (h *AdminHandler) CreateArticle(c echo.Context) error {
	var req articleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in := req.toInput()
	// An omitted slug is derived from the title; a provided one is
	// normalized the same way so both paths share one vocabulary.
	if in.Slug == "" {
		in.Slug = content.Slugify(in.Title)
	} else {
		in.Slug = content.Slugify(in.Slug)
	}

	a, err := model.NewArticle(in, time.Now().UTC())
	if err != nil {
		return writeErr(c, err)
	}
	allowed, err := h.allowedVisaCodes(c, a)
	if err != nil {
		return writeErr(c, err)
	}
	a.RestrictVisaTypes(allowed)
	a.ReadingTimeMinutes = content.ReadingTime(a.Content)

	if err := h.ArticleSvc.Save(c.Request().Context(), a, req.CategoryIDs, true, false); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, articleResp{Article: a, CategoryIDs: req.CategoryIDs})
}

// UpdateArticle handles PUT /v1/admin/articles/:id.
func (h *AdminHandler) UpdateArticle(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.Articles.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	wasPublished := a.Published

	var req articleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in := req.toInput()
	if in.Slug == "" {
		in.Slug = a.Slug // slug is sticky unless the form sends a new one
	} else {
		in.Slug = content.Slugify(in.Slug)
	}

	if err := a.Apply(in, time.Now().UTC()); err != nil {
		return writeErr(c, err)
	}
	allowed, err := h.allowedVisaCodes(c, a)
	if err != nil {
		return writeErr(c, err)
	}
	a.RestrictVisaTypes(allowed)
	a.ReadingTimeMinutes = content.ReadingTime(a.Content)

	if err := h.ArticleSvc.Save(ctx, a, req.CategoryIDs, false, wasPublished); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, articleResp{Article: a, CategoryIDs: req.CategoryIDs})
}

// PatchArticle handles PATCH /v1/admin/articles/:id.  Unlike PUT it merges:
// omitted fields keep their stored values, so a body of only {"title": ...}
// does not unpublish the article or drop its categories.
func (h *AdminHandler) PatchArticle(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.Articles.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	wasPublished := a.Published

	var req articlePatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	catIDs, err := h.CategorySvc.CategoriesOf(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if req.CategoryIDs != nil {
		catIDs = *req.CategoryIDs
	}

	if err := a.Apply(req.merge(a), time.Now().UTC()); err != nil {
		return writeErr(c, err)
	}
	allowed, err := h.allowedVisaCodes(c, a)
	if err != nil {
		return writeErr(c, err)
	}
	a.RestrictVisaTypes(allowed)
	a.ReadingTimeMinutes = content.ReadingTime(a.Content)

	if err := h.ArticleSvc.Save(ctx, a, catIDs, false, wasPublished); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, articleResp{Article: a, CategoryIDs: catIDs})
}

// ListArticles handles GET /v1/admin/articles.  All articles are visible to
// admins; the published query parameter narrows to published or draft, and
// the remaining filter axes match the public feed.
func (h *AdminHandler) ListArticles(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Articles.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	byArticle, err := h.categoriesByArticle(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	f := content.Filter{
		Destination: upperCode(c.QueryParam("destination")),
		Origin:      upperCode(c.QueryParam("origin")),
		Visa:        upperCode(c.QueryParam("visa")),
		Category:    c.QueryParam("category"),
		Tier:        c.QueryParam("tier"),
		Published:   c.QueryParam("published"),
		Query:       c.QueryParam("q"),
	}
	filtered := content.FilterArticles(items, f, byArticle)

	out := make([]articleResp, 0, len(filtered))
	for _, a := range filtered {
		out = append(out, articleResp{Article: a, CategoryIDs: byArticle[a.ID]})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetArticle handles GET /v1/admin/articles/:id.
func (h *AdminHandler) GetArticle(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.Articles.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	cats, err := h.CategorySvc.CategoriesOf(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, articleResp{Article: a, CategoryIDs: cats})
}

// DeleteArticle handles DELETE /v1/admin/articles/:id.
func (h *AdminHandler) DeleteArticle(c echo.Context) error {
	if err := h.ArticleSvc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == repository.ErrArticleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) categoriesByArticle(c echo.Context) (map[string][]string, error) {
	return h.CategoryMaps.ActiveMap(c.Request().Context())
}
