package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/content"
	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

type categoryReq struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCategory handles POST /v1/admin/categories.  The slug is derived
// from the title when omitted and checked for uniqueness before the insert.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	slug := content.Slugify(req.Slug)
	if slug == "" {
		slug = content.Slugify(req.Title)
	}
	cat, err := model.NewArticleCategory(slug, req.Title, req.Description, req.SortOrder)
	if err != nil {
		return writeErr(c, err)
	}

	ctx := c.Request().Context()
	taken, err := h.Categories.SlugTaken(ctx, cat.Slug, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
	}
	if err := h.Categories.Create(ctx, cat); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

// ListCategories handles GET /v1/admin/categories, inactive rows included.
func (h *AdminHandler) ListCategories(c echo.Context) error {
	items, err := h.Categories.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateCategory handles PUT /v1/admin/categories/:id.  A slug change is
// re-normalized and re-checked for uniqueness against other rows.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	cat, err := h.Categories.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		cat.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		cat.Description = &d
	}
	if req.SortOrder != nil {
		cat.SortOrder = req.SortOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if s := content.Slugify(req.Slug); s != "" && s != cat.Slug {
		taken, err := h.Categories.SlugTaken(ctx, s, cat.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		cat.Slug = s
	}
	if err := h.Categories.Update(ctx, cat); err != nil {
		if err == repository.ErrSlugExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}
