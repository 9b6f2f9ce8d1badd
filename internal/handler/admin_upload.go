package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/content"
)

const maxCoverBytes = 10 << 20 // 10 MiB

// UploadCover handles POST /v1/admin/uploads/article-cover.  It accepts a
// multipart form with an "image" file and a "slug" field and returns the
// public URL of the stored file.  The article row is not touched; the
// admin form submits the returned URL with the next article save.
func (h *AdminHandler) UploadCover(c echo.Context) error {
	slug := content.Slugify(c.FormValue("slug"))
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug is required", "field": "slug"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required", "field": "image"})
	}
	if fh.Size > maxCoverBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	url, err := h.Images.SaveArticleCover(slug, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
