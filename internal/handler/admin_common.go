package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
	"github.com/visapath/content-service/internal/service"
)

// AdminHandler bundles the repositories and services backing the back
// office under /v1/admin.
type AdminHandler struct {
	Articles     *repository.ArticleRepo
	Destinations *repository.CountryRepo
	Origins      *repository.CountryRepo
	VisaTypes    *repository.VisaTypeRepo
	Categories   *repository.CategoryRepo
	Checklists   *repository.ChecklistRepo
	Items        *repository.ChecklistItemRepo
	CategoryMaps *repository.ArticleCategoryMapRepo

	ArticleSvc  *service.Articles
	CategorySvc *service.CategoryAssignments
	OrderingSvc *service.ChecklistOrdering
	Images      imageStore
}

// imageStore is the slice of the storage layer the upload handler needs.
type imageStore interface {
	SaveArticleCover(slug, filename string, r io.Reader) (string, error)
}

// getUserID extracts the user_id claim placed in context by the JWT
// middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// writeErr maps the error taxonomy onto HTTP responses:
//
//	ValidationError      -> 400 with the offending field
//	ErrSlugExists        -> 409
//	not-found sentinels  -> 404
//	PartialFailureError  -> 500 with the operation and failed step, so the
//	                        caller knows the write is half-applied
//	anything else        -> 500 generic
func writeErr(c echo.Context, err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	}
	if errors.Is(err, repository.ErrSlugExists) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
	}
	if errors.Is(err, service.ErrInvalidDirection) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	for _, nf := range []error{
		repository.ErrCountryNotFound,
		repository.ErrVisaTypeNotFound,
		repository.ErrCategoryNotFound,
		repository.ErrArticleNotFound,
		repository.ErrChecklistNotFound,
		repository.ErrItemNotFound,
	} {
		if errors.Is(err, nf) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
		}
	}
	var pf *service.PartialFailureError
	if errors.As(err, &pf) {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "operation partially applied",
			"op":      pf.Op,
			"step":    pf.Step,
			"details": pf.Err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
