package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

type visaTypeReq struct {
	CountryCode string `json:"country_code"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateVisaType handles POST /v1/admin/visa-types.  A non-empty country
// code must reference an existing destination country.
func (h *AdminHandler) CreateVisaType(c echo.Context) error {
	var req visaTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	v, err := model.NewVisaType(req.CountryCode, req.Code, req.Title, req.Description)
	if err != nil {
		return writeErr(c, err)
	}
	ctx := c.Request().Context()
	if v.CountryCode != nil {
		if _, err := h.Destinations.GetByCode(ctx, *v.CountryCode); err != nil {
			if err == repository.ErrCountryNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown destination country"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	if err := h.VisaTypes.Create(ctx, v); err != nil {
		if err == repository.ErrSlugExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "visa type code already exists"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// ListVisaTypes handles GET /v1/admin/visa-types, inactive rows included.
func (h *AdminHandler) ListVisaTypes(c echo.Context) error {
	items, err := h.VisaTypes.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateVisaType handles PUT /v1/admin/visa-types/:id.  The code and
// country are immutable once articles may reference them; only the display
// fields and active flag change.
func (h *AdminHandler) UpdateVisaType(c echo.Context) error {
	ctx := c.Request().Context()
	v, err := h.VisaTypes.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	var req visaTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		v.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		v.Description = &d
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.VisaTypes.Update(ctx, v); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
