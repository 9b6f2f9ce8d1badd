package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

// The destination and origin country pools share one handler set; the pool
// is selected by the :pool path segment.
func (h *AdminHandler) countryRepo(c echo.Context) *repository.CountryRepo {
	if strings.EqualFold(c.Param("pool"), "origins") {
		return h.Origins
	}
	return h.Destinations
}

func validPool(c echo.Context) bool {
	p := strings.ToLower(c.Param("pool"))
	return p == "destinations" || p == "origins"
}

type countryReq struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// CreateCountry handles POST /v1/admin/countries/:pool.
func (h *AdminHandler) CreateCountry(c echo.Context) error {
	if !validPool(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown country pool"})
	}
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	country, err := model.NewCountry(req.Code, req.Name)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.countryRepo(c).Create(c.Request().Context(), country); err != nil {
		if err == repository.ErrSlugExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "country code already exists"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, country)
}

// ListCountries handles GET /v1/admin/countries/:pool and returns all rows,
// inactive ones included, so the back office can reactivate them.
func (h *AdminHandler) ListCountries(c echo.Context) error {
	if !validPool(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown country pool"})
	}
	items, err := h.countryRepo(c).ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateCountry handles PUT /v1/admin/countries/:pool/:code.  The code is
// immutable; name and active flag can change.
func (h *AdminHandler) UpdateCountry(c echo.Context) error {
	if !validPool(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown country pool"})
	}
	ctx := c.Request().Context()
	repo := h.countryRepo(c)
	country, err := repo.GetByCode(ctx, strings.ToUpper(c.Param("code")))
	if err != nil {
		return writeErr(c, err)
	}
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		country.Name = name
	}
	if req.IsActive != nil {
		country.IsActive = *req.IsActive
	}
	if err := repo.Update(ctx, country); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, country)
}
