package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

// metaResp bundles every catalogue the public site needs to render its
// filter controls in one response.
type metaResp struct {
	Destinations []*model.Country         `json:"destinations"`
	Origins      []*model.Country         `json:"origins"`
	VisaTypes    []*model.VisaType        `json:"visa_types"`
	Categories   []*model.ArticleCategory `json:"categories"`
}

// GetMeta handles GET /v1/meta.  The four catalogues are independent, so
// they are fetched concurrently; the first error cancels the rest.
func (h *PublicHandler) GetMeta(c echo.Context) error {
	var resp metaResp
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		resp.Destinations, err = h.Destinations.ListActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Origins, err = h.Origins.ListActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.VisaTypes, err = h.VisaTypes.ListActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Categories, err = h.Categories.ListActive(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetDestinations handles GET /v1/destinations.
func (h *PublicHandler) GetDestinations(c echo.Context) error {
	return h.listCountries(c, h.Destinations)
}

// GetOrigins handles GET /v1/origins.
func (h *PublicHandler) GetOrigins(c echo.Context) error {
	return h.listCountries(c, h.Origins)
}

func (h *PublicHandler) listCountries(c echo.Context, repo *repository.CountryRepo) error {
	items, err := repo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetVisaTypes handles GET /v1/visa-types with an optional country query
// parameter narrowing to one destination (country-less types included).
func (h *PublicHandler) GetVisaTypes(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		items []*model.VisaType
		err   error
	)
	if country := upperCode(c.QueryParam("country")); country != "" && country != "all" {
		items, err = h.VisaTypes.ListActiveByCountry(ctx, country)
	} else {
		items, err = h.VisaTypes.ListActive(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCategories handles GET /v1/categories.
func (h *PublicHandler) GetCategories(c echo.Context) error {
	items, err := h.Categories.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// publicChecklist is a checklist with its ordered items inlined.
type publicChecklist struct {
	*model.Checklist
	Items []*model.ChecklistItem `json:"items"`
}

// GetChecklists handles GET /v1/checklists.  Filtering runs on the country,
// visa, tier and q parameters; each surviving checklist carries its items
// in sort order.
func (h *PublicHandler) GetChecklists(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Checklists.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	filtered := filterChecklistParams(c, items)

	out := make([]publicChecklist, 0, len(filtered))
	for _, cl := range filtered {
		steps, err := h.Items.ListByChecklist(ctx, cl.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		out = append(out, publicChecklist{Checklist: cl, Items: steps})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
