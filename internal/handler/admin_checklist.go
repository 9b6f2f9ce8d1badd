package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/content"
	"github.com/visapath/content-service/internal/model"
)

// filterChecklistParams narrows a checklist slice by the country, visa,
// tier and q query parameters.  Shared by the admin and public listings.
func filterChecklistParams(c echo.Context, items []*model.Checklist) []*model.Checklist {
	f := content.Filter{
		Destination: upperCode(c.QueryParam("country")),
		Visa:        upperCode(c.QueryParam("visa")),
		Tier:        c.QueryParam("tier"),
		Query:       c.QueryParam("q"),
	}
	return content.FilterChecklists(items, f)
}

// upperCode uppercases a country or visa code while leaving the "all"
// sentinel untouched.
func upperCode(v string) string {
	if v == "" || v == "all" {
		return v
	}
	return strings.ToUpper(v)
}

type checklistReq struct {
	CountryCode      string `json:"country_code"`
	VisaType         string `json:"visa_type"`
	Title            string `json:"title"`
	SubscriptionTier string `json:"subscription_tier"`
}

type checklistItemReq struct {
	Label     string          `json:"label"`
	FieldType string          `json:"field_type"`
	Metadata  json.RawMessage `json:"metadata"`
}

type moveReq struct {
	Direction string `json:"direction"` // "up" or "down"
}

// checklistResp is a checklist together with its ordered items.
type checklistResp struct {
	*model.Checklist
	Items []*model.ChecklistItem `json:"items"`
}

// CreateChecklist handles POST /v1/admin/checklists.  The ordering service
// assigns the per-visa-type sort position.
func (h *AdminHandler) CreateChecklist(c echo.Context) error {
	var req checklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cl, err := model.NewChecklist(req.CountryCode, req.VisaType, req.Title, req.SubscriptionTier)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.OrderingSvc.CreateChecklist(c.Request().Context(), cl); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, cl)
}

// ListChecklists handles GET /v1/admin/checklists with optional country,
// visa, tier and q filters.
func (h *AdminHandler) ListChecklists(c echo.Context) error {
	items, err := h.Checklists.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	filtered := filterChecklistParams(c, items)
	return c.JSON(http.StatusOK, echo.Map{"items": filtered})
}

// GetChecklist handles GET /v1/admin/checklists/:id and includes the
// ordered items.
func (h *AdminHandler) GetChecklist(c echo.Context) error {
	ctx := c.Request().Context()
	cl, err := h.Checklists.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	items, err := h.Items.ListByChecklist(ctx, cl.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, checklistResp{Checklist: cl, Items: items})
}

// UpdateChecklist handles PUT /v1/admin/checklists/:id.  Sort order is not
// editable here; it only moves through the ordering endpoints.
func (h *AdminHandler) UpdateChecklist(c echo.Context) error {
	ctx := c.Request().Context()
	cl, err := h.Checklists.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	var req checklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		cl.Title = t
	}
	if req.SubscriptionTier != "" {
		tier, err := model.ParseSubscriptionTier(req.SubscriptionTier)
		if err != nil {
			return writeErr(c, err)
		}
		cl.SubscriptionTier = tier
	}
	if err := h.Checklists.Update(ctx, cl); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

// DeleteChecklist handles DELETE /v1/admin/checklists/:id; items go first,
// then the checklist row.
func (h *AdminHandler) DeleteChecklist(c echo.Context) error {
	if err := h.OrderingSvc.DeleteChecklist(c.Request().Context(), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AppendChecklistItem handles POST /v1/admin/checklists/:id/items.
func (h *AdminHandler) AppendChecklistItem(c echo.Context) error {
	var req checklistItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	it, err := model.NewChecklistItem("", req.Label, req.FieldType, string(req.Metadata))
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.OrderingSvc.AppendItem(c.Request().Context(), c.Param("id"), it); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// MoveChecklistItem handles POST /v1/admin/checklists/:id/items/:itemID/move.
func (h *AdminHandler) MoveChecklistItem(c echo.Context) error {
	var req moveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	err := h.OrderingSvc.MoveItem(c.Request().Context(), c.Param("id"), c.Param("itemID"), req.Direction)
	if err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateChecklistItem handles PUT /v1/admin/checklists/:id/items/:itemID.
// Label, field type and metadata change; sort order does not.
func (h *AdminHandler) UpdateChecklistItem(c echo.Context) error {
	ctx := c.Request().Context()
	it, err := h.Items.GetByID(ctx, c.Param("itemID"))
	if err != nil {
		return writeErr(c, err)
	}
	var req checklistItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if l := strings.TrimSpace(req.Label); l != "" {
		it.Label = l
	}
	if req.FieldType != "" {
		ft, err := model.ParseFieldType(req.FieldType)
		if err != nil {
			return writeErr(c, err)
		}
		it.FieldType = ft
	}
	if len(req.Metadata) > 0 {
		meta := map[string]any{}
		if err := json.Unmarshal(req.Metadata, &meta); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "metadata must be a valid JSON object", "field": "metadata"})
		}
		it.Metadata = meta
	}
	if err := h.Items.Update(ctx, it); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// DeleteChecklistItem handles DELETE /v1/admin/checklists/:id/items/:itemID.
// Remaining items keep their sort values.
func (h *AdminHandler) DeleteChecklistItem(c echo.Context) error {
	if err := h.OrderingSvc.RemoveItem(c.Request().Context(), c.Param("itemID")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
