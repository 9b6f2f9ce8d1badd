package router

import (
	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/handler"
	"github.com/visapath/content-service/internal/middleware"
)

// RegisterAdmin wires the back-office surface under /v1/admin.  Every route
// in the group requires a valid access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/me", a.Me)

	// Articles
	g.POST("/articles", h.CreateArticle)
	g.GET("/articles", h.ListArticles)
	g.GET("/articles/:id", h.GetArticle)
	g.PUT("/articles/:id", h.UpdateArticle)
	g.PATCH("/articles/:id", h.PatchArticle)
	g.DELETE("/articles/:id", h.DeleteArticle)
	g.POST("/uploads/article-cover", h.UploadCover)

	// Country pools: :pool is "destinations" or "origins"
	g.POST("/countries/:pool", h.CreateCountry)
	g.GET("/countries/:pool", h.ListCountries)
	g.PUT("/countries/:pool/:code", h.UpdateCountry)

	// Visa types
	g.POST("/visa-types", h.CreateVisaType)
	g.GET("/visa-types", h.ListVisaTypes)
	g.PUT("/visa-types/:id", h.UpdateVisaType)

	// Categories
	g.POST("/categories", h.CreateCategory)
	g.GET("/categories", h.ListCategories)
	g.PUT("/categories/:id", h.UpdateCategory)

	// Checklists and their ordered items
	g.POST("/checklists", h.CreateChecklist)
	g.GET("/checklists", h.ListChecklists)
	g.GET("/checklists/:id", h.GetChecklist)
	g.PUT("/checklists/:id", h.UpdateChecklist)
	g.DELETE("/checklists/:id", h.DeleteChecklist)
	g.POST("/checklists/:id/items", h.AppendChecklistItem)
	g.PUT("/checklists/:id/items/:itemID", h.UpdateChecklistItem)
	g.POST("/checklists/:id/items/:itemID/move", h.MoveChecklistItem)
	g.DELETE("/checklists/:id/items/:itemID", h.DeleteChecklistItem)
}
