// internal/api/v2/catalog.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/catalog"
)

// initCatalogRoutes registers the treatment catalog endpoints
func (c *Controller) initCatalogRoutes() {
	c.Group.GET("/catalog", c.SearchCatalog)
	c.Group.GET("/catalog/categories", c.GetCatalogCategories)
	c.Group.GET("/catalog/:code", c.GetCatalogEntry)
}

// CatalogEntryResponse represents a catalog entry in the API response
type CatalogEntryResponse struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Sigla          string `json:"sigla"`
	Category       string `json:"category"`
	Icon           string `json:"icon"`
	AllowsExisting bool   `json:"allowsExisting"`
	AllowsPlanned  bool   `json:"allowsPlanned"`
}

func toCatalogResponse(e *catalog.Entry) CatalogEntryResponse {
	return CatalogEntryResponse{
		Code:           e.Code,
		Name:           e.Name,
		Sigla:          e.Sigla,
		Category:       string(e.Category),
		Icon:           e.Icon,
		AllowsExisting: e.AllowsExisting,
		AllowsPlanned:  e.AllowsPlanned,
	}
}

// SearchCatalog handles GET /catalog with free text and category filters
func (c *Controller) SearchCatalog(ctx echo.Context) error {
	query := ctx.QueryParam("query")
	category := ctx.QueryParam("category")
	if category == "" {
		category = string(catalog.CategoryAll)
	}

	entries := catalog.Search(query, catalog.Category(category))

	results := make([]CatalogEntryResponse, 0, len(entries))
	for i := range entries {
		results = append(results, toCatalogResponse(&entries[i]))
	}

	return ctx.JSON(http.StatusOK, results)
}

// GetCatalogCategories handles GET /catalog/categories
func (c *Controller) GetCatalogCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, catalog.Categories())
}

// GetCatalogEntry handles GET /catalog/:code
func (c *Controller) GetCatalogEntry(ctx echo.Context) error {
	code := ctx.Param("code")
	entry, ok := catalog.FindByCode(code)
	if !ok {
		return c.HandleError(ctx, nil, "Catalog entry not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, toCatalogResponse(&entry))
}
