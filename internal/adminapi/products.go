package adminapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nochelabs/botilleria/internal/domain"
	"github.com/nochelabs/botilleria/internal/webserver"
)

type productPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// registerProductRoutes registers the admin product CRUD endpoints. All
// writes go through the catalog facade so the dual remote/local policy
// applies uniformly.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	category := strings.TrimSpace(c.QueryParam("category"))

	rows := getApp(c).Catalog().LoadProducts(c.Request().Context())

	filtered := rows[:0:0]
	for _, p := range rows {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		filtered = append(filtered, p)
	}

	// stable listing order for the admin table
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return paged(c, filtered[start:end], total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id := c.Param("id")
	rows := getApp(c).Catalog().LoadProducts(c.Request().Context())
	for _, p := range rows {
		if p.ID == id {
			return ok(c, p)
		}
	}
	return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
}

func validateProductPayload(payload *productPayload) (string, bool) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return "Name is required", false
	}
	if payload.Price < 0 {
		return "Price must be >= 0", false
	}
	if payload.Stock < 0 {
		return "Stock must be >= 0", false
	}
	if payload.Category != "" && !domain.ValidCategory(payload.Category) {
		return "Unknown category", false
	}
	return "", true
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p := domain.NewProduct("", payload.Name, payload.Description,
		payload.Price, payload.Stock, payload.Category, payload.ImageURL)

	appCtx := getApp(c)
	if err := appCtx.Catalog().SaveProduct(c.Request().Context(), p); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save product", err.Error())
	}
	appCtx.Audit("master", c.RealIP(), "product_create", p.ID+" "+p.Name)
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id := c.Param("id")
	appCtx := getApp(c)

	var current *domain.Product
	for _, p := range appCtx.Catalog().LoadProducts(c.Request().Context()) {
		if p.ID == id {
			cp := p
			current = &cp
			break
		}
	}
	if current == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	// identity preserved; fields replaced in place
	current.Name = payload.Name
	current.Description = payload.Description
	current.Price = payload.Price
	current.Stock = payload.Stock
	if payload.Category != "" {
		current.Category = payload.Category
	}
	if payload.ImageURL != "" {
		current.ImageURL = payload.ImageURL
	}
	current.UpdatedAt = time.Now()

	if err := appCtx.Catalog().SaveProduct(c.Request().Context(), *current); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save product", err.Error())
	}
	appCtx.Audit("master", c.RealIP(), "product_update", current.ID+" "+current.Name)
	return ok(c, current)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	appCtx := getApp(c)
	if err := appCtx.Catalog().DeleteProduct(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete product", err.Error())
	}
	appCtx.Audit("master", c.RealIP(), "product_delete", id)
	return ok(c, map[string]interface{}{"id": id})
}
