// Package adminapi is the HTTP API layer: the admin CRUD panel plus the
// public storefront endpoints (catalog, delivery check, checkout, assistant).
package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nochelabs/botilleria/internal/app"
	"github.com/nochelabs/botilleria/internal/webserver"
)

// RegisterRoutes wires every endpoint of the API layer.
func RegisterRoutes() {
	registerAuthRoutes()
	registerProductRoutes()
	registerSettingsRoutes()
	registerStorefrontRoutes()
	registerAssistantRoutes()
}

func getApp(c echo.Context) app.AppContext {
	return webserver.GetAppCtx(c)
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": apiError{Code: code, Message: message, Details: details},
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":    rows,
		"total":   total,
		"page":    page,
		"perPage": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
