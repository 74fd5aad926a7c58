package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nochelabs/botilleria/internal/domain"
	"github.com/nochelabs/botilleria/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", getSettings)
	webserver.ApiPUT("/settings", saveSettings)
	webserver.ApiPOST("/settings/reset", resetDatabase)
}

func getSettings(c echo.Context) error {
	cfg := getApp(c).Catalog().LoadConfig(c.Request().Context())
	return ok(c, cfg)
}

type settingsPayload struct {
	StoreName      string `json:"storeName"`
	WhatsAppNumber string `json:"whatsappNumber"`
	BankName       string `json:"bankName"`
	BankAccount    string `json:"bankAccount"`
	BankRUT        string `json:"bankRut"`
	BankEmail      string `json:"bankEmail"`
	AdminPassword  string `json:"adminPassword"`
}

// saveSettings overwrites the store configuration wholesale.
func saveSettings(c echo.Context) error {
	var payload settingsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	if strings.TrimSpace(payload.StoreName) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Store name is required", nil)
	}
	if strings.TrimSpace(payload.WhatsAppNumber) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "WhatsApp number is required", nil)
	}

	appCtx := getApp(c)
	cfg := domain.StoreConfig{
		ID:             domain.StoreConfigID,
		StoreName:      strings.TrimSpace(payload.StoreName),
		WhatsAppNumber: strings.TrimSpace(payload.WhatsAppNumber),
		BankName:       payload.BankName,
		BankAccount:    payload.BankAccount,
		BankRUT:        payload.BankRUT,
		BankEmail:      payload.BankEmail,
		AdminPassword:  payload.AdminPassword,
	}
	if cfg.AdminPassword == "" {
		// keep the previous passphrase when the form leaves it blank
		cfg.AdminPassword = appCtx.Catalog().LoadConfig(c.Request().Context()).AdminPassword
	}

	if err := appCtx.Catalog().SaveConfig(c.Request().Context(), cfg); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save settings", err.Error())
	}
	appCtx.Audit("master", c.RealIP(), "settings_save", cfg.StoreName)
	return ok(c, cfg)
}

// resetDatabase clears the local cache for products and config. Remote
// state is untouched; the next load repopulates (or reseeds) the cache.
// Deliberately destructive, confirmation-gated in the UI.
func resetDatabase(c echo.Context) error {
	appCtx := getApp(c)
	if err := appCtx.Catalog().ResetLocal(); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to reset local cache", err.Error())
	}
	appCtx.Audit("master", c.RealIP(), "database_reset", "local cache cleared")

	// force the reload so the caller immediately sees the restored catalog
	rows := appCtx.Catalog().LoadProducts(c.Request().Context())
	return ok(c, map[string]interface{}{"products": len(rows)})
}
