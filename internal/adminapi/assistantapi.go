package adminapi

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nochelabs/botilleria/internal/assistant"
	"github.com/nochelabs/botilleria/internal/webserver"
)

func registerAssistantRoutes() {
	webserver.PubPOST("/assistant/chat", assistantChat)
	webserver.PubPOST("/assistant/voucher", assistantVoucher)
	webserver.ApiPOST("/products/image-prompt", productImagePrompt)
}

type chatPayload struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// assistantChat runs one chat turn. Sessions are explicit: the first call
// returns a fresh session id the client carries on subsequent turns.
func assistantChat(c echo.Context) error {
	appCtx := getApp(c)
	if !appCtx.Config().Assistant.Enabled {
		return fail(c, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "El asistente no está disponible", nil)
	}

	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse chat message", nil)
	}
	if strings.TrimSpace(payload.Message) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Message is empty", nil)
	}

	session := appCtx.Sessions().Get(payload.SessionID)
	reply := session.Send(c.Request().Context(), payload.Message)
	return ok(c, map[string]interface{}{
		"sessionId": session.ID,
		"reply":     reply,
	})
}

type voucherPayload struct {
	Image string `json:"image"` // base64, optionally with a data: prefix
}

// assistantVoucher analyzes a transfer receipt photo and returns the
// summary text plus any RUT found in it (best-effort, checksum-validated).
func assistantVoucher(c echo.Context) error {
	appCtx := getApp(c)
	if !appCtx.Config().Assistant.Enabled {
		return fail(c, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "El asistente no está disponible", nil)
	}

	var payload voucherPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse voucher", nil)
	}

	raw := payload.Image
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	img, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(img) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_IMAGE", "Voucher image is not valid base64", nil)
	}

	res := assistant.AnalyzeVoucher(c.Request().Context(), appCtx.Sessions().Generator(), img)
	return ok(c, res)
}

type imagePromptPayload struct {
	Name string `json:"name"`
}

// productImagePrompt is the admin helper that asks the generator for an
// image-generation prompt for a product. One-shot against the generator; no
// chat session is created.
func productImagePrompt(c echo.Context) error {
	appCtx := getApp(c)
	if !appCtx.Config().Assistant.Enabled {
		return fail(c, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "El asistente no está disponible", nil)
	}

	var payload imagePromptPayload
	if err := c.Bind(&payload); err != nil || strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product name is required", nil)
	}

	prompt := assistant.ImagePrompt(c.Request().Context(), appCtx.Sessions().Generator(), payload.Name)
	return ok(c, map[string]interface{}{"prompt": prompt})
}
