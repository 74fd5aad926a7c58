package adminapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/internal/webserver"
)

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", adminLogin)
}

type loginPayload struct {
	Password string `json:"password"`
}

// adminLogin checks the shared admin passphrase and issues a session token.
// The passphrase comparison is plain string equality against the stored
// config value; no hashing or lockout. Known weakness, kept as-is.
func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", nil)
	}

	appCtx := getApp(c)
	storeCfg := appCtx.Catalog().LoadConfig(c.Request().Context())

	if payload.Password == "" || payload.Password != storeCfg.AdminPassword {
		zap.L().Warn("admin login rejected", zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "INVALID_PASSWORD", "Clave incorrecta", nil)
	}

	claims := jwt.RegisteredClaims{
		Subject:   "master",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(appCtx.Config().Web.JwtSecret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", nil)
	}

	appCtx.Audit("master", c.RealIP(), "login", "admin session opened")
	return ok(c, map[string]interface{}{"token": signed})
}
