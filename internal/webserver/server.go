// Package webserver hosts the echo instance and route registration helpers.
// Admin routes live behind the JWT middleware; storefront routes are public.
package webserver

import (
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/internal/app"
)

var server *WebServer

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group // /api: storefront, no auth
	admin  *echo.Group // /api/admin: JWT protected
}

// Init builds the web server. Route registration happens afterwards through
// the package-level helpers.
func Init(appCtx app.AppContext) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	pub := e.Group("/api")
	admin := e.Group("/api/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.JwtSecret),
	}))

	server = &WebServer{appCtx: appCtx, root: e, pub: pub, admin: admin}
}

// AppContextKey is where the application context lives in the echo context.
const AppContextKey = "appctx"

// GetAppCtx retrieves the application context injected by the middleware.
func GetAppCtx(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Status >= http.StatusInternalServerError {
				zap.L().Error("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status))
			} else {
				zap.L().Debug("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status))
			}
			return nil
		},
	})
}

// Start blocks serving HTTP on the configured address.
func Start() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Instance exposes the echo root, for tests.
func Instance() *echo.Echo {
	return server.root
}

// Public (storefront) routes.

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// Admin (JWT protected) routes.

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.DELETE(path, h, m...)
}
