package adminapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nochelabs/botilleria/internal/app"
	"github.com/nochelabs/botilleria/internal/cart"
	"github.com/nochelabs/botilleria/internal/checkout"
	"github.com/nochelabs/botilleria/internal/domain"
	"github.com/nochelabs/botilleria/internal/geolocate"
	"github.com/nochelabs/botilleria/internal/webserver"
	"github.com/nochelabs/botilleria/pkg/geo"
)

func registerStorefrontRoutes() {
	webserver.PubGET("/catalog", listCatalog)
	webserver.PubGET("/categories", listCategories)
	webserver.PubPOST("/delivery/check", checkDelivery)
	webserver.PubPOST("/checkout", composeCheckout)
}

// listCatalog is the customer-facing product listing with category and
// name-search filters. It never fails; worst case it serves the built-in
// catalog.
func listCatalog(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	category := strings.TrimSpace(c.QueryParam("category"))

	rows := getApp(c).Catalog().LoadProducts(c.Request().Context())

	filtered := rows[:0:0]
	for _, p := range rows {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != "" && category != "Todos" && !strings.EqualFold(p.Category, category) {
			continue
		}
		filtered = append(filtered, p)
	}
	return ok(c, filtered)
}

func listCategories(c echo.Context) error {
	return ok(c, domain.Categories)
}

type deliveryPayload struct {
	Address string     `json:"address"`
	Coords  *geo.Point `json:"coords,omitempty"` // browser-supplied position, if any
}

type deliveryResult struct {
	State    string  `json:"state"`
	Distance float64 `json:"distance_km,omitempty"`
	Fee      int64   `json:"fee"`
	Eligible bool    `json:"eligible"`
	Message  string  `json:"message"`
}

// newGate builds a gate against the store location, preferring the
// browser-supplied coordinates over the configured IP-geolocation provider.
func newGate(appCtx app.AppContext, coords *geo.Point) *checkout.Gate {
	store := geo.Point{
		Lat: appCtx.Config().Location.Lat,
		Lng: appCtx.Config().Location.Lng,
	}
	var provider geolocate.Provider = appCtx.Geo()
	if coords != nil {
		provider = geolocate.Static{Point: *coords}
	}
	return checkout.NewGate(store, provider)
}

func runDeliveryCheck(ctx context.Context, gate *checkout.Gate, address string) (deliveryResult, error) {
	if err := gate.EnterAddress(address); err != nil {
		return deliveryResult{}, err
	}
	checkErr := gate.Check(ctx)

	res := deliveryResult{
		State:    gate.State().String(),
		Distance: gate.Distance(),
		Fee:      gate.Fee(),
		Eligible: gate.Eligible(),
	}
	switch gate.State() {
	case checkout.StateEligible:
		res.Message = "Despacho disponible, a " + checkout.FormatKm(gate.Distance()) + " de la tienda."
	case checkout.StateIneligible:
		res.Message = "Estás a " + checkout.FormatKm(gate.Distance()) +
			", fuera de nuestro radio de despacho de " + checkout.FormatKm(checkout.MaxRadiusKm) + "."
	case checkout.StateCheckFailed:
		res.Message = "No pudimos obtener tu ubicación. Intenta de nuevo o elige retiro en tienda."
	}
	_ = checkErr // reflected in the state; the response is always 200
	return res, nil
}

// checkDelivery runs a standalone eligibility check for the storefront UI.
func checkDelivery(c echo.Context) error {
	var payload deliveryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse delivery check", nil)
	}

	gate := newGate(getApp(c), payload.Coords)
	res, err := runDeliveryCheck(c.Request().Context(), gate, payload.Address)
	if err != nil {
		return fail(c, http.StatusBadRequest, "EMPTY_ADDRESS", "Ingresa una dirección para el despacho", nil)
	}
	return ok(c, res)
}

type checkoutItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type checkoutPayload struct {
	Customer string         `json:"customer"`
	Items    []checkoutItem `json:"items"`

	Delivery bool       `json:"delivery"`
	Address  string     `json:"address"`
	Coords   *geo.Point `json:"coords,omitempty"`

	Payment         string `json:"payment"` // "cash" | "transfer"
	CashTendered    *int64 `json:"cashTendered,omitempty"`
	VoucherAnalysis string `json:"voucherAnalysis,omitempty"`
}

type checkoutResult struct {
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"deliveryFee"`
	Total       int64  `json:"total"`
	Change      *int64 `json:"change,omitempty"`
	Message     string `json:"message"`
	DeepLink    string `json:"deepLink"`
}

// composeCheckout rebuilds the cart against the server-side catalog (client
// prices are never trusted), runs the delivery gate when requested, and
// composes the WhatsApp deep-link. Validation failures come back as 422
// with the violated precondition.
func composeCheckout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout", nil)
	}
	if strings.TrimSpace(payload.Customer) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Customer name is required", nil)
	}

	appCtx := getApp(c)
	ctx := c.Request().Context()

	byID := make(map[string]domain.Product)
	for _, p := range appCtx.Catalog().LoadProducts(ctx) {
		byID[p.ID] = p
	}

	ledger := &cart.Ledger{}
	for _, it := range payload.Items {
		if it.Quantity <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be positive for product: "+it.ID, nil)
		}
		p, found := byID[it.ID]
		if !found {
			return fail(c, http.StatusBadRequest, "UNKNOWN_PRODUCT", "Unknown product: "+it.ID, nil)
		}
		for n := 0; n < it.Quantity; n++ {
			ledger.Add(p)
		}
	}

	var gate *checkout.Gate
	if payload.Delivery {
		gate = newGate(appCtx, payload.Coords)
		if _, err := runDeliveryCheck(ctx, gate, payload.Address); err != nil {
			return fail(c, http.StatusUnprocessableEntity, "EMPTY_ADDRESS", "Ingresa una dirección para el despacho", nil)
		}
	}

	req := checkout.Request{
		Customer:        strings.TrimSpace(payload.Customer),
		Store:           appCtx.Catalog().LoadConfig(ctx),
		Cart:            ledger,
		Delivery:        payload.Delivery,
		Gate:            gate,
		Payment:         checkout.PaymentMethod(payload.Payment),
		CashTendered:    payload.CashTendered,
		VoucherAnalysis: payload.VoucherAnalysis,
	}

	order, err := checkout.Compose(req)
	if err != nil {
		return fail(c, http.StatusUnprocessableEntity, "CHECKOUT_BLOCKED", err.Error(), nil)
	}

	return ok(c, checkoutResult{
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		Change:      order.Change,
		Message:     order.Message,
		DeepLink:    order.DeepLink,
	})
}
