package checkout

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nochelabs/botilleria/internal/cart"
	"github.com/nochelabs/botilleria/internal/domain"
	"github.com/nochelabs/botilleria/internal/geolocate"
)

func testStore() domain.StoreConfig {
	return domain.StoreConfig{
		StoreName:      "SALVANDO LA NOCHE",
		WhatsAppNumber: "56928973426",
	}
}

func testCart() *cart.Ledger {
	l := &cart.Ledger{}
	corona := domain.Product{ID: "2", Name: "Corona Pack", Price: 15000}
	ice := domain.Product{ID: "6", Name: "Ice 2kg", Price: 1500}
	l.Add(corona)
	l.Add(corona)
	l.Add(ice)
	return l
}

func eligibleGate(t *testing.T) *Gate {
	t.Helper()
	g := NewGate(storePoint, geolocate.Static{Point: nearPoint})
	require.NoError(t, g.EnterAddress("Av. Siempre Viva 742"))
	require.NoError(t, g.Check(context.Background()))
	require.True(t, g.Eligible())
	return g
}

func TestComposeCashPickup(t *testing.T) {
	tendered := int64(35000)
	order, err := Compose(Request{
		Customer:     "Pedro",
		Store:        testStore(),
		Cart:         testCart(),
		Payment:      PaymentCash,
		CashTendered: &tendered,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(31500), order.Subtotal)
	assert.Equal(t, int64(31500), order.Total)
	assert.Zero(t, order.DeliveryFee)
	require.NotNil(t, order.Change)
	assert.Equal(t, int64(3500), *order.Change)

	assert.Contains(t, order.Message, "2x Corona Pack ($15.000)")
	assert.Contains(t, order.Message, "1x Ice 2kg ($1.500)")
	assert.Contains(t, order.Message, "*Total: $31.500*")
	assert.Contains(t, order.Message, "Vuelto: $3.500")
	assert.Contains(t, order.Message, "Retiro en tienda")
}

func TestComposeWithDeliveryFee(t *testing.T) {
	tendered := int64(50000)
	order, err := Compose(Request{
		Customer:     "Pedro",
		Store:        testStore(),
		Cart:         testCart(),
		Delivery:     true,
		Gate:         eligibleGate(t),
		Payment:      PaymentCash,
		CashTendered: &tendered,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(31500), order.Subtotal)
	assert.Equal(t, DeliveryFee, order.DeliveryFee)
	assert.Equal(t, int64(41500), order.Total)
	assert.Contains(t, order.Message, "Despacho a: Av. Siempre Viva 742")
	assert.Contains(t, order.Message, "*Total: $41.500*")
}

func TestComposeCashExactPayment(t *testing.T) {
	order, err := Compose(Request{
		Customer: "Ana",
		Store:    testStore(),
		Cart:     testCart(),
		Payment:  PaymentCash,
	})
	require.NoError(t, err)
	assert.Nil(t, order.Change)
	assert.Contains(t, order.Message, "monto justo")
}

func TestComposeTransferVoucherVerbatim(t *testing.T) {
	analysis := "✅ Transferencia Detectada: Banco Estado -> Santander. Monto: $31.500."
	order, err := Compose(Request{
		Customer:        "Ana",
		Store:           testStore(),
		Cart:            testCart(),
		Payment:         PaymentTransfer,
		VoucherAnalysis: analysis,
	})
	require.NoError(t, err)
	assert.Contains(t, order.Message, analysis)
}

func TestComposeTransferPlaceholder(t *testing.T) {
	order, err := Compose(Request{
		Customer: "Ana",
		Store:    testStore(),
		Cart:     testCart(),
		Payment:  PaymentTransfer,
	})
	require.NoError(t, err)
	assert.Contains(t, order.Message, "envío el comprobante por este chat")
}

func TestComposeValidationFailures(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		_, err := Compose(Request{Customer: "x", Store: testStore(), Cart: &cart.Ledger{}, Payment: PaymentCash})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("no payment method", func(t *testing.T) {
		_, err := Compose(Request{Customer: "x", Store: testStore(), Cart: testCart()})
		assert.ErrorIs(t, err, ErrNoPayment)
	})

	t.Run("insufficient cash", func(t *testing.T) {
		tendered := int64(30000)
		_, err := Compose(Request{
			Customer: "x", Store: testStore(), Cart: testCart(),
			Payment: PaymentCash, CashTendered: &tendered,
		})
		assert.ErrorIs(t, err, ErrInsufficientCash)
	})

	t.Run("cash covering subtotal but not the delivery fee", func(t *testing.T) {
		tendered := int64(35000) // subtotal 31500 + fee 10000 = 41500
		_, err := Compose(Request{
			Customer: "x", Store: testStore(), Cart: testCart(),
			Delivery: true, Gate: eligibleGate(t),
			Payment: PaymentCash, CashTendered: &tendered,
		})
		assert.ErrorIs(t, err, ErrInsufficientCash)
	})

	t.Run("delivery without completed check", func(t *testing.T) {
		g := NewGate(storePoint, geolocate.Static{Point: nearPoint})
		require.NoError(t, g.EnterAddress("Av. Siempre Viva 742"))
		_, err := Compose(Request{
			Customer: "x", Store: testStore(), Cart: testCart(),
			Delivery: true, Gate: g, Payment: PaymentTransfer,
		})
		assert.ErrorIs(t, err, ErrDeliveryNotConfirmed)
	})

	t.Run("delivery with failed check", func(t *testing.T) {
		g := NewGate(storePoint, failingProvider{})
		require.NoError(t, g.EnterAddress("Av. Siempre Viva 742"))
		_ = g.Check(context.Background())
		_, err := Compose(Request{
			Customer: "x", Store: testStore(), Cart: testCart(),
			Delivery: true, Gate: g, Payment: PaymentTransfer,
		})
		assert.ErrorIs(t, err, ErrDeliveryNotConfirmed)
	})
}

func TestDeepLinkEncoding(t *testing.T) {
	order, err := Compose(Request{
		Customer: "Pedro",
		Store:    testStore(),
		Cart:     testCart(),
		Payment:  PaymentTransfer,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(order.DeepLink, "https://wa.me/56928973426?text="))

	u, err := url.Parse(order.DeepLink)
	require.NoError(t, err)
	decoded := u.Query().Get("text")
	assert.Equal(t, order.Message, decoded)
}

func TestFormatCLP(t *testing.T) {
	assert.Equal(t, "$1.500", FormatCLP(1500))
	assert.Equal(t, "$31.500", FormatCLP(31500))
	assert.Equal(t, "$0", FormatCLP(0))
	assert.Equal(t, "$999", FormatCLP(999))
}
