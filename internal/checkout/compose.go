package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/nochelabs/botilleria/internal/cart"
	"github.com/nochelabs/botilleria/internal/domain"
)

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Validation failures. Each one blocks order submission; none of them ever
// produces a malformed message.
var (
	ErrEmptyCart            = errors.New("checkout: cart is empty")
	ErrNoPayment            = errors.New("checkout: payment method not chosen")
	ErrInsufficientCash     = errors.New("checkout: tendered cash does not cover the total")
	ErrDeliveryNotConfirmed = errors.New("checkout: delivery requested but eligibility not confirmed")
)

// Request carries everything the composer needs: the cart, the delivery
// gate, the payment choice and the customer identity.
type Request struct {
	Customer string
	Store    domain.StoreConfig
	Cart     *cart.Ledger

	Delivery bool
	Gate     *Gate // consulted only when Delivery is set

	Payment         PaymentMethod
	CashTendered    *int64 // nil means "exact payment expected"
	VoucherAnalysis string // transfer only; embedded verbatim when present
}

// Order is the ephemeral checkout result. It is handed to the messaging
// deep-link and not retained.
type Order struct {
	Lines       []cart.Item
	Subtotal    int64
	DeliveryFee int64
	Total       int64
	Change      *int64 // cash with tendered amount only

	Message  string
	DeepLink string
}

// Validate checks the submission preconditions: a chosen payment method,
// cash covering the total, and a confirmed-eligible delivery with a
// non-empty address when delivery is requested.
func Validate(req Request) error {
	if req.Cart == nil || req.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if req.Payment != PaymentCash && req.Payment != PaymentTransfer {
		return ErrNoPayment
	}
	if req.Delivery {
		if req.Gate == nil || !req.Gate.Eligible() {
			return ErrDeliveryNotConfirmed
		}
		if strings.TrimSpace(req.Gate.Address()) == "" {
			return ErrEmptyAddress
		}
	}
	if req.Payment == PaymentCash && req.CashTendered != nil {
		if *req.CashTendered < totalFor(req) {
			return ErrInsufficientCash
		}
	}
	return nil
}

func totalFor(req Request) int64 {
	total := req.Cart.Total()
	if req.Delivery && req.Gate != nil && req.Gate.Eligible() {
		total += DeliveryFee
	}
	return total
}

// Compose validates the request and builds the order summary, the
// human-readable message and the WhatsApp deep-link.
func Compose(req Request) (*Order, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	order := &Order{
		Lines:    req.Cart.Items(),
		Subtotal: req.Cart.Total(),
	}
	if req.Delivery && req.Gate.Eligible() {
		order.DeliveryFee = DeliveryFee
	}
	order.Total = order.Subtotal + order.DeliveryFee

	var b strings.Builder
	fmt.Fprintf(&b, "Hola *%s*, soy %s. Quiero pedir:\n", req.Store.StoreName, req.Customer)
	for _, it := range order.Lines {
		fmt.Fprintf(&b, "- %dx %s (%s)\n", it.Quantity, it.Product.Name, FormatCLP(it.Product.Price))
	}

	if order.DeliveryFee > 0 {
		fmt.Fprintf(&b, "\nSubtotal: %s\nDespacho: %s\n*Total: %s*\n",
			FormatCLP(order.Subtotal), FormatCLP(order.DeliveryFee), FormatCLP(order.Total))
	} else {
		fmt.Fprintf(&b, "\n*Total: %s*\n", FormatCLP(order.Total))
	}

	b.WriteString("\n")
	if req.Delivery {
		fmt.Fprintf(&b, "🚚 Despacho a: %s (a %s de la tienda)\n",
			req.Gate.Address(), FormatKm(req.Gate.Distance()))
	} else {
		b.WriteString("🏪 Retiro en tienda\n")
	}

	switch req.Payment {
	case PaymentCash:
		if req.CashTendered != nil {
			change := *req.CashTendered - order.Total
			order.Change = &change
			fmt.Fprintf(&b, "💵 Pago en efectivo. Pago con %s. Vuelto: %s\n",
				FormatCLP(*req.CashTendered), FormatCLP(change))
		} else {
			b.WriteString("💵 Pago en efectivo con monto justo.\n")
		}
	case PaymentTransfer:
		if strings.TrimSpace(req.VoucherAnalysis) != "" {
			fmt.Fprintf(&b, "📎 *Comprobante de Transferencia:*\n%s\n", req.VoucherAnalysis)
		} else {
			b.WriteString("📎 Transferencia: envío el comprobante por este chat.\n")
		}
	}

	order.Message = strings.TrimRight(b.String(), "\n")
	order.DeepLink = DeepLink(req.Store.WhatsAppNumber, order.Message)
	return order, nil
}

// DeepLink builds the wa.me URI carrying the url-encoded message.
func DeepLink(number, msg string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg)
}
