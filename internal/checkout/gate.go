// Package checkout implements the delivery eligibility gate and the order
// composer that turns a cart into a WhatsApp deep-link.
package checkout

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/nochelabs/botilleria/internal/geolocate"
	"github.com/nochelabs/botilleria/pkg/geo"
)

// MaxRadiusKm is the delivery radius; DeliveryFee the flat surcharge applied
// only to confirmed-eligible delivery orders. Both are fixed constants, not
// configuration.
const (
	MaxRadiusKm        = 5.0
	DeliveryFee  int64 = 10000
)

// GateState enumerates the delivery check's states.
type GateState int

const (
	StateNotRequested GateState = iota
	StateAddressEntered
	StateChecking
	StateEligible
	StateIneligible
	StateCheckFailed
)

func (s GateState) String() string {
	switch s {
	case StateNotRequested:
		return "not_requested"
	case StateAddressEntered:
		return "address_entered"
	case StateChecking:
		return "checking"
	case StateEligible:
		return "eligible"
	case StateIneligible:
		return "ineligible"
	case StateCheckFailed:
		return "check_failed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyAddress blocks a location check before it starts; no state change.
	ErrEmptyAddress = errors.New("checkout: delivery address is empty")
)

// Gate decides whether delivery is offered. Only the eligible state
// authorizes checkout completion for a delivery order.
type Gate struct {
	store    geo.Point
	provider geolocate.Provider

	state    GateState
	address  string
	distance float64
}

func NewGate(store geo.Point, provider geolocate.Provider) *Gate {
	return &Gate{store: store, provider: provider}
}

// EnterAddress toggles delivery on with the given address. Any previous
// check result is discarded; the customer must re-validate.
func (g *Gate) EnterAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrEmptyAddress
	}
	g.state = StateAddressEntered
	g.address = address
	g.distance = 0
	return nil
}

// Check samples the customer's location once and settles into Eligible,
// Ineligible or CheckFailed. An empty address fails synchronously with no
// state change. Provider errors are returned so the caller can surface the
// "could not obtain location" message; they are never treated as eligible.
func (g *Gate) Check(ctx context.Context) error {
	if g.address == "" {
		return ErrEmptyAddress
	}
	g.state = StateChecking

	pos, err := g.provider.Current(ctx)
	if err != nil {
		g.state = StateCheckFailed
		g.distance = 0
		return errors.Wrap(err, "checkout: location check failed")
	}

	g.distance = geo.Distance(g.store, pos)
	if g.distance <= MaxRadiusKm {
		g.state = StateEligible
	} else {
		g.state = StateIneligible
	}
	return nil
}

// Reset toggles delivery off, clearing address, distance and eligibility.
func (g *Gate) Reset() {
	g.state = StateNotRequested
	g.address = ""
	g.distance = 0
}

func (g *Gate) State() GateState { return g.state }
func (g *Gate) Address() string  { return g.address }

// Distance is meaningful only in the Eligible and Ineligible states.
func (g *Gate) Distance() float64 { return g.distance }

// Eligible reports whether the fee applies and a delivery order may be
// submitted.
func (g *Gate) Eligible() bool { return g.state == StateEligible }

// Fee is the delivery surcharge for the current state: the flat fee when
// eligible, zero otherwise (CheckFailed counts as ineligible here).
func (g *Gate) Fee() int64 {
	if g.state == StateEligible {
		return DeliveryFee
	}
	return 0
}
