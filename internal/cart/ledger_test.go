package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nochelabs/botilleria/internal/domain"
)

func product(id, name string, price int64) domain.Product {
	return domain.Product{ID: id, Name: name, Price: price}
}

func TestAddMergesByIdentity(t *testing.T) {
	var l Ledger
	corona := product("2", "Cerveza Corona Extra - Pack 6", 15000)

	l.Add(corona)
	l.Add(corona)

	require.Equal(t, 1, l.Len())
	assert.Equal(t, 2, l.Items()[0].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	var l Ledger
	l.Add(product("a", "first", 100))
	l.Add(product("b", "second", 200))
	l.Add(product("a", "first", 100))
	l.Add(product("c", "third", 300))

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, "b", items[1].Product.ID)
	assert.Equal(t, "c", items[2].Product.ID)
}

func TestAdjustQuantityFloor(t *testing.T) {
	var l Ledger
	l.Add(product("1", "promo", 9990))

	// cannot be driven to zero or below
	l.AdjustQuantity("1", -1)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.Items()[0].Quantity)

	l.AdjustQuantity("1", -5)
	assert.Equal(t, 1, l.Items()[0].Quantity)

	l.AdjustQuantity("1", 3)
	assert.Equal(t, 4, l.Items()[0].Quantity)

	// unknown id is a no-op
	l.AdjustQuantity("nope", 1)
	assert.Equal(t, 1, l.Len())
}

func TestRemove(t *testing.T) {
	var l Ledger
	l.Add(product("1", "promo", 9990))
	l.Add(product("2", "corona", 15000))

	l.Remove("1")
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "2", l.Items()[0].Product.ID)

	l.Remove("missing") // no-op
	assert.Equal(t, 1, l.Len())
}

func TestTotalsScriptedSequence(t *testing.T) {
	var l Ledger
	corona := product("2", "corona", 15000)
	ice := product("6", "hielo", 1500)
	papas := product("7", "papas", 2500)

	l.Add(corona)            // 1x corona
	l.Add(corona)            // 2x corona
	l.Add(ice)               // + 1x hielo
	l.Add(papas)             // + 1x papas
	l.AdjustQuantity("6", 2) // 3x hielo
	l.Remove("7")            // drop papas

	assert.Equal(t, int64(2*15000+3*1500), l.Total())
	assert.Equal(t, 5, l.ItemCount())
	assert.Equal(t, 2, l.Len())
}
