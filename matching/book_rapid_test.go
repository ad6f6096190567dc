package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func rapidConfig() Config {
	return Config{
		MinPrice:         100,
		MaxPrice:         300,
		MaxOrderID:       64,
		InboundCapacity:  64,
		OutboundCapacity: 128,
	}
}

type bookSnapshot struct {
	depth   map[uint32][]Order
	best    uint32
	hasBest bool
	len     int
	levels  int
}

func snapshot(book SideBook) bookSnapshot {
	s := bookSnapshot{depth: map[uint32][]Order{}}
	book.Depth(func(price uint32, orders []Order) bool {
		s.depth[price] = append([]Order(nil), orders...)
		return false
	})
	s.best, s.hasBest = book.BestPrice()
	s.len, s.levels = book.Len(), book.Levels()
	return s
}

func TestBookProperties(t *testing.T) {
	config := rapidConfig()

	rapid.Check(t, func(t *rapid.T) {
		side := rapid.SampledFrom([]OrderSide{OrderSideBuy, OrderSideSell}).Draw(t, "side")
		book := NewBook(side, config)
		tree := NewTreeBook(NewAllocator(2), side, config)

		// Prices slightly outside of the range are drawn on purpose
		priceGen := rapid.Uint32Range(config.MinPrice-2, config.MaxPrice+2)
		idGen := rapid.Uint32Range(0, config.MaxOrderID+1)
		qtyGen := rapid.Uint32Range(0, 100)

		t.Repeat(map[string]func(*rapid.T){
			"new limit": func(t *rapid.T) {
				id, price, qty := idGen.Draw(t, "id"), priceGen.Draw(t, "price"), qtyGen.Draw(t, "qty")
				book.NewLimit(id, price, qty)
				tree.NewLimit(id, price, qty)
			},
			"cancel": func(t *rapid.T) {
				id := idGen.Draw(t, "id")
				book.Cancel(id)
				tree.Cancel(id)
			},
			"modify": func(t *rapid.T) {
				id, price, qty := idGen.Draw(t, "id"), priceGen.Draw(t, "price"), qtyGen.Draw(t, "qty")
				book.Modify(id, price, qty)
				tree.Modify(id, price, qty)
			},
			"remove best": func(t *rapid.T) {
				order, price, ok := book.BestOrder()
				if !ok {
					t.Skip("empty book")
				}
				treeOrder, treePrice, ok := tree.BestOrder()
				require.True(t, ok)
				require.Equal(t, price, treePrice)
				require.Equal(t, order.ID(), treeOrder.ID())
				book.RemoveBest(price)
				tree.RemoveBest(price)
			},
			"new limit and cancel": func(t *rapid.T) {
				id, price, qty := idGen.Draw(t, "id"), priceGen.Draw(t, "price"), qtyGen.Draw(t, "qty")
				if _, _, ok := book.Order(id); ok {
					t.Skip("order is resting")
				}
				before := snapshot(book)
				book.NewLimit(id, price, qty)
				book.Cancel(id)
				require.Equal(t, before, snapshot(book))
			},
			"": func(t *rapid.T) {
				require.NoError(t, book.Validate())

				expected := snapshot(tree)
				actual := snapshot(book)
				require.Equal(t, expected, actual)

				// Best price is the extreme occupied tick
				if actual.hasBest {
					for price := range actual.depth {
						if side == OrderSideBuy {
							require.LessOrEqual(t, price, actual.best)
						} else {
							require.GreaterOrEqual(t, price, actual.best)
						}
					}
				} else {
					require.Empty(t, actual.depth)
				}
			},
		})
	})
}

func TestBookModifySamePrice(t *testing.T) {
	config := rapidConfig()

	rapid.Check(t, func(t *rapid.T) {
		book := NewBook(OrderSideSell, config)
		n := rapid.IntRange(1, int(config.MaxOrderID)).Draw(t, "orders")
		for id := uint32(1); id <= uint32(n); id++ {
			book.NewLimit(id, rapid.Uint32Range(config.MinPrice, config.MaxPrice).Draw(t, "price"), 10)
		}
		id := rapid.Uint32Range(1, uint32(n)).Draw(t, "id")
		qty := rapid.Uint32Range(0, 1000).Draw(t, "qty")
		_, price, ok := book.Order(id)
		require.True(t, ok)

		before := snapshot(book)
		book.Modify(id, price, qty)
		after := snapshot(book)

		// Only quantity of the modified order changes
		for i, o := range before.depth[price] {
			if o.id == id {
				before.depth[price][i].qty = qty
			}
		}
		require.Equal(t, before, after)
		require.NoError(t, book.Validate())
	})
}
