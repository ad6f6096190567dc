package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MinPrice:         100,
		MaxPrice:         300,
		MaxOrderID:       1000,
		InboundCapacity:  64,
		OutboundCapacity: 64,
	}
}

// sideBooks returns every SideBook implementation for given side.
func sideBooks(side OrderSide, config Config) map[string]SideBook {
	return map[string]SideBook{
		"bitmap": NewBook(side, config),
		"tree":   NewTreeBook(NewAllocator(4), side, config),
	}
}

// depth returns ids grouped by level from the best price.
func depth(book SideBook) map[uint32][]uint32 {
	result := map[uint32][]uint32{}
	book.Depth(func(price uint32, orders []Order) bool {
		for _, o := range orders {
			result[price] = append(result[price], o.ID())
		}
		return false
	})
	return result
}

func TestLevelBits(t *testing.T) {
	b := newLevelBits(200)
	require.Len(t, b, 4)

	_, ok := b.highestAtOrBelow(199)
	require.False(t, ok)
	_, ok = b.lowestAtOrAbove(0)
	require.False(t, ok)

	for _, i := range []uint32{0, 63, 64, 130, 199} {
		b.set(i)
		require.True(t, b.test(i))
	}

	tests := []struct {
		from    uint32
		highest uint32
		lowest  uint32
	}{
		{from: 0, highest: 0, lowest: 0},
		{from: 1, highest: 0, lowest: 63},
		{from: 63, highest: 63, lowest: 63},
		{from: 64, highest: 64, lowest: 64},
		{from: 65, highest: 64, lowest: 130},
		{from: 150, highest: 130, lowest: 199},
		{from: 199, highest: 199, lowest: 199},
	}
	for _, tt := range tests {
		i, ok := b.highestAtOrBelow(tt.from)
		require.True(t, ok)
		require.Equal(t, tt.highest, i, "highest at or below %d", tt.from)
		i, ok = b.lowestAtOrAbove(tt.from)
		require.True(t, ok)
		require.Equal(t, tt.lowest, i, "lowest at or above %d", tt.from)
	}

	b.clear(0)
	_, ok = b.highestAtOrBelow(62)
	require.False(t, ok)
	b.clear(199)
	_, ok = b.lowestAtOrAbove(131)
	require.False(t, ok)
	_, ok = b.lowestAtOrAbove(256)
	require.False(t, ok)

	b.reset()
	for i := uint32(0); i < 200; i++ {
		require.False(t, b.test(i))
	}
}

func TestPriceLevel(t *testing.T) {
	level := NewPriceLevel(2)
	require.True(t, level.Empty())

	for id := uint32(1); id <= 4; id++ {
		require.Equal(t, id-1, level.push(Order{id: id, qty: id * 10}))
	}
	require.Equal(t, 4, level.Len())
	require.Equal(t, uint32(4), level.back().id)

	// Removing from the middle moves the last order into the hole
	moved, ok := level.swapRemove(1)
	require.True(t, ok)
	require.Equal(t, uint32(4), moved)
	require.Equal(t, []Order{{1, 10}, {4, 40}, {3, 30}}, level.Orders())

	// Removing the last order moves nothing
	_, ok = level.swapRemove(2)
	require.False(t, ok)
	require.Equal(t, uint32(4), level.pop())
	require.Equal(t, 1, level.Len())

	level.Clean()
	require.True(t, level.Empty())
}

func TestBookBestPrice(t *testing.T) {
	config := testConfig()

	for name, book := range sideBooks(OrderSideBuy, config) {
		t.Run("bids "+name, func(t *testing.T) {
			_, ok := book.BestPrice()
			require.False(t, ok)

			book.NewLimit(1, 150, 10)
			book.NewLimit(2, 200, 10)
			book.NewLimit(3, 120, 10)
			price, ok := book.BestPrice()
			require.True(t, ok)
			require.Equal(t, uint32(200), price)

			book.Cancel(2)
			price, _ = book.BestPrice()
			require.Equal(t, uint32(150), price)

			book.Cancel(1)
			book.Cancel(3)
			_, ok = book.BestPrice()
			require.False(t, ok)
			require.Equal(t, 0, book.Len())
			require.Equal(t, 0, book.Levels())
		})
	}

	for name, book := range sideBooks(OrderSideSell, config) {
		t.Run("asks "+name, func(t *testing.T) {
			book.NewLimit(1, 150, 10)
			book.NewLimit(2, 200, 10)
			book.NewLimit(3, 120, 10)
			price, ok := book.BestPrice()
			require.True(t, ok)
			require.Equal(t, uint32(120), price)

			book.RemoveBest(120)
			price, _ = book.BestPrice()
			require.Equal(t, uint32(150), price)
			require.Equal(t, 2, book.Len())
		})
	}
}

func TestBookRejects(t *testing.T) {
	config := testConfig()

	for name, book := range sideBooks(OrderSideBuy, config) {
		t.Run(name, func(t *testing.T) {
			book.NewLimit(1, config.MinPrice-1, 10)
			book.NewLimit(2, config.MaxPrice+1, 10)
			book.NewLimit(0, 200, 10)
			book.NewLimit(config.MaxOrderID+1, 200, 10)
			require.Equal(t, 0, book.Len())

			// Boundary prices and ids are accepted
			book.NewLimit(config.MaxOrderID, config.MinPrice, 10)
			book.NewLimit(1, config.MaxPrice, 10)
			require.Equal(t, 2, book.Len())

			// Already resting id is ignored
			book.NewLimit(1, 200, 99)
			order, price, ok := book.Order(1)
			require.True(t, ok)
			require.Equal(t, config.MaxPrice, price)
			require.Equal(t, uint32(10), order.Quantity())

			// Unknown ids are ignored
			book.Cancel(999)
			book.Cancel(0)
			book.Cancel(config.MaxOrderID + 1)
			book.Modify(999, 200, 1)
			require.Equal(t, 2, book.Len())
		})
	}
}

func TestBookSwapErase(t *testing.T) {
	config := testConfig()

	for name, book := range sideBooks(OrderSideSell, config) {
		t.Run(name, func(t *testing.T) {
			for id := uint32(1); id <= 4; id++ {
				book.NewLimit(id, 200, id)
			}
			require.Equal(t, map[uint32][]uint32{200: {1, 2, 3, 4}}, depth(book))

			// Order 4 takes position of order 2 and stays reachable by id
			book.Cancel(2)
			require.Equal(t, map[uint32][]uint32{200: {1, 4, 3}}, depth(book))
			order, _, ok := book.Order(4)
			require.True(t, ok)
			require.Equal(t, uint32(4), order.Quantity())

			book.Cancel(4)
			require.Equal(t, map[uint32][]uint32{200: {1, 3}}, depth(book))
			_, _, ok = book.Order(4)
			require.False(t, ok)
		})
	}
}

func TestBookLastInFirstOut(t *testing.T) {
	config := testConfig()

	for name, book := range sideBooks(OrderSideBuy, config) {
		t.Run(name, func(t *testing.T) {
			book.NewLimit(1, 200, 10)
			book.NewLimit(2, 200, 20)
			book.NewLimit(3, 190, 30)

			order, price, ok := book.BestOrder()
			require.True(t, ok)
			require.Equal(t, uint32(200), price)
			require.Equal(t, uint32(2), order.ID())

			book.RemoveBest(price)
			order, _, _ = book.BestOrder()
			require.Equal(t, uint32(1), order.ID())

			book.RemoveBest(price)
			order, price, _ = book.BestOrder()
			require.Equal(t, uint32(3), order.ID())
			require.Equal(t, uint32(190), price)

			book.RemoveBest(price)
			_, _, ok = book.BestOrder()
			require.False(t, ok)

			// Removing from an empty level does nothing
			book.RemoveBest(price)
			require.Equal(t, 0, book.Len())
		})
	}
}

func TestBookModify(t *testing.T) {
	config := testConfig()

	for name, book := range sideBooks(OrderSideBuy, config) {
		t.Run(name, func(t *testing.T) {
			book.NewLimit(1, 200, 10)
			book.NewLimit(2, 200, 20)
			book.NewLimit(3, 200, 30)

			// Same price keeps position
			book.Modify(1, 200, 15)
			require.Equal(t, map[uint32][]uint32{200: {1, 2, 3}}, depth(book))
			order, _, _ := book.Order(1)
			require.Equal(t, uint32(15), order.Quantity())

			// New price works as cancel and new limit
			book.Modify(1, 210, 5)
			require.Equal(t, map[uint32][]uint32{200: {3, 2}, 210: {1}}, depth(book))
			price, _ := book.BestPrice()
			require.Equal(t, uint32(210), price)

			// Out of range price removes the order
			book.Modify(1, config.MaxPrice+1, 5)
			_, _, ok := book.Order(1)
			require.False(t, ok)
			price, _ = book.BestPrice()
			require.Equal(t, uint32(200), price)
			require.Equal(t, 2, book.Len())
		})
	}
}

func TestBookZeroQuantity(t *testing.T) {
	for name, book := range sideBooks(OrderSideSell, testConfig()) {
		t.Run(name, func(t *testing.T) {
			book.NewLimit(1, 200, 0)
			order, price, ok := book.BestOrder()
			require.True(t, ok)
			require.Equal(t, uint32(200), price)
			require.Equal(t, uint32(0), order.Quantity())
		})
	}
}

func TestBookStaleBest(t *testing.T) {
	book := NewBook(OrderSideBuy, testConfig())
	book.NewLimit(1, 250, 10)
	book.NewLimit(2, 200, 10)
	require.NoError(t, book.Validate())
	price, ok := book.BestPrice()
	require.True(t, ok)
	require.Equal(t, uint32(250), price)

	// Emulate a stale cached price pointing to an emptied level
	book.levels[250-book.minPrice].Clean()
	book.bits.clear(250 - book.minPrice)

	order, price, ok := book.BestOrder()
	require.True(t, ok)
	require.Equal(t, uint32(200), price)
	require.Equal(t, uint32(2), order.ID())
}

func TestBookValidate(t *testing.T) {
	book := NewBook(OrderSideSell, testConfig())
	for id := uint32(1); id <= 50; id++ {
		book.NewLimit(id, 100+id*3, id)
	}
	require.NoError(t, book.Validate())

	book.index[7].pos++
	require.ErrorIs(t, book.Validate(), ErrBookInconsistent)
	book.index[7].pos--

	book.bits.clear(book.index[8].price - book.minPrice)
	require.ErrorIs(t, book.Validate(), ErrBookInconsistent)
}

func TestBookClean(t *testing.T) {
	for name, book := range sideBooks(OrderSideBuy, testConfig()) {
		t.Run(name, func(t *testing.T) {
			for id := uint32(1); id <= 20; id++ {
				book.NewLimit(id, 100+id, id)
			}
			book.Clean()
			require.Equal(t, 0, book.Len())
			require.Equal(t, 0, book.Levels())
			_, ok := book.BestPrice()
			require.False(t, ok)

			// Ids are free to be reused
			book.NewLimit(1, 150, 1)
			order, price, ok := book.Order(1)
			require.True(t, ok)
			require.Equal(t, uint32(150), price)
			require.Equal(t, uint32(1), order.Quantity())
			if b, ok := book.(*Book); ok {
				require.NoError(t, b.Validate())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
		err    error
	}{
		{"min above max", func(c *Config) { c.MinPrice = c.MaxPrice + 1 }, ErrInvalidPriceRange},
		{"zero max order id", func(c *Config) { c.MaxOrderID = 0 }, ErrInvalidMaxOrderID},
		{"inbound not power of two", func(c *Config) { c.InboundCapacity = 100 }, ErrInvalidQueueCapacity},
		{"zero outbound", func(c *Config) { c.OutboundCapacity = 0 }, ErrInvalidQueueCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			require.ErrorIs(t, config.Validate(), tt.err)
		})
	}

	single := testConfig()
	single.MinPrice, single.MaxPrice = 200, 200
	require.NoError(t, single.Validate())
	require.Equal(t, 1, single.PriceLevels())
}
