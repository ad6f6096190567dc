package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
)

const namespace = "engine"

// Collector exports engine activity as Prometheus metrics.
// It implements matching.Handler so it is driven by the matching goroutine.
type Collector struct {
	// Counters per event kind and side, unknown values share slot zero
	events   [4][3]prometheus.Counter
	trades   prometheus.Counter
	volume   prometheus.Counter
	price    prometheus.Gauge
	tradeQty prometheus.Histogram
}

// NewCollector creates collector registering its metrics in given registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	events := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of inbound events processed by the matching engine",
		},
		[]string{"kind", "side"},
	)

	c := &Collector{
		trades: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Total number of trades published",
		}),
		volume: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traded_quantity_total",
			Help:      "Total traded quantity",
		}),
		price: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_trade_price_ticks",
			Help:      "Price of the last published trade in ticks",
		}),
		tradeQty: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trade_quantity",
			Help:      "Quantity of published trades",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	kinds := []matching.EventKind{0, matching.EventKindNewLimit, matching.EventKindCancel, matching.EventKindModify}
	sides := []matching.OrderSide{0, matching.OrderSideBuy, matching.OrderSideSell}
	for _, kind := range kinds {
		for _, side := range sides {
			c.events[kind][side] = events.WithLabelValues(kind.String(), side.String())
		}
	}
	return c
}

// OnEvent implements matching.Handler.
func (c *Collector) OnEvent(event matching.Event) {
	kind, side := event.Kind(), event.Side()
	if !kind.Valid() {
		kind = 0
	}
	if !side.Valid() {
		side = 0
	}
	c.events[kind][side].Inc()
}

// OnTrade implements matching.Handler.
func (c *Collector) OnTrade(trade matching.Trade) {
	c.trades.Inc()
	c.volume.Add(float64(trade.Quantity))
	c.price.Set(float64(trade.Price))
	c.tradeQty.Observe(float64(trade.Quantity))
}
