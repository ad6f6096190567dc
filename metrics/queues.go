package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueueLength is implemented by queues able to report their length from any goroutine.
type QueueLength interface {
	Len() int
	Cap() int
}

// RegisterQueue exports length and capacity of the queue with given name.
func RegisterQueue(reg prometheus.Registerer, name string, queue QueueLength) {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"queue": name}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "queue_length",
		Help:        "Amount of records waiting in the queue",
		ConstLabels: labels,
	}, func() float64 {
		return float64(queue.Len())
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "queue_capacity",
		Help:        "Capacity of the queue",
		ConstLabels: labels,
	}, func() float64 {
		return float64(queue.Cap())
	})
}
