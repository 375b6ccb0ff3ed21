package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storelink/catalog-api/internal/api/metrics"
	"github.com/storelink/catalog-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Sink is the transport events are ultimately delivered to (Redis pub/sub
// in production).
type Sink interface {
	Send(ctx context.Context, event domain.ProductEvent) error
}

// Dispatcher routes product events to a fixed set of workers using
// consistent hashing on the product id, keeping events for one product in
// order. Delivery is best-effort: a full buffer drops the event and a sink
// failure is logged, never surfaced to the mutating request.
type Dispatcher struct {
	workers []chan domain.ProductEvent
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ProductEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ProductEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify implements ports.Notifier. It enqueues without blocking; when the
// responsible worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Notify(event domain.ProductEvent) {
	idx := d.shardIndex(event.Key())
	select {
	case d.workers[idx] <- event:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsPublishedTotal.WithLabelValues(event.Type, "dropped").Inc()
		d.log.Warn().
			Str("type", event.Type).
			Str("product_id", event.Key()).
			Msg("notification queue full, event dropped")
	}
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ProductEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.publish(ctx, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, event domain.ProductEvent) {
	sendCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	timer := prometheus.NewTimer(metrics.EventPublishDuration.WithLabelValues(event.Type))
	err := d.sink.Send(sendCtx, event)
	timer.ObserveDuration()

	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(event.Type, "error").Inc()
		d.log.Warn().Err(err).
			Str("type", event.Type).
			Str("product_id", event.Key()).
			Msg("failed to publish notification event")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(event.Type, "ok").Inc()
}
