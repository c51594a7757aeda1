package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/observability"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("notifier")

const webhookService = "event-webhook"

// ErrQueueFull is returned by Publish when events had to be dropped.
var ErrQueueFull = errors.New("event queue full")

// ErrStopped is returned by Publish once Run has returned.
var ErrStopped = errors.New("event webhook stopped")

// Webhook posts events as JSON to a single URL. Publish only enqueues;
// Run drains the queue with a fixed pool of workers, each delivery
// guarded by the bulkhead, the circuit breaker and retry with backoff.
type Webhook struct {
	url        string
	httpClient *http.Client
	cfg        resilience.Config
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	workers    int
	queue      chan domain.Event
	metrics    *observability.Metrics
	logger     *zap.Logger

	// mu guards stopped; Publish holds it for reading while enqueuing.
	mu      sync.RWMutex
	stopped bool
}

// NewWebhook creates a dispatcher with a queue of queueSize events.
func NewWebhook(
	url string,
	httpClient *http.Client,
	cfg resilience.Config,
	queueSize int,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Webhook {
	if queueSize < 1 {
		queueSize = 1
	}
	logger = logger.Named("webhook")
	return &Webhook{
		url:        url,
		httpClient: httpClient,
		cfg:        cfg,
		cb: resilience.NewCircuitBreaker(webhookService, func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}),
		bulkhead: resilience.NewBulkhead(cfg.MaxConcurrency),
		workers:  max(cfg.MaxConcurrency, 1),
		queue:    make(chan domain.Event, queueSize),
		metrics:  metrics,
		logger:   logger,
	}
}

// Publish enqueues events without blocking. Events that do not fit are
// dropped and counted.
func (w *Webhook) Publish(_ context.Context, events ...domain.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		for range events {
			w.metrics.IncrEventDropped()
		}
		w.logger.Warn("events dropped after shutdown", zap.Int("count", len(events)))
		return ErrStopped
	}

	dropped := 0
	for _, e := range events {
		select {
		case w.queue <- e:
		default:
			dropped++
			w.metrics.IncrEventDropped()
		}
	}
	if dropped > 0 {
		w.logger.Warn("events dropped", zap.Int("count", dropped))
		return fmt.Errorf("%w: %d dropped", ErrQueueFull, dropped)
	}
	return nil
}

// Run delivers queued events until ctx is cancelled, then drains what
// is left with the same workers. Once Run returns, Publish refuses new
// events; anything enqueued after the workers exited is counted as
// dropped.
func (w *Webhook) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	done := ctx.Done()

	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case e := <-w.queue:
					w.deliver(gctx, e)
				case <-done:
					for {
						select {
						case e := <-w.queue:
							w.deliver(gctx, e)
						default:
							return nil
						}
					}
				}
			}
		})
	}
	err := g.Wait()

	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	left := 0
	for drained := false; !drained; {
		select {
		case <-w.queue:
			left++
			w.metrics.IncrEventDropped()
		default:
			drained = true
		}
	}
	if left > 0 {
		w.logger.Warn("events left undelivered at shutdown", zap.Int("count", left))
	}
	return err
}

func (w *Webhook) deliver(ctx context.Context, e domain.Event) {
	ctx, span := tracer.Start(ctx, "Webhook.deliver")
	defer span.End()
	span.SetAttributes(
		attribute.String("event.id", e.ID),
		attribute.String("event.type", string(e.Type)),
	)

	if w.httpClient.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.httpClient.Timeout*time.Duration(w.cfg.MaxRetries+1))
		defer cancel()
	}

	err := resilience.Call(ctx, w.cfg, w.cb, w.bulkhead, func(ctx context.Context) error {
		return w.post(ctx, e)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.ErrCircuitOpen{Service: webhookService}
	}
	if err != nil {
		w.metrics.IncrExternalError(webhookService)
		extErr := &domain.ErrExternalService{Service: webhookService, Err: err}
		span.RecordError(extErr)
		w.logger.Error("event delivery failed",
			zap.String("event_id", e.ID),
			zap.String("type", string(e.Type)),
			zap.Error(extErr),
		)
	}
}

func (w *Webhook) post(ctx context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return resilience.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return resilience.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Id", e.ID)
	req.Header.Set("X-Event-Type", string(e.Type))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return resilience.Permanent(fmt.Errorf("webhook rejected event: status %d", resp.StatusCode))
	}
	return nil
}
