package analytics

import (
	"DealScout-Backend/internal/domain"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Sink receives recorded click events from the dispatcher.
type Sink interface {
	Deliver(ctx context.Context, click *domain.ClickEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, click *domain.ClickEvent) error

func (f SinkFunc) Deliver(ctx context.Context, click *domain.ClickEvent) error {
	return f(ctx, click)
}

// ProcessorConfig holds configuration for the event processor
type ProcessorConfig struct {
	WorkerCount     int           // Number of worker goroutines
	BufferSize      int           // Size of the event queue buffer
	DeliveryTimeout time.Duration // Per-sink delivery deadline
	ShutdownTimeout time.Duration // Time to wait for graceful shutdown
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:     2,
		BufferSize:      256,
		DeliveryTimeout: 5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Processor fans recorded click events out to sinks in the background.
// Publishing never blocks: when the queue is full the event is dropped.
// Delivery is at-most-once; failed deliveries are logged, not retried.
type Processor struct {
	config  ProcessorConfig
	sinks   []Sink
	log     *zap.Logger
	queue   chan *domain.ClickEvent
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
	mu      sync.RWMutex

	published atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

// NewProcessor creates a new event processor
func NewProcessor(log *zap.Logger, config ProcessorConfig, sinks ...Sink) *Processor {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		config: config,
		sinks:  sinks,
		log:    log,
		queue:  make(chan *domain.ClickEvent, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the worker goroutines
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("processor already started")
	}
	// очередь закрыта в Stop, повторный запуск невозможен
	if p.stopped {
		return fmt.Errorf("processor already stopped")
	}

	p.log.Info("starting click event processor",
		zap.Int("workers", p.config.WorkerCount),
		zap.Int("buffer_size", p.config.BufferSize),
		zap.Int("sinks", len(p.sinks)),
	)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.started = true
	return nil
}

// Stop drains the queue and waits for workers, up to ShutdownTimeout.
func (p *Processor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}
	p.started = false
	p.stopped = true

	p.log.Info("stopping click event processor", zap.Int("pending", len(p.queue)))
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.log.Info("click event processor stopped gracefully")
		return nil
	case <-time.After(p.config.ShutdownTimeout):
		p.cancel()
		p.log.Warn("click event processor shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}
}

// Publish enqueues a copy of the event without blocking. It reports
// whether the event was accepted.
func (p *Processor) Publish(click *domain.ClickEvent) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return false
	}

	c := *click
	select {
	case p.queue <- &c:
		p.published.Add(1)
		return true
	default:
		p.dropped.Add(1)
		p.log.Warn("click event queue is full, dropping event",
			zap.String("click_id", click.ID.String()),
			zap.Int("queue_size", len(p.queue)),
		)
		return false
	}
}

func (p *Processor) worker(workerID int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker_id", workerID))
	log.Debug("click event worker started")

	for click := range p.queue {
		p.deliver(log, click)
	}

	log.Debug("click event worker stopped")
}

func (p *Processor) deliver(log *zap.Logger, click *domain.ClickEvent) {
	for _, sink := range p.sinks {
		ctx, cancel := context.WithTimeout(p.ctx, p.config.DeliveryTimeout)
		err := sink.Deliver(ctx, click)
		cancel()

		if err != nil {
			p.failed.Add(1)
			log.Warn("click event delivery failed",
				zap.String("click_id", click.ID.String()),
				zap.Error(err),
			)
		}
	}
}

// GetStats returns processor statistics
func (p *Processor) GetStats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"started":        p.started,
		"queue_length":   len(p.queue),
		"queue_capacity": cap(p.queue),
		"worker_count":   p.config.WorkerCount,
		"published":      p.published.Load(),
		"dropped":        p.dropped.Load(),
		"failed":         p.failed.Load(),
	}
}
