package monitor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// Source is a message producer feeding the monitor, typically a bridge to an
// external chat platform. Run must block until ctx is cancelled and deliver
// messages on out.
type Source interface {
	Run(ctx context.Context, out chan<- core.Message) error
	Name() string
}

// Sink receives every scanned message plus a separate alert event for
// non-Safe verdicts.
type Sink interface {
	PublishScan(ctx context.Context, msg *core.ScannedMessage) error
	PublishAlert(ctx context.Context, msg *core.ScannedMessage) error
}

// Monitor fans independent producers into one bounded queue consumed by a
// single decision loop, decoupling ingestion cadence from classification
// latency.
type Monitor struct {
	engine  *core.Engine
	sources []Source
	sink    Sink
	queue   chan core.Message
	logger  *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor creates a new monitor
func NewMonitor(engine *core.Engine, sources []Source, sink Sink, queueSize int, logger *zap.Logger) *Monitor {
	return &Monitor{
		engine:  engine,
		sources: sources,
		sink:    sink,
		queue:   make(chan core.Message, queueSize),
		logger:  logger,
	}
}

// Start launches the producers and the decision loop.
func (m *Monitor) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	for _, source := range m.sources {
		m.wg.Add(1)
		go func(src Source) {
			defer m.wg.Done()
			if err := src.Run(ctx, m.queue); err != nil && ctx.Err() == nil {
				m.logger.Error("Message source stopped",
					zap.String("source", src.Name()),
					zap.Error(err))
			}
		}(source)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.loop(ctx)
	}()

	m.logger.Info("Monitor started",
		zap.Int("sources", len(m.sources)),
		zap.Int("queue_size", cap(m.queue)))
	return nil
}

// Stop cancels the producers and waits for the loop to drain.
func (m *Monitor) Stop() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	return nil
}

func (m *Monitor) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			m.handle(ctx, msg)
		}
	}
}

func (m *Monitor) handle(ctx context.Context, msg core.Message) {
	decision, err := m.engine.Classify(ctx, msg.Content)
	if err != nil {
		m.logger.Warn("Failed to classify monitored message",
			zap.String("platform", msg.Platform),
			zap.String("channel", msg.Channel),
			zap.Error(err))
		return
	}

	scanned := &core.ScannedMessage{
		Message:    msg,
		Prediction: decision.Label.Prediction(),
		Confidence: decision.Confidence,
		Keywords:   decision.Keywords,
		Snippets:   decision.Snippets,
	}

	if err := m.sink.PublishScan(ctx, scanned); err != nil {
		m.logger.Error("Failed to publish scanned message", zap.Error(err))
	}
	if decision.Label != core.LabelSafe {
		if err := m.sink.PublishAlert(ctx, scanned); err != nil {
			m.logger.Error("Failed to publish alert", zap.Error(err))
		}
	}
}
