package factory

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/adapters/monitor"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
)

// MonitorFactory creates the message monitor pipeline
type MonitorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *core.Engine
}

// NewMonitorFactory creates a new monitor factory
func NewMonitorFactory(cfg *config.Config, logger *zap.Logger, engine *core.Engine) *MonitorFactory {
	return &MonitorFactory{
		cfg:    cfg,
		logger: logger,
		engine: engine,
	}
}

// CreateMonitor wires the configured sources and sink into a monitor. When
// monitoring is disabled the monitor has no sources and a log sink, so
// Start/Stop are harmless no-ops.
func (f *MonitorFactory) CreateMonitor() (*monitor.Monitor, error) {
	queueSize := f.cfg.GetInt("monitor.queue_size")

	if !f.cfg.GetBool("monitor.enabled") {
		return monitor.NewMonitor(f.engine, nil, monitor.NewLogSink(f.logger), queueSize, f.logger), nil
	}

	opt, err := redis.ParseURL(f.cfg.GetString("monitor.redis_url"))
	if err != nil {
		return nil, fmt.Errorf("invalid monitor Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	sources := []monitor.Source{
		monitor.NewRedisSource(client, f.cfg.GetString("monitor.ingest_channel"), f.logger),
	}
	sink := monitor.NewRedisSink(
		client,
		f.cfg.GetString("monitor.scan_channel"),
		f.cfg.GetString("monitor.alert_channel"),
		f.logger,
	)

	return monitor.NewMonitor(f.engine, sources, sink, queueSize, f.logger), nil
}
