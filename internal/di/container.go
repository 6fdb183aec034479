package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/adapters/monitor"
	"github.com/phishguard/phishguard/internal/adapters/server"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
	"github.com/phishguard/phishguard/internal/factory"
	"github.com/phishguard/phishguard/internal/logging"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMonitorFactory); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register signature store
	if err := container.Provide(func(f *factory.StoreFactory) (core.SignatureStore, error) {
		return f.CreateSignatureStore()
	}); err != nil {
		return nil, err
	}

	// Register trigger set and timeouts
	if err := container.Provide(func(f *factory.EngineFactory) *core.TriggerSet {
		return f.CreateTriggerSet()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.EngineFactory) (core.Timeouts, error) {
		return f.CreateTimeouts()
	}); err != nil {
		return nil, err
	}

	// Register decision engine
	if err := container.Provide(core.NewEngine); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(engine *core.Engine, logger *zap.Logger, cfg *config.Config) *server.HTTPServer {
		return server.NewHTTPServer(engine, logger, cfg.GetString("server.listen_address"))
	}); err != nil {
		return nil, err
	}

	// Register monitor
	if err := container.Provide(func(f *factory.MonitorFactory) (*monitor.Monitor, error) {
		return f.CreateMonitor()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
