package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
)

// EngineFactory assembles the decision engine from configuration
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTriggerSet builds the trigger set from the configured vocabulary
func (f *EngineFactory) CreateTriggerSet() *core.TriggerSet {
	vocabulary := f.cfg.GetStringSlice("triggers.vocabulary")
	triggers := core.NewTriggerSet(vocabulary)
	f.logger.Info("Loaded trigger vocabulary", zap.Int("words", triggers.Size()))
	return triggers
}

// CreateTimeouts reads the external call deadlines from configuration
func (f *EngineFactory) CreateTimeouts() (core.Timeouts, error) {
	classifierTimeout, err := f.cfg.GetDuration("classifier.timeout")
	if err != nil {
		return core.Timeouts{}, fmt.Errorf("invalid classifier timeout: %w", err)
	}
	storeTimeout, err := f.cfg.GetDuration("store.timeout")
	if err != nil {
		return core.Timeouts{}, fmt.Errorf("invalid store timeout: %w", err)
	}
	return core.Timeouts{
		Classifier: classifierTimeout,
		Store:      storeTimeout,
	}, nil
}
