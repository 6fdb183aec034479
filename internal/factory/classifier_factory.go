package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/adapters/bedrock"
	"github.com/phishguard/phishguard/internal/adapters/gemini"
	"github.com/phishguard/phishguard/internal/adapters/openai"
	"github.com/phishguard/phishguard/internal/adapters/static"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
)

// ClassifierFactory creates classifiers based on configuration
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	provider := f.cfg.GetClassifier().Provider

	switch provider {
	case "static":
		return static.New(f.cfg.GetFloat64("static.probability"))
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateClassifier()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateClassifier()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateClassifier()
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", provider)
	}
}
