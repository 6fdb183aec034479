package gemini

import (
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/config"
)

// Factory creates Gemini classifiers
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Gemini factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a new Gemini-backed classifier
func (f *Factory) CreateClassifier() (*Classifier, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewClassifier(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.MaxTextSize,
		f.logger,
	)
}
