package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/adapters/store"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
	"github.com/phishguard/phishguard/internal/factory"
	"github.com/phishguard/phishguard/internal/logging"
)

var (
	// Classifier flags
	provider          = flag.String("provider", "static", "Classifier provider (static, openai, bedrock, gemini)")
	staticProbability = flag.Float64("static-probability", 0.2, "Fixed probability for the static provider")
	maxTokens         = flag.Int("max-tokens", 100, "Maximum tokens for model response")
	maxTextSize       = flag.Int("max-text-size", 4096, "Maximum text size sent to the model")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Trigger flags
	triggerWords = flag.String("triggers", "", "Comma-separated trigger vocabulary (defaults from config)")

	// Input flags
	inputFile  = flag.String("file", "", "Input message file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	classifier, err := factory.NewClassifierFactory(cfg, logger).CreateClassifier()
	if err != nil {
		logger.Fatal("Failed to create classifier", zap.Error(err))
	}

	engineFactory := factory.NewEngineFactory(cfg, logger)
	timeouts, err := engineFactory.CreateTimeouts()
	if err != nil {
		logger.Fatal("Failed to read timeouts", zap.Error(err))
	}

	// One-shot invocations have no feedback history to draw on.
	engine := core.NewEngine(
		classifier,
		store.NewMemoryStore(logger),
		engineFactory.CreateTriggerSet(),
		logger,
		timeouts,
	)

	// Read message from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	textBytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read message text", zap.Error(err))
	}
	text := string(textBytes)

	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Length: %d bytes\n", len(text))
	fmt.Printf("Provider: %s\n", cfg.GetString("classifier.provider"))
	fmt.Printf("\n")

	startTime := time.Now()
	decision, err := engine.Classify(context.Background(), text)
	if err != nil {
		logger.Fatal("Failed to classify message", zap.Error(err))
	}
	duration := time.Since(startTime)

	fmt.Printf("=== Results ===\n")
	fmt.Printf("Prediction: %s\n", decision.Label.Prediction())
	fmt.Printf("Confidence: %s\n", decision.Confidence)
	if len(decision.Keywords) > 0 {
		fmt.Printf("Keywords: %s\n", strings.Join(decision.Keywords, ", "))
	}
	for i, snippet := range decision.Snippets {
		fmt.Printf("Snippet %d: %s\n", i+1, snippet)
	}
	fmt.Printf("Processing time: %v\n", duration)

	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("classifier.provider", *provider)

	switch *provider {
	case "static":
		v.Set("static.probability", *staticProbability)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.max_text_size", *maxTextSize)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.max_text_size", *maxTextSize)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.max_text_size", *maxTextSize)
	}

	if *triggerWords != "" {
		words := strings.Split(*triggerWords, ",")
		for i, word := range words {
			words[i] = strings.TrimSpace(word)
		}
		v.Set("triggers.vocabulary", words)
	}

	return config.NewFromViper(v)
}
