package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// HTTPServer exposes classification and feedback over HTTP.
type HTTPServer struct {
	app    *fiber.App
	engine *core.Engine
	logger *zap.Logger
	addr   string
}

// predictRequest is the Classify input. The context block is optional and
// informational only; decisions are computed from the text alone.
type predictRequest struct {
	Text    string `json:"text"`
	Context *struct {
		Platform string `json:"platform"`
		URL      string `json:"url"`
	} `json:"context"`
}

type predictResponse struct {
	Prediction string   `json:"prediction"`
	Confidence string   `json:"confidence"`
	Keywords   []string `json:"keywords"`
	Snippets   []string `json:"snippets"`
}

type reportRequest struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(engine *core.Engine, logger *zap.Logger, addr string) *HTTPServer {
	app := fiber.New(fiber.Config{
		AppName: "PhishGuard",
	})

	s := &HTTPServer{
		app:    app,
		engine: engine,
		logger: logger,
		addr:   addr,
	}

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Post("/predict", s.handlePredict)
	app.Post("/report", s.handleReport)

	return s
}

func (s *HTTPServer) handlePredict(c fiber.Ctx) error {
	var req predictRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	decision, err := s.engine.Classify(c.Context(), req.Text)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(predictResponse{
		Prediction: decision.Label.Prediction(),
		Confidence: decision.Confidence,
		Keywords:   emptyIfNil(decision.Keywords),
		Snippets:   emptyIfNil(decision.Snippets),
	})
}

func (s *HTTPServer) handleReport(c fiber.Ctx) error {
	var req reportRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := s.engine.Feedback(c.Context(), req.Text, req.Label); err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "recorded"})
}

func (s *HTTPServer) renderError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, core.ErrModelUnavailable), errors.Is(err, core.ErrStoreUnavailable):
		s.logger.Error("Request failed, dependency unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		s.logger.Error("Request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// Start begins serving in the background.
func (s *HTTPServer) Start() error {
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	s.logger.Info("HTTP server listening", zap.String("address", s.addr))
	return nil
}

// Stop shuts the server down gracefully.
func (s *HTTPServer) Stop() error {
	return s.app.ShutdownWithContext(context.Background())
}

// App exposes the fiber app for tests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
