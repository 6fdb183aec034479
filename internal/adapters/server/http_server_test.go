package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterstore "github.com/phishguard/phishguard/internal/adapters/store"
	"github.com/phishguard/phishguard/internal/core"
)

type fixedClassifier struct {
	probability float64
}

func (f fixedClassifier) PhishProbability(ctx context.Context, text string) (float64, error) {
	return f.probability, nil
}

func newTestServer(probability float64, vocabulary []string) *HTTPServer {
	logger := zap.NewNop()
	engine := core.NewEngine(
		fixedClassifier{probability: probability},
		adapterstore.NewMemoryStore(logger),
		core.NewTriggerSet(vocabulary),
		logger,
		core.Timeouts{},
	)
	return NewHTTPServer(engine, logger, ":0")
}

func postJSON(t *testing.T, s *HTTPServer, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(0.1, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestPredictSafe(t *testing.T) {
	s := newTestServer(0.1, nil)

	resp := postJSON(t, s, "/predict", map[string]any{"text": "see you at lunch"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body predictResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Safe Message", body.Prediction)
	assert.Equal(t, "90.00%", body.Confidence)
	assert.NotNil(t, body.Keywords)
	assert.NotNil(t, body.Snippets)
}

func TestPredictPhishingWithTriggers(t *testing.T) {
	s := newTestServer(0.1, []string{"urgent", "verify"})

	resp := postJSON(t, s, "/predict", map[string]any{
		"text": "URGENT: verify your account",
		"context": map[string]string{
			"platform": "discord",
			"url":      "https://discord.example/c/1",
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body predictResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Phishing Message", body.Prediction)
	assert.Equal(t, "95.00% (Detected 2 suspicious keywords)", body.Confidence)
	assert.ElementsMatch(t, []string{"urgent", "verify"}, body.Keywords)
	assert.NotEmpty(t, body.Snippets)
}

func TestPredictRejectsEmptyText(t *testing.T) {
	s := newTestServer(0.1, nil)

	resp := postJSON(t, s, "/predict", map[string]any{"text": "   "})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportThenPredict(t *testing.T) {
	s := newTestServer(0.1, nil)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, s, "/report", map[string]any{
			"text":  "win big at casino777",
			"label": core.FeedbackLabelPhishing,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := postJSON(t, s, "/predict", map[string]any{"text": "try casino777 today"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body predictResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Phishing Message", body.Prediction)
	assert.Equal(t, "100.00% (Known Phishing Pattern)", body.Confidence)
	assert.Contains(t, body.Keywords, "casino777")
}

func TestReportRejectsUnknownLabel(t *testing.T) {
	s := newTestServer(0.1, nil)

	resp := postJSON(t, s, "/report", map[string]any{
		"text":  "win big at casino777",
		"label": "Junk Email",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
