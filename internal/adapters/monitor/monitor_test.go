package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

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

// listSource delivers a fixed batch of messages, then blocks until cancelled
// the way a platform bridge would.
type listSource struct {
	messages []core.Message
}

func (s *listSource) Name() string { return "list" }

func (s *listSource) Run(ctx context.Context, out chan<- core.Message) error {
	for _, msg := range s.messages {
		select {
		case out <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

type recordingSink struct {
	mu     sync.Mutex
	scans  []*core.ScannedMessage
	alerts []*core.ScannedMessage
}

func (s *recordingSink) PublishScan(ctx context.Context, msg *core.ScannedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = append(s.scans, msg)
	return nil
}

func (s *recordingSink) PublishAlert(ctx context.Context, msg *core.ScannedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, msg)
	return nil
}

func (s *recordingSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scans), len(s.alerts)
}

func newTestEngine(probability float64, vocabulary []string) *core.Engine {
	logger := zap.NewNop()
	return core.NewEngine(
		fixedClassifier{probability: probability},
		adapterstore.NewMemoryStore(logger),
		core.NewTriggerSet(vocabulary),
		logger,
		core.Timeouts{},
	)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestMonitorPublishesScansAndAlerts(t *testing.T) {
	source := &listSource{messages: []core.Message{
		{Platform: "discord", Channel: "general", Author: "alice", Content: "lunch at noon?"},
		{Platform: "discord", Channel: "general", Author: "mallory", Content: "URGENT: verify your account"},
	}}
	sink := &recordingSink{}
	m := NewMonitor(newTestEngine(0.1, []string{"urgent", "verify"}), []Source{source}, sink, 16, zap.NewNop())

	require.NoError(t, m.Start())
	waitFor(t, func() bool {
		scans, _ := sink.counts()
		return scans == 2
	})
	require.NoError(t, m.Stop())

	scans, alerts := sink.counts()
	assert.Equal(t, 2, scans)
	assert.Equal(t, 1, alerts)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "mallory", sink.alerts[0].Author)
	assert.Equal(t, "Phishing Message", sink.alerts[0].Prediction)
	assert.Equal(t, "95.00% (Detected 2 suspicious keywords)", sink.alerts[0].Confidence)
}

func TestMonitorSkipsUnclassifiableMessages(t *testing.T) {
	source := &listSource{messages: []core.Message{
		{Platform: "discord", Channel: "general", Author: "ghost", Content: "   "},
		{Platform: "discord", Channel: "general", Author: "alice", Content: "lunch at noon?"},
	}}
	sink := &recordingSink{}
	m := NewMonitor(newTestEngine(0.1, nil), []Source{source}, sink, 16, zap.NewNop())

	require.NoError(t, m.Start())
	waitFor(t, func() bool {
		scans, _ := sink.counts()
		return scans == 1
	})
	require.NoError(t, m.Stop())

	scans, alerts := sink.counts()
	assert.Equal(t, 1, scans)
	assert.Equal(t, 0, alerts)
}

func TestMonitorStopWithoutStart(t *testing.T) {
	m := NewMonitor(newTestEngine(0.1, nil), nil, &recordingSink{}, 16, zap.NewNop())
	assert.NoError(t, m.Stop())
}
