package core

import (
	"time"
)

// Label is the tri-state verdict, ordered by severity.
type Label int

const (
	LabelSafe Label = iota
	LabelSuspicious
	LabelPhishing
)

// String returns the short form used in logs.
func (l Label) String() string {
	switch l {
	case LabelPhishing:
		return "phishing"
	case LabelSuspicious:
		return "suspicious"
	default:
		return "safe"
	}
}

// Prediction returns the wire form exposed to callers.
func (l Label) Prediction() string {
	switch l {
	case LabelPhishing:
		return "Phishing Message"
	case LabelSuspicious:
		return "Suspicious Message"
	default:
		return "Safe Message"
	}
}

// Feedback labels accepted on the report path.
const (
	FeedbackLabelSafe     = "Safe Email"
	FeedbackLabelPhishing = "Phishing Email"
)

// SignatureRecord holds the accumulated feedback counts for one token.
// Records are created on the first report of a token and only ever
// incremented, never deleted.
type SignatureRecord struct {
	Token      string
	SafeCount  int64
	PhishCount int64
}

// Total returns the number of observations of the token.
func (r SignatureRecord) Total() int64 {
	return r.SafeCount + r.PhishCount
}

// Strength returns the safe/phish imbalance in [-1, 1].
func (r SignatureRecord) Strength() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.SafeCount-r.PhishCount) / float64(total)
}

// TriggerScan is the result of matching a text against the trigger vocabulary.
type TriggerScan struct {
	Distinct    int
	Occurrences int
	Words       []string
}

// Decision is the final verdict for one message. It is computed fresh per
// request and never persisted.
type Decision struct {
	Label      Label
	Confidence string
	Keywords   []string
	Snippets   []string
	AnalyzedAt time.Time
}

// Message is an inbound message from an external producer.
type Message struct {
	Platform  string `json:"platform"`
	Channel   string `json:"channel"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ScannedMessage is a message republished with its verdict attached.
type ScannedMessage struct {
	Message
	Prediction string   `json:"prediction"`
	Confidence string   `json:"confidence"`
	Keywords   []string `json:"keywords"`
	Snippets   []string `json:"snippets"`
}
