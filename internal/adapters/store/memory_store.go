package store

import (
	"context"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// stripeCount bounds lock contention: increments to unrelated tokens almost
// never share a lock, while increments to the same token always do.
const stripeCount = 64

// MemoryStore is an in-memory implementation of the SignatureStore interface.
// The map is striped by token hash so concurrent feedback from multiple
// sources never serializes globally.
type MemoryStore struct {
	stripes [stripeCount]memoryStripe
	logger  *zap.Logger
}

type memoryStripe struct {
	mu      sync.RWMutex
	records map[string]*core.SignatureRecord
}

// NewMemoryStore creates a new in-memory signature store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	s := &MemoryStore{logger: logger}
	for i := range s.stripes {
		s.stripes[i].records = make(map[string]*core.SignatureRecord)
	}
	return s
}

func (s *MemoryStore) stripeFor(token string) *memoryStripe {
	h := fnv.New32a()
	h.Write([]byte(token))
	return &s.stripes[h.Sum32()%stripeCount]
}

// Increment atomically bumps the safe or phish counter for token, creating
// the record on first observation.
func (s *MemoryStore) Increment(ctx context.Context, token string, safe bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stripe := s.stripeFor(token)
	stripe.mu.Lock()
	defer stripe.mu.Unlock()

	record, ok := stripe.records[token]
	if !ok {
		record = &core.SignatureRecord{Token: token}
		stripe.records[token] = record
	}
	if safe {
		record.SafeCount++
	} else {
		record.PhishCount++
	}
	return nil
}

// LookupMany returns copies of the records for the tokens present in the
// store. The copies guarantee callers never observe a torn increment.
func (s *MemoryStore) LookupMany(ctx context.Context, tokens []string) ([]core.SignatureRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []core.SignatureRecord
	for _, token := range tokens {
		stripe := s.stripeFor(token)
		stripe.mu.RLock()
		if record, ok := stripe.records[token]; ok {
			records = append(records, *record)
		}
		stripe.mu.RUnlock()
	}
	return records, nil
}
