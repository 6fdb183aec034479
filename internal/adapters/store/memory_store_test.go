package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStoreIncrementAndLookup(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Increment(ctx, "shop42", true))
	require.NoError(t, s.Increment(ctx, "shop42", true))
	require.NoError(t, s.Increment(ctx, "shop42", false))
	require.NoError(t, s.Increment(ctx, "casino777", false))

	records, err := s.LookupMany(ctx, []string{"shop42", "casino777", "absent99"})
	require.NoError(t, err)
	require.Len(t, records, 2, "absent tokens must be omitted, not zero-filled")

	byToken := make(map[string]int64)
	for _, record := range records {
		byToken[record.Token] = record.Total()
	}
	assert.Equal(t, int64(3), byToken["shop42"])
	assert.Equal(t, int64(1), byToken["casino777"])
}

func TestMemoryStoreLookupReturnsCopies(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Increment(ctx, "shop42", true))

	records, err := s.LookupMany(ctx, []string{"shop42"})
	require.NoError(t, err)
	records[0].SafeCount = 100

	records, err = s.LookupMany(ctx, []string{"shop42"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), records[0].SafeCount)
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				assert.NoError(t, s.Increment(ctx, "shop42", worker%2 == 0))
			}
		}(i)
	}
	wg.Wait()

	records, err := s.LookupMany(ctx, []string{"shop42"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(workers*perWorker), records[0].Total(), "no increment may be lost")
	assert.Equal(t, int64(workers/2*perWorker), records[0].SafeCount)
	assert.Equal(t, int64(workers/2*perWorker), records[0].PhishCount)
}

func TestMemoryStoreConcurrentDistinctTokens(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	const tokens = 50
	var wg sync.WaitGroup
	for i := 0; i < tokens; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("token%d", i)
			for j := 0; j < 20; j++ {
				assert.NoError(t, s.Increment(ctx, token, j%2 == 0))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < tokens; i++ {
		records, err := s.LookupMany(ctx, []string{fmt.Sprintf("token%d", i)})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(20), records[0].Total())
	}
}

func TestMemoryStoreRespectsContext(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Increment(ctx, "shop42", true))
	_, err := s.LookupMany(ctx, []string{"shop42"})
	assert.Error(t, err)
}
