package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New(0.25)
	require.NoError(t, err)

	p, err := c.PhishProbability(context.Background(), "any text at all")
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)
}

func TestNewRejectsOutOfRange(t *testing.T) {
	_, err := New(-0.1)
	assert.Error(t, err)

	_, err = New(1.1)
	assert.Error(t, err)
}

func TestPhishProbabilityHonoursContext(t *testing.T) {
	c, err := New(0.25)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.PhishProbability(ctx, "any text at all")
	assert.Error(t, err)
}
