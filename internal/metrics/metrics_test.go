package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetrics_Creation(t *testing.T) {
	t.Run("successfully create command metrics", func(t *testing.T) {
		m, err := NewCommandMetrics()
		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.NotNil(t, m.requestsCounter)
		assert.NotNil(t, m.actionsCounter)
		assert.NotNil(t, m.droppedCounter)
		assert.NotNil(t, m.durationHistogram)
	})
}

func TestCommandMetrics_Record(t *testing.T) {
	m, err := NewCommandMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("record requests with various statuses", func(t *testing.T) {
		for _, status := range []int{200, 400, 500} {
			assert.NotPanics(t, func() {
				m.RecordRequest(ctx, status, 150*time.Millisecond)
			})
		}
	})

	t.Run("record actions and drops", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordActions(ctx, []string{"scale", "move", "rotate"})
			m.RecordActions(ctx, nil)
			m.RecordDropped(ctx, 2)
			m.RecordDropped(ctx, 0)
		})
	})
}

func TestSessionMetrics_Lifecycle(t *testing.T) {
	m, err := NewSessionMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.SessionOpened(ctx, "1")
		m.ChatApplied(ctx, 2)
		m.Reset(ctx)
		m.SessionClosed(ctx, 3*time.Minute)
	})

	t.Run("session without a model", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.SessionOpened(ctx, "")
			m.SessionClosed(ctx, time.Second)
		})
	})
}
