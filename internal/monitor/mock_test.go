package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockConnectAndCommands(t *testing.T) {
	m := NewMock()
	t.Cleanup(func() { _ = m.Close() })

	m.Connect()
	snap := m.Snapshot()
	assert.True(t, snap.Connected)
	require.NotNil(t, snap.ConnectionStatus)
	assert.True(t, snap.ConnectionStatus.LLMReady)

	// generated events eventually show up
	require.Eventually(t, func() bool {
		return len(m.Snapshot().Events) > 0
	}, 10*time.Second, 50*time.Millisecond)

	m.ClearHistory()
	assert.Empty(t, m.Snapshot().Events)

	m.ResetStats()
	assert.Zero(t, m.Snapshot().Stats.TotalReceived)
}

// A snapshot handed to the UI must stay stable while the generator keeps
// ticking: the overview view ranges over Stats.MessagesPerType outside any
// lock, so the mock replaces stats wholesale instead of mutating them.
func TestMockSnapshotStatsStableDuringGeneration(t *testing.T) {
	m := NewMock()
	t.Cleanup(func() { _ = m.Close() })

	m.Connect()
	require.Eventually(t, func() bool {
		return m.Snapshot().Stats.TotalReceived >= 1
	}, 10*time.Second, 50*time.Millisecond)

	snap := m.Snapshot()
	before := snap.Stats.TotalReceived
	counts := make(map[string]int, len(snap.Stats.MessagesPerType))
	for k, v := range snap.Stats.MessagesPerType {
		counts[k] = v
	}

	done := make(chan struct{})
	iterated := make(chan struct{})
	go func() {
		defer close(iterated)
		for {
			select {
			case <-done:
				return
			default:
			}
			for k, v := range snap.Stats.MessagesPerType {
				_ = k
				_ = v
			}
		}
	}()

	// wait for the generator to advance past the captured snapshot
	require.Eventually(t, func() bool {
		return m.Snapshot().Stats.TotalReceived > before
	}, 10*time.Second, 50*time.Millisecond)
	close(done)
	<-iterated

	assert.Equal(t, before, snap.Stats.TotalReceived)
	assert.Equal(t, counts, snap.Stats.MessagesPerType)
}

func TestMockCloseStopsGeneration(t *testing.T) {
	m := NewMock()
	m.Connect()
	require.NoError(t, m.Close())
	assert.False(t, m.Snapshot().Connected)
	// Close twice is safe
	assert.NoError(t, m.Close())
}
