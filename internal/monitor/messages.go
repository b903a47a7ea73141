package monitor

// Source is the surface the UI consumes: a derived-state snapshot, a
// change signal, and the two upstream commands. Both Client and Mock
// implement it, so the UI never knows which transport is behind it.
type Source interface {
	Connect()
	Reconnect()
	Snapshot() Snapshot
	Updates() <-chan struct{}
	ClearHistory()
	ResetStats()
	Close() error
}

// SnapshotMsg is sent to the UI whenever the stream state changed
type SnapshotMsg struct {
	Snapshot Snapshot
}
