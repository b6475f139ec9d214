package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_Lifecycle(t *testing.T) {
	m := New()
	snap := m.Snapshot()
	assert.False(t, snap.Running)

	m.Start("scan:movies", 10)
	m.Update(3, 10, 3, "Inception.mkv")
	m.IncrementFail("bad file")

	snap = m.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, "scan:movies", snap.TaskName)
	assert.Equal(t, 3, snap.Current)
	assert.Equal(t, 1, snap.FailCount)
	assert.NotEmpty(t, snap.Events)
	assert.NotEmpty(t, snap.TaskID)

	m.Finish()
	snap = m.Snapshot()
	assert.False(t, snap.Running)
}

func TestMonitor_EventRingBounded(t *testing.T) {
	m := New()
	m.Start("bulk", 0)
	for i := 0; i < maxEvents+50; i++ {
		m.Log(SeverityInfo, "event")
	}
	snap := m.Snapshot()
	assert.LessOrEqual(t, len(snap.Events), maxEvents)
}
