// Package progress implements the progress monitor (C9): guarded,
// process-wide mutable state describing the currently running long task,
// with a bounded event log readable by the UI.
package progress

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxEvents = 300

// Severity classifies one event in the trailing log.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Event is one entry in the bounded event ring.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// Snapshot is a read-only copy of the monitor's state for handlers.
type Snapshot struct {
	TaskID      string  `json:"taskId,omitempty"`
	Running     bool    `json:"running"`
	TaskName    string  `json:"taskName"`
	Total       int     `json:"total"`
	Current     int     `json:"current"`
	SuccessCount int    `json:"successCount"`
	FailCount   int     `json:"failCount"`
	CurrentItem string  `json:"currentItem"`
	Events      []Event `json:"events"`
}

// Monitor guards the process-wide background-task state.
type Monitor struct {
	mu          sync.Mutex
	taskID      string
	running     bool
	taskName    string
	total       int
	current     int
	successCount int
	failCount   int
	currentItem string
	events      []Event
}

// New builds an idle Monitor.
func New() *Monitor {
	return &Monitor{}
}

// Start marks a new task as running. It does not itself enforce the
// singleton-task guard. The enrichment worker (C7) wraps its whole run in
// its own sync.Mutex.TryLock and calls Start/Finish within that guard; the
// crawler (C5) takes no such lock, so concurrent scans are not rejected.
func (m *Monitor) Start(taskName string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskID = uuid.New().String()
	m.running = true
	m.taskName = taskName
	m.total = total
	m.current = 0
	m.successCount = 0
	m.failCount = 0
	m.currentItem = ""
	m.events = nil
	m.appendLocked(SeverityInfo, "started "+taskName)
}

// Update records incremental progress.
func (m *Monitor) Update(current, total, successCount int, currentItem string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = current
	if total > 0 {
		m.total = total
	}
	m.successCount = successCount
	m.currentItem = currentItem
}

// IncrementFail records one failed unit of work and appends a warn event.
func (m *Monitor) IncrementFail(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCount++
	m.appendLocked(SeverityWarn, message)
}

// Log appends an informational event without changing counters.
func (m *Monitor) Log(severity Severity, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLocked(severity, message)
}

// Finish marks the task as no longer running.
func (m *Monitor) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLocked(SeverityInfo, "finished "+m.taskName)
	m.running = false
}

func (m *Monitor) appendLocked(severity Severity, message string) {
	m.events = append(m.events, Event{Timestamp: time.Now(), Message: message, Severity: severity})
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// Snapshot returns a read-only copy of the current state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]Event, len(m.events))
	copy(events, m.events)
	return Snapshot{
		TaskID:       m.taskID,
		Running:      m.running,
		TaskName:     m.taskName,
		Total:        m.total,
		Current:      m.current,
		SuccessCount: m.successCount,
		FailCount:    m.failCount,
		CurrentItem:  m.currentItem,
		Events:       events,
	}
}
