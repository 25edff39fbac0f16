package bulkimport

import (
	"errors"
	"sync"
	"time"
)

// ErrImportInProgress reports an initiate request while a run is
// already active.
var ErrImportInProgress = errors.New("an import is already in progress")

// State is the lifecycle state of the import job.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateStopping  State = "stopping"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateStopped   State = "stopped"
)

// Result aggregates what one import run accomplished.
type Result struct {
	// Items is the number of logical items imported.
	Items int `json:"items"`
	// Folders is the number of folder items among them.
	Folders int `json:"folders"`
	// Versions is the number of version rows written.
	Versions int `json:"versions"`
	// Properties is the number of metadata properties applied.
	Properties int `json:"properties"`
	// BytesWritten is the content volume streamed to the store.
	BytesWritten int64 `json:"bytes_written"`
	// Stopped indicates the run ended on a stop request.
	Stopped bool `json:"stopped"`
}

// Snapshot is a point-in-time view of the job status.
type Snapshot struct {
	State      State      `json:"state"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
	Result     Result     `json:"result"`
}

// Status is the import job's control surface: it reports whether a
// run is active and accepts stop requests. All methods are safe for
// concurrent use.
type Status struct {
	mu            sync.Mutex
	state         State
	stopRequested bool
	startedAt     time.Time
	finishedAt    time.Time
	lastError     string
	result        Result
}

// NewStatus creates an idle status.
func NewStatus() *Status {
	return &Status{state: StateIdle}
}

// InProgress reports whether an import run is currently active.
func (s *Status) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning || s.state == StateStopping
}

// RequestStop asks a running import to stop at the next item
// boundary. It reports whether a run was actually active; a false
// return means there was nothing to stop.
func (s *Status) RequestStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning && s.state != StateStopping {
		return false
	}
	s.stopRequested = true
	s.state = StateStopping
	return true
}

// StopRequested reports whether a stop has been requested for the
// current run. The service polls this between items.
func (s *Status) StopRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopRequested
}

// begin transitions to running, failing if a run is already active.
func (s *Status) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning || s.state == StateStopping {
		return ErrImportInProgress
	}
	s.state = StateRunning
	s.stopRequested = false
	s.startedAt = time.Now()
	s.finishedAt = time.Time{}
	s.lastError = ""
	s.result = Result{}
	return nil
}

// finish records the run's outcome.
func (s *Status) finish(result Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.finishedAt = time.Now()
	switch {
	case err != nil:
		s.state = StateFailed
		s.lastError = err.Error()
	case result.Stopped:
		s.state = StateStopped
	default:
		s.state = StateSucceeded
	}
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		State:     s.state,
		LastError: s.lastError,
		Result:    s.result,
	}
	if !s.startedAt.IsZero() {
		started := s.startedAt
		snapshot.StartedAt = &started
	}
	if !s.finishedAt.IsZero() {
		finished := s.finishedAt
		snapshot.FinishedAt = &finished
	}
	return snapshot
}
