package store

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Snapshot is one pending planner write.
type Snapshot struct {
	ProjectID string
	Year      int
	State     *PlannerState
}

// Saver debounces planner writes. Each Enqueue replaces any pending snapshot
// with the latest one; the write happens once the burst settles. Saving is
// best-effort: a failed write is logged and dropped, never retried into the
// editing path.
type Saver struct {
	store Store
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]Snapshot // keyed by project-year

	// onSaved, when set, runs after each successful write (bus publish).
	onSaved func(Snapshot)
}

func NewSaver(s Store, delay time.Duration, onSaved func(Snapshot)) *Saver {
	return &Saver{
		store:   s,
		delay:   delay,
		pending: map[string]Snapshot{},
		onSaved: onSaved,
	}
}

// Enqueue schedules snap for writing, replacing any earlier pending snapshot
// for the same project and year.
func (sv *Saver) Enqueue(snap Snapshot) {
	sv.mu.Lock()
	sv.pending[fmt.Sprintf("%s-%d", snap.ProjectID, snap.Year)] = snap
	if sv.timer == nil {
		sv.timer = time.AfterFunc(sv.delay, sv.flush)
	}
	sv.mu.Unlock()
}

// Flush writes everything pending immediately.
func (sv *Saver) Flush() {
	sv.mu.Lock()
	if sv.timer != nil {
		sv.timer.Stop()
		sv.timer = nil
	}
	sv.mu.Unlock()
	sv.flush()
}

func (sv *Saver) flush() {
	sv.mu.Lock()
	pending := sv.pending
	sv.pending = map[string]Snapshot{}
	sv.timer = nil
	sv.mu.Unlock()

	for _, snap := range pending {
		if err := sv.store.SavePlanner(snap.ProjectID, snap.Year, snap.State); err != nil {
			fmt.Fprintf(os.Stderr, "store: save planner %s/%d: %v\n", snap.ProjectID, snap.Year, err)
			continue
		}
		if sv.onSaved != nil {
			sv.onSaved(snap)
		}
	}
}

// Stop cancels any pending write without flushing.
func (sv *Saver) Stop() {
	sv.mu.Lock()
	if sv.timer != nil {
		sv.timer.Stop()
		sv.timer = nil
	}
	sv.pending = map[string]Snapshot{}
	sv.mu.Unlock()
}
