package store

import (
	"testing"
	"time"
)

func TestSaverCoalescesLatestSnapshot(t *testing.T) {
	s := testStore(t)
	saved := make(chan Snapshot, 4)
	sv := NewSaver(s, 10*time.Millisecond, func(snap Snapshot) { saved <- snap })
	defer sv.Stop()

	first := sampleState()
	second := sampleState()
	second.TotalDays = 14
	sv.Enqueue(Snapshot{ProjectID: "p1", Year: 2026, State: first})
	sv.Enqueue(Snapshot{ProjectID: "p1", Year: 2026, State: second})

	select {
	case snap := <-saved:
		if snap.State.TotalDays != 14 {
			t.Fatalf("stale snapshot written: totalDays=%d", snap.State.TotalDays)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced write never fired")
	}
	select {
	case snap := <-saved:
		t.Fatalf("replaced snapshot was written too: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}

	got, err := s.LoadPlanner("p1", 2026)
	if err != nil || got == nil {
		t.Fatalf("load after save: %v, %+v", err, got)
	}
	if got.TotalDays != 14 {
		t.Fatalf("persisted totalDays = %d", got.TotalDays)
	}
}

func TestSaverFlushWritesImmediately(t *testing.T) {
	s := testStore(t)
	sv := NewSaver(s, time.Hour, nil)
	defer sv.Stop()

	sv.Enqueue(Snapshot{ProjectID: "p1", Year: 2026, State: sampleState()})
	sv.Flush()

	got, err := s.LoadPlanner("p1", 2026)
	if err != nil || got == nil {
		t.Fatalf("flush did not persist: %v, %+v", err, got)
	}
}
