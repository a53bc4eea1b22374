// Package planner ties the pieces together: board + command executor +
// store + bus. One Session is one open project-year planner. All board
// mutation funnels through Apply/Undo/Redo so persistence and notification
// stay consistent.
package planner

import (
	"context"
	"fmt"
	"os"
	"time"

	"listical-cli/internal/bus"
	"listical-cli/internal/command"
	"listical-cli/internal/filter"
	"listical-cli/internal/model"
	"listical-cli/internal/store"
)

const (
	// DefaultTotalDays is twelve weeks of planning horizon.
	DefaultTotalDays = 84

	defaultSaveDelay = 500 * time.Millisecond

	dateLayout = "2006-01-02"
)

// Options configures Open.
type Options struct {
	Store     store.Store
	ProjectID string
	Year      int

	// Bus is optional; a private bus is created when nil.
	Bus *bus.Bus

	// Used only when the store holds no state for the project-year.
	StartDate    time.Time
	TotalDays    int
	ShowMinBound bool
	ShowMaxBound bool

	SaveDelay time.Duration
}

// Session is one open planner.
type Session struct {
	Store     store.Store
	Bus       *bus.Bus
	Board     *command.Board
	Exec      *command.Executor
	ProjectID string
	Year      int

	// Filters is the active view filter; Collapsed comes from the board.
	Filters filter.Filters

	saver  *store.Saver
	ownBus bool
	state  *store.PlannerState // settings carried through saves
}

// Open loads the project-year planner, scaffolding a fresh board when the
// store has no data.
func Open(opts Options) (*Session, error) {
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("planner: missing project id")
	}
	start := opts.StartDate
	if start.IsZero() {
		start = startOfWeek(time.Now())
	}
	year := opts.Year
	if year == 0 {
		year = start.Year()
	}
	totalDays := opts.TotalDays
	if totalDays <= 0 {
		totalDays = DefaultTotalDays
	}
	delay := opts.SaveDelay
	if delay <= 0 {
		delay = defaultSaveDelay
	}

	st, err := opts.Store.LoadPlanner(opts.ProjectID, year)
	if err != nil {
		return nil, err
	}
	scaffolded := st == nil
	if st == nil {
		st = &store.PlannerState{
			Version:   1,
			Rows:      Scaffold(totalDays, opts.ShowMinBound, opts.ShowMaxBound),
			TotalDays: totalDays,
			StartDate: start.Format(dateLayout),
		}
	}
	if st.StartDate != "" {
		if parsed, err := time.Parse(dateLayout, st.StartDate); err == nil {
			start = parsed
		}
	}

	b := opts.Bus
	ownBus := false
	if b == nil {
		b = bus.New()
		ownBus = true
	}

	s := &Session{
		Store:     opts.Store,
		Bus:       b,
		ProjectID: opts.ProjectID,
		Year:      year,
		ownBus:    ownBus,
		state:     st,
	}

	s.Board = command.NewBoard(st.Rows, st.TotalDays, start)
	if st.Collapsed != nil {
		s.Board.Collapsed = st.Collapsed
	}
	if st.HiddenDays != nil {
		s.Board.HiddenDays = st.HiddenDays
	}

	s.Exec = command.NewExecutor()
	s.Exec.Journal = func(name string, payload any) {
		if err := s.Store.AppendCommand(context.Background(), s.ProjectID, name, payload); err != nil {
			fmt.Fprintf(os.Stderr, "planner: journal %s: %v\n", name, err)
		}
	}

	s.saver = store.NewSaver(opts.Store, delay, func(snap store.Snapshot) {
		s.Bus.Publish(bus.Event{Topic: bus.TopicStateSaved, Payload: snap.ProjectID})
	})

	// A freshly scaffolded board is queued for persistence right away, so its
	// row ids stay stable across opens even when the session never mutates.
	if scaffolded {
		s.saver.Enqueue(store.Snapshot{
			ProjectID: s.ProjectID,
			Year:      s.Year,
			State:     s.snapshotState(),
		})
	}

	return s, nil
}

// Apply executes one command, schedules a save, and notifies subscribers.
func (s *Session) Apply(c command.Command) {
	s.Exec.Do(s.Board, c)
	s.afterMutation(c.Name())
}

func (s *Session) Undo() bool {
	if !s.Exec.Undo(s.Board) {
		return false
	}
	s.afterMutation("undo")
	return true
}

func (s *Session) Redo() bool {
	if !s.Exec.Redo(s.Board) {
		return false
	}
	s.afterMutation("redo")
	return true
}

func (s *Session) afterMutation(name string) {
	s.Bus.Publish(bus.Event{Topic: bus.TopicCommand, Payload: name})
	s.saver.Enqueue(store.Snapshot{
		ProjectID: s.ProjectID,
		Year:      s.Year,
		State:     s.snapshotState(),
	})
}

// snapshotState captures the board for persistence, carrying the non-board
// settings (column sizing, UI scale) through unchanged.
func (s *Session) snapshotState() *store.PlannerState {
	st := *s.state
	st.Rows = model.CloneRows(s.Board.Rows)
	st.TotalDays = s.Board.TotalDays
	st.StartDate = s.Board.StartDate.Format(dateLayout)
	st.Collapsed = cloneBoolMap(s.Board.Collapsed)
	st.HiddenDays = cloneIntBoolMap(s.Board.HiddenDays)
	return &st
}

// Reload replaces the board wholesale from the store: last writer wins, no
// merge. The undo history is dropped since its captured values describe rows
// that may no longer exist.
func (s *Session) Reload() error {
	st, err := s.Store.LoadPlanner(s.ProjectID, s.Year)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	s.state = st
	s.Board.Rows = st.Rows
	s.Board.TotalDays = st.TotalDays
	if st.StartDate != "" {
		if parsed, err := time.Parse(dateLayout, st.StartDate); err == nil {
			s.Board.StartDate = parsed
		}
	}
	s.Board.Collapsed = map[string]bool{}
	for k, v := range st.Collapsed {
		s.Board.Collapsed[k] = v
	}
	s.Board.HiddenDays = map[int]bool{}
	for k, v := range st.HiddenDays {
		s.Board.HiddenDays[k] = v
	}
	s.Board.Renormalize()
	s.Exec.Reset()
	s.Bus.Publish(bus.Event{Topic: bus.TopicStateReloaded, Payload: s.ProjectID})
	return nil
}

// Watch starts the cross-process change watcher. Each change burst triggers a
// full reload.
func (s *Session) Watch(ctx context.Context) error {
	events, err := s.Store.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range events {
			if err := s.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "planner: reload after external change: %v\n", err)
			}
		}
	}()
	return nil
}

// VisibleRows applies the active filters (plus the board's collapsed set) to
// the derived row list.
func (s *Session) VisibleRows() []model.Row {
	f := s.Filters
	f.Collapsed = s.Board.Collapsed
	return filter.Apply(s.Board.Rows, f)
}

// Flush writes any pending snapshot immediately.
func (s *Session) Flush() {
	s.saver.Flush()
}

// Close flushes pending writes and shuts down the session's own bus.
func (s *Session) Close() {
	s.saver.Flush()
	if s.ownBus {
		s.Bus.Close()
	}
}

// startOfWeek returns the Monday of t's week, midnight UTC.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday)
}

func cloneBoolMap(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneIntBoolMap(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
