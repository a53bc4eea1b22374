// Package command wraps every planner mutation in an execute/undo pair. Old
// values are captured when the command is built, never re-read at undo time:
// by then the board may have changed again.
package command

// Command is one undoable mutation.
type Command interface {
	Name() string
	Execute(b *Board)
	Undo(b *Board)
}

// JournalFunc receives each executed command for the append-only journal.
// Best-effort: failures are the sink's problem, not the editor's.
type JournalFunc func(name string, payload any)

// Payloader is implemented by commands that expose a serializable payload for
// the journal.
type Payloader interface {
	Payload() any
}

// Executor owns the undo and redo stacks.
type Executor struct {
	undo    []Command
	redo    []Command
	Journal JournalFunc
}

func NewExecutor() *Executor {
	return &Executor{}
}

// Do executes the command, pushes it onto the undo stack, and clears the redo
// stack. The board is renormalized afterwards.
func (e *Executor) Do(b *Board, c Command) {
	c.Execute(b)
	b.Renormalize()
	e.undo = append(e.undo, c)
	e.redo = nil
	if e.Journal != nil {
		var payload any
		if p, ok := c.(Payloader); ok {
			payload = p.Payload()
		}
		e.Journal(c.Name(), payload)
	}
}

// Undo pops the undo stack, inverts, and pushes onto the redo stack.
func (e *Executor) Undo(b *Board) bool {
	if len(e.undo) == 0 {
		return false
	}
	c := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	c.Undo(b)
	b.Renormalize()
	e.redo = append(e.redo, c)
	return true
}

// Redo mirrors Undo.
func (e *Executor) Redo(b *Board) bool {
	if len(e.redo) == 0 {
		return false
	}
	c := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	c.Execute(b)
	b.Renormalize()
	e.undo = append(e.undo, c)
	return true
}

// Reset drops both stacks. Used after an external reload: captured old
// values no longer describe the live board.
func (e *Executor) Reset() {
	e.undo = nil
	e.redo = nil
}

func (e *Executor) CanUndo() bool { return len(e.undo) > 0 }
func (e *Executor) CanRedo() bool { return len(e.redo) > 0 }

// UndoDepth reports the stack size (journal/status display).
func (e *Executor) UndoDepth() int { return len(e.undo) }
