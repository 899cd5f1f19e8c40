package history

import (
	"testing"
	"time"

	"github.com/dshills/quillpad/internal/engine/buffer"
)

// Helper to create a buffer and a history on a manual clock.
func newTestHistory(text string, opts ...Option) (*buffer.Buffer, *History, *ManualScheduler) {
	sched := NewManualScheduler()
	opts = append([]Option{WithScheduler(sched)}, opts...)
	return buffer.NewBufferFromString(text), NewHistory(opts...), sched
}

// Command Tests

func TestInsertCommandApply(t *testing.T) {
	buf, h, _ := newTestHistory("hello")

	Insert(" world").Apply(buf, h)

	if buf.Text() != "hello world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello world")
	}
	if !h.IsPending() {
		t.Error("insert should request a checkpoint")
	}
}

func TestDeleteCommandApply(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		want  string
	}{
		{"partial", "hello", 2, "hel"},
		{"all", "hello", 5, ""},
		{"more than available", "hello", 99, ""},
		{"zero", "hello", 0, "hello"},
		{"negative", "hello", -3, "hello"},
		{"multibyte", "naïve ✓", 2, "naïve"},
		{"empty buffer", "", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, h, _ := newTestHistory(tt.text)
			Delete(tt.count).Apply(buf, h)
			if buf.Text() != tt.want {
				t.Errorf("got %q, want %q", buf.Text(), tt.want)
			}
		})
	}
}

func TestCommandApplyWithoutHistory(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	Insert("c").Apply(buf, nil)
	Delete(1).Apply(buf, nil)

	if buf.Text() != "ab" {
		t.Errorf("got %q, want %q", buf.Text(), "ab")
	}
	if Insert("x").Undo(buf, nil) {
		t.Error("undo without history should report false")
	}
}

func TestCommandUndoDelegatesToHistory(t *testing.T) {
	buf, h, sched := newTestHistory("abc")

	cmd := Insert("def")
	cmd.Apply(buf, h)
	sched.Advance(DefaultDebounce)

	if !cmd.Undo(buf, h) {
		t.Fatal("undo should succeed")
	}
	if buf.Text() != "abc" {
		t.Errorf("got %q, want %q", buf.Text(), "abc")
	}
}

func TestCommandDescription(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Insert("a"), "Type 'a'"},
		{Insert("\n"), "Insert newline"},
		{Insert("\t"), "Insert tab"},
		{Insert("hello"), `Insert "hello"`},
		{Insert("this text is longer than twenty runes"), "Insert 37 characters"},
		{Delete(1), "Backspace"},
		{Delete(4), "Backspace 4 characters"},
		{Command{}, "No-op"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandString(t *testing.T) {
	if got := Insert("hi").String(); got != `Insert("hi")` {
		t.Errorf("got %s", got)
	}
	if got := Delete(2).String(); got != "Delete(2)" {
		t.Errorf("got %s", got)
	}
	if KindInsert.String() != "insert" || KindDelete.String() != "delete" {
		t.Error("wrong kind names")
	}
}

// History Tests

func TestHistoryEmpty(t *testing.T) {
	buf, h, _ := newTestHistory("text")

	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should have nothing to undo or redo")
	}
	if h.Undo(buf) {
		t.Error("undo on empty stack should be a no-op")
	}
	if h.Redo(buf) {
		t.Error("redo on empty stack should be a no-op")
	}
	if buf.Text() != "text" {
		t.Errorf("buffer changed: %q", buf.Text())
	}
}

func TestHistoryDebounceCollapsesBurst(t *testing.T) {
	buf, h, sched := newTestHistory("")

	for _, ch := range []string{"h", "e", "l", "l", "o"} {
		Insert(ch).Apply(buf, h)
		sched.Advance(100 * time.Millisecond)
	}

	if h.UndoCount() != 0 {
		t.Fatalf("checkpoint committed too early: %d", h.UndoCount())
	}

	sched.Advance(DefaultDebounce)

	if h.UndoCount() != 1 {
		t.Fatalf("expected exactly 1 checkpoint, got %d", h.UndoCount())
	}

	h.Undo(buf)
	if buf.Text() != "" {
		t.Errorf("checkpoint should hold the state before the burst, got %q", buf.Text())
	}
}

func TestHistorySeparateBursts(t *testing.T) {
	buf, h, sched := newTestHistory("")

	Insert("one").Apply(buf, h)
	sched.Advance(DefaultDebounce)
	Insert(" two").Apply(buf, h)
	sched.Advance(DefaultDebounce)

	if h.UndoCount() != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", h.UndoCount())
	}

	h.Undo(buf)
	if buf.Text() != "one" {
		t.Errorf("got %q, want %q", buf.Text(), "one")
	}
	h.Undo(buf)
	if buf.Text() != "" {
		t.Errorf("got %q, want empty", buf.Text())
	}
}

func TestHistoryUndoCommitsPending(t *testing.T) {
	buf, h, sched := newTestHistory("base")

	Insert("+").Apply(buf, h)
	if h.UndoCount() != 0 {
		t.Errorf("got %d committed entries, want 0", h.UndoCount())
	}
	if !h.CanUndo() {
		t.Error("pending checkpoint should be undoable")
	}

	if !h.Undo(buf) {
		t.Fatal("undo should succeed")
	}
	if buf.Text() != "base" {
		t.Errorf("got %q, want %q", buf.Text(), "base")
	}

	// The stale timer must not push anything later.
	sched.Advance(time.Second)
	if h.UndoCount() != 0 {
		t.Errorf("stale timer committed a checkpoint: %d", h.UndoCount())
	}
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	buf, h, sched := newTestHistory("")

	Insert("alpha").Apply(buf, h)
	sched.Advance(DefaultDebounce)
	Insert(" beta").Apply(buf, h)
	sched.Advance(DefaultDebounce)

	before := buf.Text()
	if !h.Undo(buf) {
		t.Fatal("undo failed")
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	if !h.Redo(buf) {
		t.Fatal("redo failed")
	}
	if buf.Text() != before {
		t.Errorf("got %q after undo+redo, want %q", buf.Text(), before)
	}
}

func TestHistoryNewEditClearsRedo(t *testing.T) {
	buf, h, sched := newTestHistory("")

	Insert("a").Apply(buf, h)
	sched.Advance(DefaultDebounce)
	h.Undo(buf)

	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	Insert("b").Apply(buf, h)
	if h.CanRedo() {
		t.Error("apply should clear the redo stack")
	}

	sched.Advance(DefaultDebounce)
	if h.CanRedo() {
		t.Error("redo stack should stay empty after commit")
	}
}

func TestHistoryCancel(t *testing.T) {
	buf, h, sched := newTestHistory("")

	Insert("draft").Apply(buf, h)
	h.Cancel()
	sched.Advance(time.Second)

	if h.CanUndo() {
		t.Error("cancelled checkpoint should not be committed")
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no armed timers, got %d", sched.Pending())
	}
}

func TestHistoryFlush(t *testing.T) {
	buf, h, sched := newTestHistory("x")

	Delete(1).Apply(buf, h)
	h.Flush()

	if h.UndoCount() != 1 {
		t.Fatalf("expected 1 checkpoint after flush, got %d", h.UndoCount())
	}
	sched.Advance(time.Second)
	if h.UndoCount() != 1 {
		t.Errorf("timer fired after flush: %d checkpoints", h.UndoCount())
	}
}

func TestHistoryZeroDebounce(t *testing.T) {
	buf, h, _ := newTestHistory("", WithDebounce(0))

	Insert("a").Apply(buf, h)
	Insert("b").Apply(buf, h)

	if h.UndoCount() != 2 {
		t.Errorf("expected one checkpoint per edit, got %d", h.UndoCount())
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	buf, h, _ := newTestHistory("", WithDebounce(0), WithMaxEntries(3))

	for i := 0; i < 5; i++ {
		Insert("x").Apply(buf, h)
	}

	if h.UndoCount() != 3 {
		t.Errorf("expected 3 entries, got %d", h.UndoCount())
	}
	if h.MaxEntries() != 3 {
		t.Errorf("MaxEntries() = %d", h.MaxEntries())
	}

	info := h.UndoInfo()
	if len(info) != 3 || info[0].Runes != 2 {
		t.Errorf("oldest kept checkpoint should hold 2 runes, got %+v", info)
	}
}

func TestHistoryClear(t *testing.T) {
	buf, h, _ := newTestHistory("", WithDebounce(0))

	Insert("a").Apply(buf, h)
	h.Undo(buf)
	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
	if len(h.RedoInfo()) != 0 {
		t.Error("redo info should be empty")
	}
}

func TestHistoryDefaults(t *testing.T) {
	h := NewHistory()
	if h.Debounce() != DefaultDebounce {
		t.Errorf("Debounce() = %v, want %v", h.Debounce(), DefaultDebounce)
	}
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries() = %d, want %d", h.MaxEntries(), DefaultMaxEntries)
	}
}

func TestManualSchedulerOrder(t *testing.T) {
	sched := NewManualScheduler()
	var got []int

	sched.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	sched.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	stopped := sched.AfterFunc(20*time.Millisecond, func() { got = append(got, 2) })

	if !stopped.Stop() {
		t.Error("first Stop should report true")
	}
	if stopped.Stop() {
		t.Error("second Stop should report false")
	}

	sched.Advance(50 * time.Millisecond)

	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("got %v, want [1 3]", got)
	}
	if sched.Now() != 50*time.Millisecond {
		t.Errorf("Now() = %v", sched.Now())
	}
}

func TestSystemSchedulerFires(t *testing.T) {
	buf := buffer.NewBuffer()
	h := NewHistory(WithDebounce(5 * time.Millisecond))

	Insert("x").Apply(buf, h)

	deadline := time.Now().Add(2 * time.Second)
	for h.UndoCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.UndoCount() != 1 {
		t.Errorf("expected the wall-clock timer to commit a checkpoint")
	}
}
