package ui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"pgregory.net/rapid"
)

// countingBell records how often it was rung.
type countingBell struct{ rings int }

func (b *countingBell) Ring() { b.rings++ }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

// newLoaded returns an editor sized 80x24 holding content.
func newLoaded(t *testing.T, content string) EditorModel {
	t.Helper()
	m := NewEditorModel(nil)
	m.SetDimensions(80, 24)
	m, _ = m.Update(FileLoadedMsg{Path: "t.txt", Content: content})
	return m
}

func press(m EditorModel, keys ...tea.KeyMsg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func typeString(m EditorModel, s string) EditorModel {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// ---------------------------------------------------------------------------
// NewEditorModel
// ---------------------------------------------------------------------------

func TestNewEditorModel(t *testing.T) {
	m := NewEditorModel(nil)
	if m.mode != ModeNavigation {
		t.Errorf("mode = %v, want ModeNavigation", m.mode)
	}
	if line, col := m.Cursor(); line != 0 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", line, col)
	}
	if m.buf.LineCount() != 0 {
		t.Errorf("new buffer has %d lines, want 0", m.buf.LineCount())
	}
	if m.Filename() != "" {
		t.Errorf("filename = %q, want empty", m.Filename())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNavigation, "ESC"},
		{ModeInsert, "INS"},
		{ModeCommand, "CMD"},
		{Mode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("mode %d -> %q, want %q", tt.mode, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Navigation mode
// ---------------------------------------------------------------------------

func TestNavigationHJKL(t *testing.T) {
	m := newLoaded(t, "hello\nworld\nfoo")

	m, _ = press(m, runes("j"))
	if m.line != 1 {
		t.Errorf("j: line = %d, want 1", m.line)
	}
	m, _ = press(m, runes("l"))
	if m.col != 1 {
		t.Errorf("l: col = %d, want 1", m.col)
	}
	m, _ = press(m, runes("k"))
	if m.line != 0 {
		t.Errorf("k: line = %d, want 0", m.line)
	}
	m, _ = press(m, runes("h"))
	if m.col != 0 {
		t.Errorf("h: col = %d, want 0", m.col)
	}
	if m.alerts != 0 {
		t.Errorf("alerts = %d, want 0", m.alerts)
	}
}

func TestNavigationArrows(t *testing.T) {
	m := newLoaded(t, "hello\nworld")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	if m.line != 1 || m.col != 1 {
		t.Errorf("down,right: cursor = (%d,%d), want (1,1)", m.line, m.col)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.line != 0 || m.col != 0 {
		t.Errorf("up,left: cursor = (%d,%d), want (0,0)", m.line, m.col)
	}
}

func TestNavigationLeftBoundaryAlerts(t *testing.T) {
	bell := &countingBell{}
	m := NewEditorModel(bell)
	m.SetDimensions(80, 24)
	m, _ = m.Update(FileLoadedMsg{Path: "t.txt", Content: "abc"})

	m, cmd := press(m, runes("h"))
	if m.col != 0 {
		t.Errorf("col = %d, want 0", m.col)
	}
	if m.alerts != 1 {
		t.Errorf("alerts = %d, want 1", m.alerts)
	}
	if cmd == nil {
		t.Fatal("boundary move should return the bell command")
	}
	if msg := cmd(); msg != nil {
		t.Errorf("bell command produced %T, want nil", msg)
	}
	if bell.rings != 1 {
		t.Errorf("rings = %d, want 1", bell.rings)
	}
}

func TestNavigationRightBoundaryAlerts(t *testing.T) {
	m := newLoaded(t, "abc")

	m, _ = press(m, runes("l"), runes("l"))
	if m.col != 2 {
		t.Fatalf("col = %d, want 2", m.col)
	}
	m, _ = press(m, runes("l"))
	if m.col != 2 {
		t.Errorf("col past end = %d, want 2", m.col)
	}
	if m.alerts != 1 {
		t.Errorf("alerts = %d, want 1", m.alerts)
	}
}

func TestNavigationRightOnEmptyLineAlerts(t *testing.T) {
	m := newLoaded(t, "")

	m, _ = press(m, runes("l"))
	if m.col != 0 || m.alerts != 1 {
		t.Errorf("col = %d alerts = %d, want 0 and 1", m.col, m.alerts)
	}
}

func TestNavigationVerticalBoundaryAlerts(t *testing.T) {
	m := newLoaded(t, "a\nb")

	m, _ = press(m, runes("k"))
	if m.line != 0 || m.alerts != 1 {
		t.Errorf("k at top: line = %d alerts = %d", m.line, m.alerts)
	}
	m, _ = press(m, runes("j"), runes("j"))
	if m.line != 1 || m.alerts != 2 {
		t.Errorf("j at bottom: line = %d alerts = %d", m.line, m.alerts)
	}
}

func TestNavigationOnEmptyBufferAlerts(t *testing.T) {
	m := NewEditorModel(nil)
	m.SetDimensions(80, 24)

	m, _ = press(m, runes("j"), runes("k"), runes("h"), runes("l"))
	if m.line != 0 || m.col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", m.line, m.col)
	}
	if m.alerts != 4 {
		t.Errorf("alerts = %d, want 4", m.alerts)
	}
}

func TestNavigationReclampsColumn(t *testing.T) {
	m := newLoaded(t, "hello world\nhi\n\nlonger line")

	m, _ = press(m, runes("l"), runes("l"), runes("l"), runes("l"), runes("l"))
	if m.col != 5 {
		t.Fatalf("col = %d, want 5", m.col)
	}
	m, _ = press(m, runes("j"))
	if m.col != 1 {
		t.Errorf("onto short line: col = %d, want 1", m.col)
	}
	m, _ = press(m, runes("j"))
	if m.col != 0 {
		t.Errorf("onto empty line: col = %d, want 0", m.col)
	}
	m, _ = press(m, runes("j"))
	if m.col != 0 {
		t.Errorf("onto long line: col = %d, want 0 (column does not spring back)", m.col)
	}
}

func TestNavigationWideCharacters(t *testing.T) {
	m := newLoaded(t, "日本\nab")

	// "日本" is four cells wide; the cursor moves cell by cell.
	m, _ = press(m, runes("l"), runes("l"), runes("l"))
	if m.col != 3 {
		t.Fatalf("col = %d, want 3", m.col)
	}
	m, _ = press(m, runes("l"))
	if m.alerts != 1 {
		t.Errorf("alerts = %d, want 1", m.alerts)
	}
	m, _ = press(m, runes("j"))
	if m.col != 1 {
		t.Errorf("col on 'ab' = %d, want 1", m.col)
	}
}

func TestNavigationInvalidUTF8(t *testing.T) {
	m := newLoaded(t, "a\xffb")

	// The undecodable byte is drawn as one cell and can be stepped over.
	m, _ = press(m, runes("l"), runes("l"))
	if m.col != 2 || m.alerts != 0 {
		t.Fatalf("col = %d alerts = %d, want 2 and 0", m.col, m.alerts)
	}
	m, _ = press(m, runes("l"))
	if m.alerts != 1 {
		t.Errorf("alerts = %d, want 1", m.alerts)
	}
}

func TestNavigationUnhandledKeysIgnored(t *testing.T) {
	m := newLoaded(t, "hello\nworld")
	before := m.Lines()

	m, cmd := press(m, runes("x"), runes("d"), tea.KeyMsg{Type: tea.KeyTab}, keyEnter, keyBackspace)
	if cmd != nil {
		t.Error("unhandled keys should not produce commands")
	}
	if m.mode != ModeNavigation {
		t.Errorf("mode = %v, want ModeNavigation", m.mode)
	}
	if !reflect.DeepEqual(m.Lines(), before) {
		t.Errorf("lines = %v, want %v", m.Lines(), before)
	}
	if m.alerts != 0 {
		t.Errorf("alerts = %d, want 0", m.alerts)
	}
}

func TestNavigationToInsert(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = press(m, runes("i"))
	if m.mode != ModeInsert {
		t.Errorf("mode = %v, want ModeInsert", m.mode)
	}
}

func TestNavigationToCommand(t *testing.T) {
	m := newLoaded(t, "x")
	m.cmdEntry = "stale"
	m, _ = press(m, runes(":"))
	if m.mode != ModeCommand {
		t.Errorf("mode = %v, want ModeCommand", m.mode)
	}
	if m.cmdHeader != ":" || m.cmdEntry != "" || m.cmdCol != 1 {
		t.Errorf("command line = %q %q col %d, want \":\" \"\" col 1", m.cmdHeader, m.cmdEntry, m.cmdCol)
	}
}

func TestPropertyHorizontalStaysInLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-z日本 ]{0,12}`).Draw(t, "line")
		m := NewEditorModel(nil)
		m.SetDimensions(80, 24)
		m, _ = m.Update(FileLoadedMsg{Path: "p", Content: line})
		lw := m.lineWidth()

		keys := rapid.SliceOf(rapid.SampledFrom([]string{"h", "l"})).Draw(t, "keys")
		for _, k := range keys {
			line, col := m.Cursor()
			alerts := m.alerts
			m, _ = m.Update(runes(k))
			if m.col < 0 || m.col >= max(1, lw) {
				t.Fatalf("col = %d outside [0,%d)", m.col, max(1, lw))
			}
			if m.alerts != alerts {
				if l, c := m.Cursor(); l != line || c != col {
					t.Fatalf("alerting move changed cursor (%d,%d) -> (%d,%d)", line, col, l, c)
				}
			}
		}
	})
}

func TestPropertyVerticalStaysInBuffer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,6}`), 1, 8).Draw(t, "lines")
		m := NewEditorModel(nil)
		m.SetDimensions(80, 5)
		m, _ = m.Update(FileLoadedMsg{Path: "p", Content: strings.Join(lines, "\n")})

		keys := rapid.SliceOf(rapid.SampledFrom([]string{"j", "k", "h", "l"})).Draw(t, "keys")
		for _, k := range keys {
			line := m.line
			alerts := m.alerts
			m, _ = m.Update(runes(k))
			if m.line < 0 || m.line >= len(lines) {
				t.Fatalf("line = %d outside [0,%d)", m.line, len(lines))
			}
			if (k == "j" || k == "k") && m.alerts != alerts && m.line != line {
				t.Fatalf("alerting %s moved line %d -> %d", k, line, m.line)
			}
			if lw := m.lineWidth(); m.col < 0 || m.col >= max(1, lw) {
				t.Fatalf("col = %d outside line width %d", m.col, lw)
			}
			if m.line < m.top || m.line >= m.top+m.textRows() {
				t.Fatalf("cursor line %d outside viewport [%d,%d)", m.line, m.top, m.top+m.textRows())
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Insert mode
// ---------------------------------------------------------------------------

func TestInsertNewlineThenType(t *testing.T) {
	m := newLoaded(t, "hello")
	m, _ = press(m, runes("l"), runes("l"), runes("l"), runes("l"), runes("i"), keyEnter)
	m = typeString(m, "x")

	if want := []string{"hello", "x"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.line != 1 || m.col != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", m.line, m.col)
	}
}

func TestInsertAppendsAtEndOfLine(t *testing.T) {
	m := newLoaded(t, "abc")
	m, _ = press(m, runes("i"))
	m = typeString(m, "de")

	if got := m.buf.Line(0); got != "abcde" {
		t.Errorf("line = %q, want abcde", got)
	}
	if m.col != 2 {
		t.Errorf("col = %d, want 2", m.col)
	}
}

func TestInsertNewlineInMiddleShiftsLines(t *testing.T) {
	m := newLoaded(t, "a\nb")
	m, _ = press(m, runes("i"), keyEnter)

	if want := []string{"a", "", "b"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.line != 1 || m.col != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", m.line, m.col)
	}
}

func TestInsertIntoEmptyBuffer(t *testing.T) {
	m := NewEditorModel(nil)
	m.SetDimensions(80, 24)
	m, _ = press(m, runes("i"))
	m = typeString(m, "hi")

	if want := []string{"hi"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.col != 2 {
		t.Errorf("col = %d, want 2", m.col)
	}
}

func TestInsertNewlineIntoEmptyBuffer(t *testing.T) {
	m := NewEditorModel(nil)
	m.SetDimensions(80, 24)
	m, _ = press(m, runes("i"), keyEnter)

	if want := []string{"", ""}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.line != 1 {
		t.Errorf("line = %d, want 1", m.line)
	}
}

func TestInsertWideCharacterAdvancesTwo(t *testing.T) {
	m := newLoaded(t, "")
	m, _ = press(m, runes("i"), runes("あ"))

	if m.col != 2 {
		t.Errorf("col = %d, want 2", m.col)
	}
	if got := m.buf.Line(0); got != "あ" {
		t.Errorf("line = %q", got)
	}
}

func TestInsertNavigationKeysAreText(t *testing.T) {
	m := newLoaded(t, "")
	m, _ = press(m, runes("i"))
	m = typeString(m, "hjkl:")

	if got := m.buf.Line(0); got != "hjkl:" {
		t.Errorf("line = %q, want hjkl:", got)
	}
	if m.mode != ModeInsert {
		t.Errorf("mode = %v, want ModeInsert", m.mode)
	}
}

func TestInsertSpace(t *testing.T) {
	m := newLoaded(t, "a")
	m, _ = press(m, runes("i"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, runes("b"))

	if got := m.buf.Line(0); got != "a b" {
		t.Errorf("line = %q, want %q", got, "a b")
	}
}

func TestInsertPasteWithNewline(t *testing.T) {
	m := newLoaded(t, "")
	m, _ = press(m, runes("i"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab\ncd"), Paste: true})

	if want := []string{"ab", "cd"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.line != 1 || m.col != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2)", m.line, m.col)
	}
}

func TestInsertIgnoresSpecialKeys(t *testing.T) {
	m := newLoaded(t, "abc")
	m, _ = press(m, runes("i"), keyBackspace, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})

	if got := m.buf.Line(0); got != "abc" {
		t.Errorf("line = %q, want abc", got)
	}
}

// ---------------------------------------------------------------------------
// Command mode
// ---------------------------------------------------------------------------

func TestCommandTyping(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = press(m, runes(":"))
	m = typeString(m, "w a")

	if m.cmdEntry != "w a" {
		t.Errorf("entry = %q, want %q", m.cmdEntry, "w a")
	}
	if m.cmdCol != 4 {
		t.Errorf("cmdCol = %d, want 4", m.cmdCol)
	}
}

func TestCommandBackspaceWideCharacter(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = press(m, runes(":"), runes("a"), runes("日"))
	if m.cmdCol != 4 {
		t.Fatalf("cmdCol = %d, want 4", m.cmdCol)
	}

	m, _ = press(m, keyBackspace)
	if m.cmdEntry != "a" {
		t.Errorf("entry = %q, want a", m.cmdEntry)
	}
	if m.cmdCol != 2 {
		t.Errorf("cmdCol = %d, want 2", m.cmdCol)
	}
}

func TestCommandBackspaceOnEmptyIsNoop(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = press(m, runes(":"), keyBackspace, tea.KeyMsg{Type: tea.KeyCtrlH})

	if m.mode != ModeCommand {
		t.Errorf("mode = %v, want ModeCommand", m.mode)
	}
	if m.cmdEntry != "" || m.cmdCol != 1 {
		t.Errorf("entry = %q col = %d, want empty and 1", m.cmdEntry, m.cmdCol)
	}
}

func TestCommandEmptySubmitStaysInCommand(t *testing.T) {
	m := newLoaded(t, "x")
	m, cmd := press(m, runes(":"), keyEnter)

	if cmd != nil {
		t.Error("empty submit should not produce a command")
	}
	if m.mode != ModeCommand {
		t.Errorf("mode = %v, want ModeCommand", m.mode)
	}
}

func TestCommandUnknown(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = press(m, runes(":"))
	m = typeString(m, "wq")
	m, cmd := press(m, keyEnter)

	if cmd != nil {
		t.Error("unknown command should not produce a command")
	}
	if m.mode != ModeNavigation {
		t.Errorf("mode = %v, want ModeNavigation", m.mode)
	}
	if m.errMsg != "Not an editor command: wq" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.cmdEntry != "" {
		t.Errorf("entry = %q, want empty", m.cmdEntry)
	}
}

// ---------------------------------------------------------------------------
// Escape
// ---------------------------------------------------------------------------

func TestEscapeFromEveryMode(t *testing.T) {
	for _, mode := range []Mode{ModeNavigation, ModeInsert, ModeCommand} {
		m := newLoaded(t, "abc")
		m.mode = mode
		m.cmdEntry = "partial"

		m, _ = press(m, keyEsc)
		if m.mode != ModeNavigation {
			t.Errorf("%v: mode = %v, want ModeNavigation", mode, m.mode)
		}
		if m.cmdEntry != "" {
			t.Errorf("%v: entry = %q, want empty", mode, m.cmdEntry)
		}
	}
}

func TestEscapeDiscardsTypedCommand(t *testing.T) {
	m := newLoaded(t, "abc")
	m, _ = press(m, runes(":"))
	m = typeString(m, "q")
	m, cmd := press(m, keyEsc, runes(":"), keyEnter)

	if cmd != nil {
		t.Error("discarded command must not run")
	}
}

// ---------------------------------------------------------------------------
// Fatal mode
// ---------------------------------------------------------------------------

func TestUnknownModeIsFatal(t *testing.T) {
	m := newLoaded(t, "abc")
	m.mode = Mode(42)

	m, cmd := press(m, runes("x"))
	if cmd == nil {
		t.Fatal("expected fatal command")
	}
	msg, ok := cmd().(FatalMsg)
	if !ok {
		t.Fatalf("expected FatalMsg, got %T", cmd())
	}
	if !errors.Is(msg.Err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", msg.Err)
	}
	if !errors.Is(m.Err(), ErrUnknownMode) {
		t.Errorf("Err() = %v", m.Err())
	}

	// A stopped editor ignores further input.
	m, cmd = press(m, runes("i"))
	if cmd != nil || m.mode != Mode(42) {
		t.Error("stopped editor should ignore input")
	}
}

// ---------------------------------------------------------------------------
// File completions and transient messages
// ---------------------------------------------------------------------------

func TestFileLoadedReplacesBuffer(t *testing.T) {
	m := newLoaded(t, "one\ntwo\nthree")
	m, _ = press(m, runes("j"), runes("j"), runes("l"))

	m, _ = m.Update(FileLoadedMsg{Path: "other.txt", Content: "a\nbb\nccc"})
	if want := []string{"a", "bb", "ccc"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.Content() != "a\nbb\nccc" {
		t.Errorf("content = %q", m.Content())
	}
	if m.line != 0 || m.col != 0 || m.top != 0 {
		t.Errorf("cursor = (%d,%d) top %d, want origin", m.line, m.col, m.top)
	}
	if m.Filename() != "other.txt" {
		t.Errorf("filename = %q", m.Filename())
	}
	if !strings.Contains(m.status, "other.txt") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFileLoadedErrorKeepsBuffer(t *testing.T) {
	m := newLoaded(t, "keep")
	m, _ = m.Update(FileLoadedMsg{Path: "missing", Err: errors.New("no such file")})

	if want := []string{"keep"}; !reflect.DeepEqual(m.Lines(), want) {
		t.Errorf("lines = %v, want %v", m.Lines(), want)
	}
	if m.errMsg != "no such file" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.Filename() != "t.txt" {
		t.Errorf("filename = %q, want t.txt", m.Filename())
	}
}

func TestSaveDoneSuccess(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = m.Update(SaveDoneMsg{Path: "t.txt"})
	if m.status != "wrote file to t.txt" {
		t.Errorf("status = %q", m.status)
	}
	if m.errMsg != "" {
		t.Errorf("errMsg = %q, want empty", m.errMsg)
	}
}

func TestSaveDoneAdoptsFilename(t *testing.T) {
	m := NewEditorModel(nil)
	m, _ = m.Update(SaveDoneMsg{Path: "new.txt"})
	if m.Filename() != "new.txt" {
		t.Errorf("filename = %q, want new.txt", m.Filename())
	}
}

func TestSaveDoneError(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = m.Update(SaveDoneMsg{Path: "t.txt", Err: errors.New("disk full")})
	if m.errMsg != "disk full" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}
	if m.Content() != "x" {
		t.Errorf("content = %q", m.Content())
	}
}

func TestTransientMessageShownOnce(t *testing.T) {
	m := newLoaded(t, "x")
	m, _ = m.Update(SaveDoneMsg{Path: "t.txt", Err: errors.New("disk full")})
	if !strings.Contains(m.View(), "disk full") {
		t.Fatal("error should be rendered after the update that set it")
	}

	m, _ = press(m, runes("z"))
	if m.errMsg != "" {
		t.Errorf("errMsg = %q, want cleared", m.errMsg)
	}
	if strings.Contains(m.View(), "disk full") {
		t.Error("error rendered twice")
	}
}

// ---------------------------------------------------------------------------
// Viewport
// ---------------------------------------------------------------------------

func TestViewportFollowsCursor(t *testing.T) {
	m := newLoaded(t, "0\n1\n2\n3\n4\n5")
	m.SetDimensions(80, 5) // three text rows

	m, _ = press(m, runes("j"), runes("j"), runes("j"), runes("j"))
	if m.top != 2 {
		t.Errorf("top = %d, want 2", m.top)
	}
	m, _ = press(m, runes("k"), runes("k"), runes("k"), runes("k"))
	if m.top != 0 {
		t.Errorf("top = %d, want 0", m.top)
	}
}

func TestViewportAfterInsertNewline(t *testing.T) {
	m := newLoaded(t, "a")
	m.SetDimensions(80, 4) // two text rows

	m, _ = press(m, runes("i"), keyEnter, keyEnter, keyEnter)
	if m.line != 3 || m.top != 2 {
		t.Errorf("line = %d top = %d, want 3 and 2", m.line, m.top)
	}
}
