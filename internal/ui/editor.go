package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"unicode"
	"unicode/utf8"

	"hoshipad/internal/buffer"
	"hoshipad/internal/width"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnknownMode is reported when the editor finds itself in a mode it has
// no handler for.
var ErrUnknownMode = errors.New("unknown mode")

// OpenFileMsg asks the application to read a file for the editor.
type OpenFileMsg struct {
	Path string
}

// FileLoadedMsg carries the result of reading a file.
type FileLoadedMsg struct {
	Path    string
	Content string
	Err     error
}

// SaveFileMsg asks the application to write the buffer content to Path.
type SaveFileMsg struct {
	Path    string
	Content string
}

// SaveDoneMsg reports the result of a save operation.
type SaveDoneMsg struct {
	Path string
	Err  error
}

// QuitMsg asks the application to release its resources and exit.
type QuitMsg struct{}

// FatalMsg reports a broken editor invariant. The application must restore
// the terminal and terminate.
type FatalMsg struct {
	Err error
}

// Bell rings the terminal bell.
type Bell interface {
	Ring()
}

// TerminalBell writes BEL to W.
type TerminalBell struct {
	W io.Writer
}

// Ring implements Bell.
func (b TerminalBell) Ring() {
	_, _ = io.WriteString(b.W, "\a")
}

// Mode is the active editing mode.
type Mode int

const (
	ModeNavigation Mode = iota
	ModeInsert          // text entry
	ModeCommand         // : command line
)

// String returns the three-letter indicator shown in the mode line.
func (m Mode) String() string {
	switch m {
	case ModeNavigation:
		return "ESC"
	case ModeInsert:
		return "INS"
	case ModeCommand:
		return "CMD"
	default:
		return "UNKNOWN"
	}
}

// EditorModel is the modal editor: the document, the cursor, the viewport
// and the command line.
type EditorModel struct {
	buf      *buffer.Buffer
	filename string
	mode     Mode
	keys     KeyMap
	bell     Bell

	line int // logical line
	col  int // visual column
	top  int // first visible logical line

	width  int
	height int

	cmdHeader string
	cmdEntry  string
	cmdCol    int

	// Transient messages, at most one of them set.
	status string
	errMsg string

	alerts int
	fatal  error
}

// NewEditorModel creates an editor with an empty unnamed buffer in
// navigation mode. bell may be nil.
func NewEditorModel(bell Bell) EditorModel {
	return EditorModel{
		buf:  buffer.New(),
		mode: ModeNavigation,
		keys: DefaultKeyMap(),
		bell: bell,
	}
}

// SetDimensions sets the size of the whole editor area, mode line and
// command line included.
func (m *EditorModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// Mode returns the active mode.
func (m EditorModel) Mode() Mode { return m.mode }

// Cursor returns the logical line and visual column of the cursor.
func (m EditorModel) Cursor() (line, col int) { return m.line, m.col }

// Filename returns the file the buffer is associated with, if any.
func (m EditorModel) Filename() string { return m.filename }

// Lines returns a copy of the document.
func (m EditorModel) Lines() []string { return m.buf.Lines() }

// Content returns the serialized document.
func (m EditorModel) Content() string { return m.buf.String() }

// Open requests loading path into the editor, as the open command does.
func (m *EditorModel) Open(path string) tea.Cmd {
	return m.open(path)
}

func (m EditorModel) textRows() int {
	v := m.height - 2
	if v < 1 {
		v = 1
	}
	return v
}

func (m EditorModel) lineWidth() int {
	return width.String(m.buf.Line(m.line))
}

func (m *EditorModel) scrollToCursor() {
	rows := m.textRows()
	if m.line < m.top {
		m.top = m.line
	}
	if m.line >= m.top+rows {
		m.top = m.line - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// clampCol keeps the cursor on the last cell of a non-empty line or at 0.
func (m *EditorModel) clampCol() {
	w := m.lineWidth()
	if w == 0 {
		m.col = 0
	} else if m.col > w-1 {
		m.col = w - 1
	}
}

// --- Transient messages -------------------------------------------------

func (m *EditorModel) setStatus(s string) {
	m.status = s
	m.errMsg = ""
}

func (m *EditorModel) setError(s string) {
	m.errMsg = s
	m.status = ""
}

// expireMessages drops the messages shown by the previous render.
func (m *EditorModel) expireMessages() {
	m.status = ""
	m.errMsg = ""
}

// --- Failure paths ------------------------------------------------------

func (m *EditorModel) alert() tea.Cmd {
	m.alerts++
	if m.bell == nil {
		return nil
	}
	bell := m.bell
	return func() tea.Msg {
		bell.Ring()
		return nil
	}
}

func (m *EditorModel) fail(err error) tea.Cmd {
	log.Printf("[EditorModel] fatal: %v", err)
	m.fatal = err
	return func() tea.Msg { return FatalMsg{Err: err} }
}

// Err returns the invariant violation that stopped the editor, if any.
func (m EditorModel) Err() error { return m.fatal }

// --- Update dispatch ----------------------------------------------------

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	if m.fatal != nil {
		return m, nil
	}
	m.expireMessages()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case FileLoadedMsg:
		m.applyLoaded(msg)

	case SaveDoneMsg:
		if msg.Err != nil {
			log.Printf("[EditorModel] save %s failed: %v", msg.Path, msg.Err)
			m.setError(msg.Err.Error())
			break
		}
		if m.filename == "" {
			m.filename = msg.Path
		}
		m.setStatus("wrote file to " + msg.Path)

	case tea.KeyMsg:
		cmd = m.dispatch(msg)
	}

	m.scrollToCursor()
	return m, cmd
}

func (m *EditorModel) applyLoaded(msg FileLoadedMsg) {
	if msg.Err != nil {
		log.Printf("[EditorModel] open %s failed: %v", msg.Path, msg.Err)
		m.setError(msg.Err.Error())
		return
	}
	m.buf.Load(msg.Content)
	m.line, m.col, m.top = 0, 0, 0
	m.filename = msg.Path
	m.setStatus(fmt.Sprintf("%q %dL", msg.Path, m.buf.LineCount()))
}

func (m *EditorModel) dispatch(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Escape) {
		m.mode = ModeNavigation
		m.cmdEntry = ""
		return nil
	}

	switch m.mode {
	case ModeNavigation:
		return m.updateNavigation(msg)
	case ModeInsert:
		return m.updateInsert(msg)
	case ModeCommand:
		return m.updateCommand(msg)
	default:
		return m.fail(fmt.Errorf("%w: %d", ErrUnknownMode, int(m.mode)))
	}
}

// typedRunes returns the runes a key press would type, or nil when the key
// is not printable input.
func typedRunes(msg tea.KeyMsg) []rune {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		return msg.Runes
	case tea.KeySpace:
		return []rune{' '}
	}
	return nil
}

// --- Navigation mode ----------------------------------------------------

func (m *EditorModel) updateNavigation(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Insert):
		m.mode = ModeInsert

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			return nil
		}
		return m.alert()

	case key.Matches(msg, m.keys.Right):
		if m.col+1 < m.lineWidth() {
			m.col++
			return nil
		}
		return m.alert()

	case key.Matches(msg, m.keys.Up):
		if m.line > 0 {
			m.line--
			m.clampCol()
			return nil
		}
		return m.alert()

	case key.Matches(msg, m.keys.Down):
		if m.line+1 < m.buf.LineCount() {
			m.line++
			m.clampCol()
			return nil
		}
		return m.alert()

	case key.Matches(msg, m.keys.Command):
		m.mode = ModeCommand
		m.cmdHeader = ":"
		m.cmdEntry = ""
		m.cmdCol = width.String(m.cmdHeader)
	}
	return nil
}

// --- Insert mode --------------------------------------------------------

func (m *EditorModel) updateInsert(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Newline) {
		return m.insertNewline()
	}
	for _, r := range typedRunes(msg) {
		if r == '\n' {
			if cmd := m.insertNewline(); cmd != nil {
				return cmd
			}
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if err := m.appendRune(r); err != nil {
			return m.fail(err)
		}
	}
	return nil
}

// ensureLine gives an empty buffer its first line so it can be edited.
func (m *EditorModel) ensureLine() error {
	if m.buf.LineCount() > 0 {
		return nil
	}
	return m.buf.InsertLine(0, "")
}

func (m *EditorModel) insertNewline() tea.Cmd {
	if err := m.ensureLine(); err != nil {
		return m.fail(err)
	}
	m.line++
	m.col = 0
	if err := m.buf.InsertLine(m.line, ""); err != nil {
		return m.fail(err)
	}
	return nil
}

// appendRune adds r at the end of the current line, wherever the cursor is.
func (m *EditorModel) appendRune(r rune) error {
	if err := m.ensureLine(); err != nil {
		return err
	}
	if err := m.buf.ReplaceLine(m.line, m.buf.Line(m.line)+string(r)); err != nil {
		return err
	}
	m.col += width.Rune(r)
	return nil
}

// --- Command mode (:) ---------------------------------------------------

func (m *EditorModel) updateCommand(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Newline):
		input := m.cmdEntry
		m.cmdEntry = ""
		m.cmdCol = width.String(m.cmdHeader)
		if input == "" {
			return nil
		}
		return m.executeCommand(input)

	case key.Matches(msg, m.keys.Backspace):
		if m.cmdEntry == "" {
			return nil
		}
		r, size := utf8.DecodeLastRuneInString(m.cmdEntry)
		m.cmdEntry = m.cmdEntry[:len(m.cmdEntry)-size]
		m.cmdCol -= width.Rune(r)
		return nil
	}

	for _, r := range typedRunes(msg) {
		if unicode.IsControl(r) {
			continue
		}
		m.cmdEntry += string(r)
		m.cmdCol += width.Rune(r)
	}
	return nil
}
