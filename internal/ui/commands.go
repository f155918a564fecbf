package ui

import (
	"log"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
)

// CommandKind identifies an editor command independent of the name it was
// invoked by.
type CommandKind int

const (
	CommandOpen CommandKind = iota
	CommandWrite
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandOpen:
		return "open"
	case CommandWrite:
		return "write"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// commands maps every accepted command name, aliases included.
var commands = map[string]CommandKind{
	"open":  CommandOpen,
	"o":     CommandOpen,
	"write": CommandWrite,
	"w":     CommandWrite,
	"quit":  CommandQuit,
	"q":     CommandQuit,
}

// commandWithArg splits "<name><whitespace><rest>"; rest may contain spaces.
var commandWithArg = regexp.MustCompile(`^(\S+)\s+(.+)$`)

// Invocation is a parsed command line.
type Invocation struct {
	Kind   CommandKind
	Name   string
	Arg    string
	HasArg bool
}

// ParseCommand resolves a command line. The whole input is first tried as
// a command name without argument, then as a name followed by one
// argument. ok is false when no command matches.
func ParseCommand(input string) (inv Invocation, ok bool) {
	if kind, found := commands[input]; found {
		return Invocation{Kind: kind, Name: input}, true
	}
	sub := commandWithArg.FindStringSubmatch(input)
	if sub == nil {
		return Invocation{}, false
	}
	kind, found := commands[sub[1]]
	if !found {
		return Invocation{}, false
	}
	return Invocation{Kind: kind, Name: sub[1], Arg: sub[2], HasArg: true}, true
}

const noFileName = "No file name"

// executeCommand runs a submitted command line. Every outcome returns the
// editor to navigation mode.
func (m *EditorModel) executeCommand(input string) tea.Cmd {
	m.mode = ModeNavigation

	inv, ok := ParseCommand(input)
	if !ok {
		m.setError("Not an editor command: " + input)
		return nil
	}

	switch inv.Kind {
	case CommandOpen:
		return m.open(inv.Arg)
	case CommandWrite:
		return m.write(inv.Arg)
	case CommandQuit:
		log.Printf("[EditorModel] quit")
		return func() tea.Msg { return QuitMsg{} }
	}
	return nil
}

func (m *EditorModel) open(path string) tea.Cmd {
	m.mode = ModeNavigation
	if path == "" {
		m.setError(noFileName)
		return nil
	}
	log.Printf("[EditorModel] opening file: %s", path)
	return func() tea.Msg { return OpenFileMsg{Path: path} }
}

// write saves to path, or to the current filename when path is empty. The
// content is captured now; later edits do not leak into this save.
func (m *EditorModel) write(path string) tea.Cmd {
	m.mode = ModeNavigation
	if path == "" {
		path = m.filename
	}
	if path == "" {
		m.setError(noFileName)
		return nil
	}
	m.setStatus("writing data to " + path)
	content := m.buf.String()
	return func() tea.Msg { return SaveFileMsg{Path: path, Content: content} }
}
