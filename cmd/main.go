package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"hoshipad/internal/config"
	"hoshipad/internal/debug"
	"hoshipad/internal/files"
	"hoshipad/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// publisher receives a snapshot of the editor after every update.
type publisher interface {
	Publish(debug.Snapshot)
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// AppModel is the root application model. It owns the editor and performs
// the file I/O the editor asks for.
type AppModel struct {
	editor  ui.EditorModel
	store   files.Store
	timeout time.Duration
	initial string

	debug   publisher
	closers []io.Closer

	err         error
	interrupted bool
}

func newAppModel(cfg *config.Config, store files.Store, bell ui.Bell, initial string) AppModel {
	return AppModel{
		editor:  ui.NewEditorModel(bell),
		store:   store,
		timeout: cfg.IOTimeout,
		initial: initial,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	return m.editor.Open(m.initial)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			log.Printf("[AppModel] interrupted")
			m.interrupted = true
			m.cleanup()
			return m, tea.Quit
		}

	case ui.OpenFileMsg:
		log.Printf("[AppModel] OpenFileMsg: path=%s remote=%v", msg.Path, files.IsRemote(msg.Path))
		return m, m.loadCmd(msg.Path)

	case ui.SaveFileMsg:
		log.Printf("[AppModel] SaveFileMsg: path=%s remote=%v (%d bytes)", msg.Path, files.IsRemote(msg.Path), len(msg.Content))
		return m, m.saveCmd(msg.Path, msg.Content)

	case ui.QuitMsg:
		m.cleanup()
		return m, tea.Quit

	case ui.FatalMsg:
		log.Printf("[AppModel] fatal: %v", msg.Err)
		m.err = msg.Err
		m.cleanup()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.publish()
	return m, cmd
}

func (m AppModel) View() string {
	return m.editor.View()
}

func (m AppModel) publish() {
	if m.debug == nil {
		return
	}
	line, col := m.editor.Cursor()
	m.debug.Publish(debug.Snapshot{
		Filename: m.editor.Filename(),
		Mode:     m.editor.Mode().String(),
		Line:     line,
		Column:   col,
		Data:     m.editor.Lines(),
	})
}

// loadCmd reads path off the event loop.
func (m AppModel) loadCmd(path string) tea.Cmd {
	store, timeout := m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		content, err := store.Load(ctx, path)
		if err != nil {
			log.Printf("[AppModel] load %s: %v", path, err)
			return ui.FileLoadedMsg{Path: path, Err: err}
		}
		log.Printf("[AppModel] loaded %s (%d bytes)", path, len(content))
		return ui.FileLoadedMsg{Path: path, Content: content}
	}
}

// saveCmd writes content to path off the event loop.
func (m AppModel) saveCmd(path, content string) tea.Cmd {
	store, timeout := m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := store.Save(ctx, path, content)
		if err != nil {
			log.Printf("[AppModel] save %s: %v", path, err)
		}
		return ui.SaveDoneMsg{Path: path, Err: err}
	}
}

// cleanup releases connections and servers. It is safe to call twice.
func (m *AppModel) cleanup() {
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			log.Printf("[AppModel] cleanup: %v", err)
		}
	}
	m.closers = nil
}

// logPath returns the path for the debug log file.
// When running from the project directory (go run / ./bin/hoshipad), logs go
// to .logs/debug.log. When installed, logs go to
// ~/.local/state/hoshipad/debug.log following XDG conventions.
func logPath() string {
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		cwd, _ := os.Getwd()
		if strings.HasPrefix(exeDir, cwd) || strings.Contains(exeDir, "go-build") {
			dir := filepath.Join(cwd, ".logs")
			_ = os.MkdirAll(dir, 0o755)
			return filepath.Join(dir, "debug.log")
		}
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "hoshipad")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "debug.log")
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: hoshipad [file]")
		os.Exit(2)
	}
	var initial string
	if len(os.Args) == 2 {
		initial = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	lp := cfg.LogPath
	if lp == "" {
		lp = logPath()
	}
	f, err := tea.LogToFile(lp, "debug")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not open debug log:", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()
	log.Printf("=== hoshipad starting (log: %s) ===", lp)

	home, _ := os.UserHomeDir()
	remote := files.NewRemote(files.SSHDialer(files.SSHOptions{
		Hosts:       config.LoadSSHConfig(cfg.SSHConfig),
		KnownHosts:  cfg.KnownHosts,
		AgentSock:   cfg.AgentSock,
		Home:        home,
		DefaultUser: currentUser(),
	}))
	store := files.Router{Local: files.Local{FixOwner: true}, Remote: remote}

	model := newAppModel(cfg, store, ui.TerminalBell{W: os.Stderr}, initial)
	model.closers = append(model.closers, remote)

	if cfg.DebugAddr != "" {
		srv := debug.New()
		if _, err := srv.Start(cfg.DebugAddr); err != nil {
			fmt.Fprintln(os.Stderr, "Error: debug endpoint:", err)
			os.Exit(1)
		}
		model.debug = srv
		model.closers = append(model.closers, closerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}))
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	am, ok := final.(AppModel)
	if !ok {
		return
	}
	switch {
	case am.err != nil:
		log.Printf("=== hoshipad stopped: %v ===", am.err)
		fmt.Fprintln(os.Stderr, "Error:", am.err)
		if errors.Is(am.err, ui.ErrUnknownMode) {
			fmt.Fprintln(os.Stderr, "the editor reached an invalid state; unsaved changes were lost")
		}
		os.Exit(1)
	case am.interrupted:
		os.Exit(130)
	}
}
