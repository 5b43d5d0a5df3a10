package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/blaubart69/ultradel"
)

var (
	styleLabel = lipgloss.NewStyle().Bold(true)
	styleErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleDone  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// tickMsg carries one ultradel.Info snapshot from the run goroutine into
// the Bubble Tea event loop.
type tickMsg struct {
	info       ultradel.Info
	errorLines []string
}

type runDoneMsg struct{ ok bool }

type progressModel struct {
	root     *ultradel.Folder
	conf     ultradel.Config
	scanOnly bool

	ticks chan tea.Msg

	spin    spinner.Model
	last    ultradel.Info
	lines   []string
	result  bool
	running bool
}

func newProgressModel(root *ultradel.Folder, conf ultradel.Config, scanOnly bool) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	ch := make(chan tea.Msg, 256)
	return progressModel{root: root, conf: conf, scanOnly: scanOnly, spin: s, ticks: ch}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, startRun(m.root, m.conf, m.scanOnly, m.ticks), waitForMsg(m.ticks))
}

// startRun launches the actual ultradel run on a goroutine, translating
// each tick into a tea.Msg on ch and sending runDoneMsg when the run
// finishes.
func startRun(root *ultradel.Folder, conf ultradel.Config, scanOnly bool, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			cb := func(info *ultradel.Info) bool {
				var lines []string
				for _, e := range info.ScannerErr {
					lines = append(lines, fmt.Sprintf("scan %s: %s", e.Func, e.Args))
				}
				for _, e := range info.DeleterErr {
					lines = append(lines, fmt.Sprintf("delete %s: %s", e.Func, e.Args))
				}
				ch <- tickMsg{info: *info, errorLines: lines}
				return true
			}

			var ok bool
			if scanOnly {
				ok = ultradel.Scan(root, conf, cb)
			} else {
				ok = ultradel.Delete(root, false, conf, cb)
			}
			ch <- runDoneMsg{ok: ok}
			close(ch)
		}()
		return nil
	}
}

func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tickMsg:
		m.last = msg.info
		m.lines = append(m.lines, msg.errorLines...)
		if len(m.lines) > 20 {
			m.lines = m.lines[len(m.lines)-20:]
		}
		return m, waitForMsg(m.ticks)
	case runDoneMsg:
		m.result = msg.ok
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	verb := "Deleting"
	if m.scanOnly {
		verb = "Scanning"
	}

	header := fmt.Sprintf("%s %s %s", m.spin.View(), styleLabel.Render(verb), m.root.Path())
	counts := fmt.Sprintf(
		"folders %d/%d   files %d/%d   bytes %s/%s   togo %d",
		m.last.DDeleted, m.last.DFound,
		m.last.FDeleted, m.last.FFound,
		humanize.Bytes(m.last.BDeleted), humanize.Bytes(m.last.BFound),
		m.last.FoldersToGo,
	)

	body := header + "\n" + counts + "\n"
	for _, l := range m.lines {
		body += styleErr.Render("! "+l) + "\n"
	}
	if m.last.Done {
		body += styleDone.Render("done.") + "\n"
	}
	return body
}
