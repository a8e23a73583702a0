// Command behaviours-demo ticks a small patrol tree in a terminal UI,
// showing the blackboard and the engine's enter/exit trace as it runs.
// Space forces a tick, "r" rebuilds the tree, "q" quits; otherwise the
// tree advances on a timer, one logical tick per frame.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	behaviours "github.com/joeycumines/go-behaviours"
	"github.com/joeycumines/go-behaviours/exprleaf"
)

const (
	tickEvery  = 400 * time.Millisecond
	traceLines = 10
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	traceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	tree     *behaviours.Node
	bb       *behaviours.Blackboard
	trace    *traceBuffer
	ticks    int
	finished bool
	success  bool
}

func newModel() model {
	m := model{trace: newTraceBuffer(traceLines)}
	behaviours.SetLogger(m.trace.Logger())
	m.reset()
	return m
}

func (m *model) reset() {
	bb := new(behaviours.Blackboard)
	bb.Set("battery", 100)
	bb.Set("position", 0)
	bb.Set("reports", 0)

	drain := func(by int) behaviours.Effect {
		return func(state any) error {
			state.(*behaviours.Blackboard).Update("battery", func(v any) any { return v.(int) - by })
			return nil
		}
	}
	advance := func(state any) error {
		state.(*behaviours.Blackboard).Update("position", func(v any) any { return v.(int) + 1 })
		return nil
	}
	report := func(state any) error {
		state.(*behaviours.Blackboard).Update("reports", func(v any) any { return v.(int) + 1 })
		return nil
	}

	source := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	m.tree = behaviours.While("patrol",
		exprleaf.Eval("battery ok", "battery > 20"),
		behaviours.Repeat(behaviours.Sequence("leg",
			behaviours.Do("advance", advance),
			behaviours.Do("drain", drain(5)),
			behaviours.Wait(2),
			behaviours.ChanceSource(0.3, source, behaviours.Do("report", report)),
		)),
	)
	m.bb = bb
	m.ticks = 0
	m.finished = false
	m.trace.Reset()
}

func (m model) Init() tea.Cmd { return tickCmd() }

func (m model) step() model {
	if m.finished {
		return m
	}
	m.ticks++
	running, success := m.tree.Tick(m.bb)
	if !running {
		m.finished = true
		m.success = success
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.step(), tickCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			return m.step(), nil
		case "r":
			m.reset()
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	status := runningStyle.Render("running")
	if m.finished {
		if m.success {
			status = successStyle.Render("finished: success")
		} else {
			status = failureStyle.Render("finished: failure")
		}
	}

	var state strings.Builder
	snapshot := m.bb.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&state, "%s %v\n", labelStyle.Render(k+":"), snapshot[k])
	}
	fmt.Fprintf(&state, "%s %d", labelStyle.Render("ticks:"), m.ticks)

	left := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("patrol tree"),
		status,
		"",
		state.String(),
	))
	right := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("trace"),
		traceStyle.Render(strings.Join(m.trace.Lines(), "\n")),
	))

	help := labelStyle.Render("space: tick  r: reset  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	) + "\n"
}

func main() {
	if _, err := tea.NewProgram(newModel()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "behaviours-demo:", err)
		os.Exit(1)
	}
}
