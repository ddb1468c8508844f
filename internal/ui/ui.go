//go:build linux

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/life2harsh/unixpbl/internal/config"
	"github.com/life2harsh/unixpbl/internal/engine"
	"github.com/life2harsh/unixpbl/internal/model"
	"github.com/life2harsh/unixpbl/internal/procfs"
	"github.com/life2harsh/unixpbl/internal/sysinfo"
)

type page int

const (
	pageMain page = iota
	pageGraphs
	pageSysInfo
	pageProcs
	pageResourceMgr
	pageHelp
	pageAbout
)

var menuItems = []string{
	"< Graphs >", "< System Info >", "< Processes >",
	"< Resource Manager >", "< Help >", "< About >", "< Quit >",
}

// Model renders the engine's data model and forwards key events to it.
type Model struct {
	cfg    config.Config
	eng    *engine.Engine
	reader *procfs.Reader

	hostInfo sysinfo.Host
	summary  string

	page    page
	menuSel int
	procSel int
	width   int
	height  int
}

func New(cfg config.Config, eng *engine.Engine, reader *procfs.Reader) *Model {
	return &Model{
		cfg:      cfg,
		eng:      eng,
		reader:   reader,
		hostInfo: sysinfo.Collect(),
		summary:  sysinfo.SummaryBlob(),
		width:    120,
		height:   40,
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		m.eng.Tick(time.Time(msg))
		m.clampSelection()
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.page == pageMain {
			return m, tea.Quit
		}
		m.page = pageMain
		return m, nil
	case "tab":
		if m.page == pageProcs {
			m.page = pageMain
		} else {
			m.page = pageProcs
		}
		return m, nil
	}

	switch m.page {
	case pageMain:
		m.handleMenuKey(key)
	case pageProcs:
		m.handleProcsKey(key)
	case pageResourceMgr:
		m.handleResourceKey(key)
	}
	return m, nil
}

func (m *Model) handleMenuKey(key string) {
	n := len(menuItems)
	switch key {
	case "up", "k":
		m.menuSel = (m.menuSel + n - 1) % n
	case "down", "j":
		m.menuSel = (m.menuSel + 1) % n
	case "enter":
		switch m.menuSel {
		case 0:
			m.page = pageGraphs
		case 1:
			m.page = pageSysInfo
		case 2:
			m.page = pageProcs
		case 3:
			m.page = pageResourceMgr
		case 4:
			m.page = pageHelp
		case 5:
			m.page = pageAbout
		}
	}
}

func (m *Model) handleProcsKey(key string) {
	switch key {
	case "up", "k":
		m.procSel--
	case "down", "j":
		m.procSel++
	case "pgup":
		m.procSel -= 10
	case "pgdown":
		m.procSel += 10
	case "c":
		m.eng.SetSortKey(model.SortCPU)
	case "m":
		m.eng.SetSortKey(model.SortMemory)
	case "K":
		if p, ok := m.selectedProc(); ok {
			m.eng.Terminate(p.PID)
		}
	case "S":
		if p, ok := m.selectedProc(); ok {
			m.eng.ToggleRunState(p.PID)
		}
	case "+":
		if p, ok := m.selectedProc(); ok {
			m.eng.Renice(p.PID, -1)
		}
	case "-":
		if p, ok := m.selectedProc(); ok {
			m.eng.Renice(p.PID, +1)
		}
	case "a":
		if p, ok := m.selectedProc(); ok {
			m.eng.AddPriority(p.Command)
		}
	}
	m.clampSelection()
}

func (m *Model) handleResourceKey(key string) {
	switch key {
	case "t":
		m.eng.ToggleAutoManage()
	case "r":
		m.eng.ResumeAll()
	case "d":
		m.eng.RemoveLastPriority()
	}
}

// sortedTable returns a sorted copy; the engine's table stays unsorted so
// scan correlation and policy marks are never disturbed by display order.
func (m *Model) sortedTable() []model.Process {
	table := m.eng.Table()
	out := make([]model.Process, len(table))
	copy(out, table)
	model.SortProcesses(out, m.eng.SortKey())
	return out
}

func (m *Model) selectedProc() (model.Process, bool) {
	table := m.sortedTable()
	if len(table) == 0 || m.procSel < 0 || m.procSel >= len(table) {
		return model.Process{}, false
	}
	return table[m.procSel], true
}

func (m *Model) clampSelection() {
	n := len(m.eng.Table())
	if m.procSel >= n {
		m.procSel = n - 1
	}
	if m.procSel < 0 {
		m.procSel = 0
	}
}

// Run starts the Bubble Tea program in the alternate screen.
func Run(cfg config.Config, eng *engine.Engine, reader *procfs.Reader) error {
	prog := tea.NewProgram(New(cfg, eng, reader), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
