//go:build linux

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/life2harsh/unixpbl/internal/sysinfo"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("82")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
	gaugeFill  = "█"
	gaugeEmpty = "░"
	sparks     = []rune("▁▂▃▄▅▆▇█")
)

func (m *Model) View() string {
	switch m.page {
	case pageGraphs:
		return m.viewGraphs()
	case pageSysInfo:
		return m.viewSysInfo()
	case pageProcs:
		return m.viewProcs()
	case pageResourceMgr:
		return m.viewResourceMgr()
	case pageHelp:
		return m.viewHelp()
	case pageAbout:
		return m.viewAbout()
	default:
		return m.viewMain()
	}
}

func (m *Model) viewMain() string {
	h := m.hostInfo
	lines := []string{
		titleStyle.Render("uxtop") + "  " + subtleStyle.Render("host task manager"),
		"",
		"CPU:    " + h.CPUModel,
		fmt.Sprintf("Base:   %.2f GHz   Cores: %d", h.BaseMHz/1000.0, h.Cores),
		"OS:     " + h.OS,
		"Kernel: " + h.Kernel,
		"Host:   " + h.Hostname,
		"",
		labelStyle.Render("Menu"),
	}
	for i, item := range menuItems {
		if i == m.menuSel {
			lines = append(lines, selectedStyle.Render(item))
		} else {
			lines = append(lines, item)
		}
	}
	lines = append(lines, "",
		subtleStyle.Render("j/k move   enter open   tab procs   q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewGraphs() string {
	snap := m.eng.Snapshot()
	hist := m.eng.History()
	width := m.width - 10
	if width < 20 {
		width = 20
	}
	if width > 120 {
		width = 120
	}

	var cards []string
	cards = append(cards, card("CPU total", gaugeBar(snap.Total, 28)))
	if hist != nil {
		for core := 0; core < hist.Series(); core++ {
			body := sparkline(hist.Tail(core, width)) +
				fmt.Sprintf("  %5.1f%%", hist.Last(core)*100)
			cards = append(cards, card(fmt.Sprintf("C%d", core), body))
		}
	}
	memBody := sparkline(m.eng.MemHistory().Tail(width)) +
		fmt.Sprintf("  %5.1f%%", m.eng.MemHistory().Last()*100)
	cards = append(cards, card("Memory", memBody))

	header := titleStyle.Render("CPU Activity")
	footer := subtleStyle.Render("q/esc back")
	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{header}, append(cards, footer)...)...)
}

func (m *Model) viewSysInfo() string {
	h := m.hostInfo
	mem := m.eng.Memory()
	usedPct := mem.UsedPct()

	lines := []string{
		titleStyle.Render("System Info"),
		"",
		"CPU Model: " + h.CPUModel,
		fmt.Sprintf("Cores: %d   Base: %.2f GHz", h.Cores, h.BaseMHz/1000.0),
		"Uptime: " + sysinfo.Uptime(),
	}

	load1, load5, load15 := sysinfo.LoadAvg()
	lines = append(lines, fmt.Sprintf("Load: %.2f %.2f %.2f", load1, load5, load15))

	if t, ok := m.eng.TempC(); ok {
		lines = append(lines, fmt.Sprintf("Temp: %.1f C  %s", t, gaugeBar(t/100.0, 30)))
	} else {
		lines = append(lines, "Temp: N/A")
	}

	lines = append(lines, "",
		fmt.Sprintf("Memory: Used %d MB | Avail %d MB | Free %d MB | Total %d MB",
			(mem.TotalKB-mem.AvailableKB)/1024, mem.AvailableKB/1024,
			mem.FreeKB/1024, mem.TotalKB/1024),
		gaugeBar(usedPct, 40),
		fmt.Sprintf("Swap: %s", gaugeBar(sysinfo.SwapPct(), 40)),
		"")

	freqs := m.reader.CoreFreqsMHz(m.eng.Snapshot().Cores, h.BaseMHz)
	lines = append(lines, "Per-core frequency (MHz):")
	var row []string
	for i, f := range freqs {
		row = append(row, fmt.Sprintf("C%-2d %6.0f", i, f))
		if (i+1)%6 == 0 || i == len(freqs)-1 {
			lines = append(lines, "  "+strings.Join(row, "   "))
			row = nil
		}
	}

	lines = append(lines, "", subtleStyle.Render("q/esc back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewProcs() string {
	table := m.sortedTable()
	snap := m.eng.Snapshot()
	mem := m.eng.Memory()

	header := titleStyle.Render(fmt.Sprintf("Process Manager - %d processes", len(table)))
	cpuLine := "CPU: " + gaugeBar(snap.Total, 30)
	memLine := "MEM: " + gaugeBar(mem.UsedPct(), 30)

	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-20s %-12s %8s %10s %5s %-5s %s\n",
		"PID", "COMMAND", "USER", "CPU%", "MEM(MB)", "NI", "STATE", "")

	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	start := m.procSel - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(table) {
		end = len(table)
	}

	cores := snap.Cores
	if cores < 1 {
		cores = 1
	}
	for i := start; i < end; i++ {
		p := table[i]
		state := "RUN"
		if !p.Running {
			state = "STOP"
		}
		tag := ""
		if p.SuspendedByPolicy {
			tag = "held"
		}
		// display rate is normalized by core count; the table keeps raw
		line := fmt.Sprintf("%-8d %-20s %-12s %8.1f %10.1f %5d %-5s %s",
			p.PID, truncate(p.Command, 20), truncate(p.User, 12),
			p.CPUPercent/float64(cores), float64(p.RSSKB)/1024.0, p.Nice, state, tag)
		if i == m.procSel {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	footer := subtleStyle.Render(
		"j/k move  c cpu  m mem  K kill  S stop/cont  +/- nice  a priority  tab back")
	return lipgloss.JoinVertical(lipgloss.Left,
		header, cpuLine, memLine, "", strings.TrimRight(b.String(), "\n"), "", footer)
}

func (m *Model) viewResourceMgr() string {
	pl := m.eng.Priorities()
	lines := []string{
		titleStyle.Render("Resource Manager"),
		"",
	}
	if m.eng.AutoManageEnabled() {
		lines = append(lines, "Auto Management: "+okStyle.Render("[ENABLED]"),
			"Low-priority processes are suspended while priority apps run")
	} else {
		lines = append(lines, "Auto Management: "+warnStyle.Render("[DISABLED]"),
			"Press 't' to enable automatic resource management")
	}
	lines = append(lines, "",
		labelStyle.Render(fmt.Sprintf("Priority Processes (%d/%d):", pl.Len(), pl.Cap())))
	names := pl.Names()
	if len(names) == 0 {
		lines = append(lines, "  (No priority processes set)")
	}
	for i, n := range names {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, n))
	}
	if n := m.eng.SuspendedCount(); n > 0 {
		lines = append(lines, "",
			warnStyle.Render(fmt.Sprintf("Currently Suspended: %d processes", n)),
			"Press 'r' to resume all suspended processes")
	}
	lines = append(lines, "",
		subtleStyle.Render("t toggle  r resume all  d remove last  q/esc back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewHelp() string {
	return strings.Join([]string{
		titleStyle.Render("Help"),
		"",
		"Navigation:",
		"  j/k or arrows  - Move selection",
		"  enter          - Select",
		"  esc or q       - Back / Quit",
		"  tab            - Toggle Process Manager",
		"",
		"Process Manager:",
		"  c              - Sort by CPU     m - Sort by Memory",
		"  K              - Kill process    S - Stop/Continue",
		"  + / -          - Raise/Lower priority (nice)",
		"  a              - Add to priority list",
		"",
		"Resource Manager:",
		"  t              - Toggle auto management",
		"  r              - Resume all suspended",
		"  d              - Remove last priority entry",
	}, "\n")
}

func (m *Model) viewAbout() string {
	lines := []string{
		titleStyle.Render("About"),
		"",
		"uxtop - host task manager",
		"System: " + m.hostInfo.OS,
		"Kernel: " + m.hostInfo.Kernel,
		"Host:   " + m.hostInfo.Hostname,
	}
	if m.summary != "" {
		lines = append(lines, "", subtleStyle.Render(strings.TrimRight(m.summary, "\n")))
	}
	lines = append(lines, "", subtleStyle.Render("q/esc back"))
	return strings.Join(lines, "\n")
}

// Helpers

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func gaugeBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		frac*100)
}

func sparkline(vals []float64) string {
	var b strings.Builder
	for _, v := range vals {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		idx := int(v * float64(len(sparks)-1))
		b.WriteRune(sparks[idx])
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
