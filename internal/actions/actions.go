//go:build linux

// Package actions applies kill/stop/continue/renice directly to PIDs.
// Everything here is best-effort: a target may exit at any moment, and a
// denied signal leaves state unchanged rather than surfacing an error to
// the user.
package actions

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/life2harsh/unixpbl/internal/model"
)

// termEscalationDelay is the grace window between SIGTERM and the SIGKILL
// backstop.
const termEscalationDelay = 200 * time.Millisecond

const (
	niceMin = -20
	niceMax = 19
)

// Executor sends process-control signals. It satisfies policy.Signaler.
type Executor struct{}

// Terminate asks the process to exit and unconditionally backstops with a
// forceful kill after a short delay. A failed TERM send means the target
// is already gone, which counts as success; exit is never confirmed.
func (Executor) Terminate(pid int) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return nil
	}
	time.Sleep(termEscalationDelay)
	_ = unix.Kill(pid, unix.SIGKILL)
	return nil
}

// Stop suspends the process.
func (Executor) Stop(pid int) error {
	return unix.Kill(pid, unix.SIGSTOP)
}

// Continue resumes a stopped process.
func (Executor) Continue(pid int) error {
	return unix.Kill(pid, unix.SIGCONT)
}

// ToggleRunState stops a running process or continues a stopped one. The
// record's Running flag is updated optimistically; the next scan corrects
// it either way.
func (e Executor) ToggleRunState(p *model.Process) {
	if p.Running {
		_ = e.Stop(p.PID)
		p.Running = false
	} else {
		_ = e.Continue(p.PID)
		p.Running = true
	}
}

// Renice shifts the process nice value by delta, clamped to the platform
// range. Unreadable current priority is a no-op; a denied set is silently
// ignored.
func (Executor) Renice(pid, delta int) {
	prio, err := unix.Getpriority(unix.PRIO_PROCESS, pid)
	if err != nil {
		return
	}
	// getpriority(2) reports 20-nice so the syscall never returns a
	// negative value; undo that.
	nice := 20 - prio
	_ = unix.Setpriority(unix.PRIO_PROCESS, pid, clampNice(nice+delta))
}

func clampNice(v int) int {
	if v < niceMin {
		return niceMin
	}
	if v > niceMax {
		return niceMax
	}
	return v
}
