// Package policy implements the fair-access auto-management rules: while a
// priority process is running, non-critical resource hogs owned by regular
// users are suspended until explicitly resumed.
package policy

import (
	"github.com/life2harsh/unixpbl/internal/model"
)

// Signaler delivers stop/continue signals. The action executor implements
// it; tests substitute a recorder.
type Signaler interface {
	Stop(pid int) error
	Continue(pid int) error
}

// Thresholds decide what counts as a resource hog.
type Thresholds struct {
	CPUPercent float64 // suspend above this CPU rate
	MemoryKB   uint64  // or above this resident set size
}

// DefaultThresholds matches the documented policy: >10% CPU or >500MB RSS.
var DefaultThresholds = Thresholds{CPUPercent: 10.0, MemoryKB: 500000}

// Engine evaluates the suspension rules once per scan. It is level
// triggered: the whole table is re-examined every pass, and the only
// memory kept between passes is the sticky SuspendedByPolicy mark on the
// process records themselves.
type Engine struct {
	signaler   Signaler
	priorities *model.PriorityList
	thresholds Thresholds
	enabled    bool
}

func New(sig Signaler, priorities *model.PriorityList, th Thresholds) *Engine {
	return &Engine{signaler: sig, priorities: priorities, thresholds: th}
}

func (e *Engine) Enabled() bool { return e.enabled }

// SetEnabled flips auto-management. Disabling resumes every policy-held
// process in the same call, so there is no state where the flag is off but
// processes remain suspended.
func (e *Engine) SetEnabled(enabled bool, procs []model.Process) {
	if !enabled && e.enabled {
		e.ResumeAll(procs)
	}
	e.enabled = enabled
}

// Toggle flips the flag and returns the new value.
func (e *Engine) Toggle(procs []model.Process) bool {
	e.SetEnabled(!e.enabled, procs)
	return e.enabled
}

// Manage runs one policy pass over the table, marking records it manages
// to suspend in place. It does nothing unless auto-management is on and at
// least one priority process is currently running. Suspension is sticky:
// nothing is resumed here, even when all priority processes are gone.
func (e *Engine) Manage(procs []model.Process) {
	if !e.enabled {
		return
	}

	priorityRunning := false
	for i := range procs {
		if procs[i].Running && e.priorities.Matches(procs[i].Command) {
			priorityRunning = true
			break
		}
	}
	if !priorityRunning {
		return
	}

	for i := range procs {
		p := &procs[i]
		if e.priorities.Matches(p.Command) {
			continue
		}
		// Hard safety rule: never touch system-critical or root-owned
		// processes, whatever they consume.
		if IsSystemCritical(p.Command) || p.UID == 0 {
			continue
		}
		if !p.Running || p.SuspendedByPolicy {
			continue
		}
		if p.CPUPercent > e.thresholds.CPUPercent || p.RSSKB > e.thresholds.MemoryKB {
			if e.signaler.Stop(p.PID) == nil {
				p.SuspendedByPolicy = true
				p.Running = false
			}
		}
	}
}

// ResumeAll sends a continue to every policy-held process and clears the
// marks. The enabled flag is left alone; SetEnabled(false, ...) uses this
// for its atomic resume pass.
func (e *Engine) ResumeAll(procs []model.Process) {
	for i := range procs {
		if procs[i].SuspendedByPolicy {
			_ = e.signaler.Continue(procs[i].PID)
			procs[i].SuspendedByPolicy = false
			procs[i].Running = true
		}
	}
}

// SuspendedCount reports how many records are currently policy-held.
func SuspendedCount(procs []model.Process) int {
	n := 0
	for i := range procs {
		if procs[i].SuspendedByPolicy {
			n++
		}
	}
	return n
}
