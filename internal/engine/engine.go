//go:build linux

// Package engine ties the sampler, scanner and policy together behind the
// command set the UI drives. One Engine is owned by the polling loop;
// nothing here is safe for concurrent use and nothing needs to be.
package engine

import (
	"time"

	"github.com/life2harsh/unixpbl/internal/config"
	"github.com/life2harsh/unixpbl/internal/model"
	"github.com/life2harsh/unixpbl/internal/policy"
	"github.com/life2harsh/unixpbl/internal/procfs"
	"github.com/life2harsh/unixpbl/internal/sampler"
	"github.com/life2harsh/unixpbl/internal/scanner"
)

// Actions is the process-control surface the engine needs; the real
// implementation is actions.Executor.
type Actions interface {
	policy.Signaler
	Terminate(pid int) error
	ToggleRunState(p *model.Process)
	Renice(pid, delta int)
}

// Engine owns the sampling state and the auto-management machinery. Two
// logical timers drive it: a fast one for CPU/memory sampling and a slower
// one for the full process-table scan.
type Engine struct {
	cfg config.Config

	sampler    *sampler.Sampler
	scanner    *scanner.Scanner
	policy     *policy.Engine
	priorities *model.PriorityList
	acts       Actions

	sortKey model.SortKey

	lastCPU  time.Time
	lastProc time.Time
}

func New(cfg config.Config, reader *procfs.Reader, acts Actions) *Engine {
	priorities := model.NewPriorityList(cfg.PriorityCap)
	sortKey := model.SortCPU
	if cfg.Sort == "mem" {
		sortKey = model.SortMemory
	}
	return &Engine{
		cfg:        cfg,
		sampler:    sampler.New(reader, cfg.MaxCores, cfg.HistorySize),
		scanner:    scanner.New(reader),
		priorities: priorities,
		policy: policy.New(acts, priorities, policy.Thresholds{
			CPUPercent: cfg.CPUThreshold,
			MemoryKB:   cfg.MemThreshold,
		}),
		acts:    acts,
		sortKey: sortKey,
	}
}

// Tick runs whichever samplers are due at the given instant. Reports
// whether the CPU sampler and the process scanner ran, so the caller knows
// when a redraw is worthwhile.
func (e *Engine) Tick(now time.Time) (cpuSampled, procScanned bool) {
	if e.lastCPU.IsZero() || now.Sub(e.lastCPU) >= e.cfg.CPUInterval {
		e.sampler.Sample()
		e.lastCPU = now
		cpuSampled = true
	}
	if e.lastProc.IsZero() || now.Sub(e.lastProc) >= e.cfg.ProcInterval {
		table := e.scanner.Scan(now)
		e.policy.Manage(table)
		e.lastProc = now
		procScanned = true
	}
	return cpuSampled, procScanned
}

// Data model accessors, consumed by the renderer.

func (e *Engine) Snapshot() model.CPUSnapshot { return e.sampler.Snapshot() }
func (e *Engine) Memory() model.Memory        { return e.sampler.Memory() }
func (e *Engine) History() *model.RingSet     { return e.sampler.History() }
func (e *Engine) MemHistory() *model.Ring     { return e.sampler.MemHistory() }
func (e *Engine) TempC() (float64, bool)      { return e.sampler.TempC() }
func (e *Engine) Table() []model.Process      { return e.scanner.Table() }

func (e *Engine) SuspendedCount() int {
	return policy.SuspendedCount(e.scanner.Table())
}

// Commands, mapped 1:1 from UI key events.

func (e *Engine) SortKey() model.SortKey       { return e.sortKey }
func (e *Engine) SetSortKey(key model.SortKey) { e.sortKey = key }

func (e *Engine) Priorities() *model.PriorityList { return e.priorities }

// AddPriority marks a command name as priority; duplicates and overflow
// beyond the list capacity are rejected.
func (e *Engine) AddPriority(command string) bool {
	return e.priorities.Add(command)
}

func (e *Engine) RemoveLastPriority() { e.priorities.RemoveLast() }

func (e *Engine) AutoManageEnabled() bool { return e.policy.Enabled() }

// ToggleAutoManage flips the flag; turning it off resumes everything the
// policy holds suspended before the flag reads false.
func (e *Engine) ToggleAutoManage() bool {
	return e.policy.Toggle(e.scanner.Table())
}

// ResumeAll resumes policy-held processes without touching the flag.
func (e *Engine) ResumeAll() {
	e.policy.ResumeAll(e.scanner.Table())
}

func (e *Engine) Terminate(pid int) { _ = e.acts.Terminate(pid) }

func (e *Engine) Renice(pid, delta int) { e.acts.Renice(pid, delta) }

// ToggleRunState stops or continues the given table entry, updating the
// record optimistically.
func (e *Engine) ToggleRunState(pid int) {
	table := e.scanner.Table()
	for i := range table {
		if table[i].PID == pid {
			e.acts.ToggleRunState(&table[i])
			return
		}
	}
}
