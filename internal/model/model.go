package model

import "sort"

// CPUSnapshot is one sampling tick of CPU utilization.
type CPUSnapshot struct {
	Total   float64   // aggregate non-idle fraction, 0-1
	PerCore []float64 // per-core non-idle fraction, 0-1
	Cores   int       // detected core count, at least 1
}

// Memory captures the meminfo summary in kB.
type Memory struct {
	TotalKB     uint64
	FreeKB      uint64
	AvailableKB uint64
}

// UsedPct returns the effectively-used fraction (total minus available).
func (m Memory) UsedPct() float64 {
	if m.TotalKB == 0 {
		return 0
	}
	return float64(m.TotalKB-m.AvailableKB) / float64(m.TotalKB)
}

// Process is one live process as seen by the scanner.
type Process struct {
	PID     int
	UID     int
	User    string
	Command string

	UserTicks   uint64
	SystemTicks uint64
	RSSKB       uint64
	Nice        int

	CPUPercent float64 // rate since the previous scan; 0 on first sight

	Running           bool // false when stopped or zombie
	SuspendedByPolicy bool // held stopped by the resource policy
}

// SortKey selects the process table ordering.
type SortKey int

const (
	SortCPU SortKey = iota
	SortMemory
)

// SortProcesses orders a table in place, descending by the chosen key
// with ascending PID as the tie break.
func SortProcesses(procs []Process, key SortKey) {
	sort.Slice(procs, func(i, j int) bool {
		switch key {
		case SortMemory:
			if procs[i].RSSKB != procs[j].RSSKB {
				return procs[i].RSSKB > procs[j].RSSKB
			}
		default:
			if procs[i].CPUPercent != procs[j].CPUPercent {
				return procs[i].CPUPercent > procs[j].CPUPercent
			}
		}
		return procs[i].PID < procs[j].PID
	})
}
