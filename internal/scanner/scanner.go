//go:build linux

package scanner

import (
	"os/user"
	"strconv"
	"time"

	"github.com/life2harsh/unixpbl/internal/model"
	"github.com/life2harsh/unixpbl/internal/procfs"
)

// nominalInterval stands in for the elapsed time on the very first scan,
// when there is no previous wall-clock reference.
const nominalInterval = 1500 * time.Millisecond

// Scanner enumerates live processes and correlates each against the
// previous scan to derive a CPU-usage rate. The table is rebuilt from
// scratch every scan; the previous one is kept only for the deltas.
type Scanner struct {
	reader     *procfs.Reader
	clockTicks int

	procs    []model.Process
	prev     map[int]*model.Process // points into procs from the last scan
	prevTime time.Time

	users map[int]string // uid -> name, lookups are not cheap
}

func New(r *procfs.Reader) *Scanner {
	return &Scanner{
		reader:     r,
		clockTicks: procfs.ClockTicks(),
		prev:       make(map[int]*model.Process),
		users:      make(map[int]string),
	}
}

// Scan rebuilds the process table. Processes that vanish between
// enumeration and the detail reads are skipped silently; a process absent
// from this scan is simply gone from the table. Policy suspension marks
// made on the returned slice carry forward into the next scan.
func (s *Scanner) Scan(now time.Time) []model.Process {
	pids, err := s.reader.PIDs()
	if err != nil {
		return s.procs
	}

	elapsed := nominalInterval
	if !s.prevTime.IsZero() {
		if d := now.Sub(s.prevTime); d > 0 {
			elapsed = d
		}
	}
	elapsedMs := elapsed.Seconds() * 1000

	table := make([]model.Process, 0, len(pids))
	for _, pid := range pids {
		st, err := s.reader.ProcStat(pid)
		if err != nil {
			continue // vanished mid-read
		}
		// status is best-effort; kernel threads have no VmRSS line
		uid, rssKB, _ := s.reader.ProcStatus(pid)

		p := model.Process{
			PID:         pid,
			UID:         uid,
			User:        s.userName(uid),
			Command:     st.Comm,
			UserTicks:   st.UTime,
			SystemTicks: st.STime,
			RSSKB:       rssKB,
			Nice:        st.Nice,
			Running:     st.Running,
		}
		if pe, ok := s.prev[pid]; ok {
			d := deltaU64(st.UTime+st.STime, pe.UserTicks+pe.SystemTicks)
			cpuMs := float64(d) * 1000.0 / float64(s.clockTicks)
			p.CPUPercent = cpuMs * 100.0 / elapsedMs
			p.SuspendedByPolicy = pe.SuspendedByPolicy
		}
		table = append(table, p)
	}

	next := make(map[int]*model.Process, len(table))
	for i := range table {
		next[table[i].PID] = &table[i]
	}
	s.procs = table
	s.prev = next
	s.prevTime = now
	return table
}

// Table returns the most recent scan result.
func (s *Scanner) Table() []model.Process { return s.procs }

func (s *Scanner) userName(uid int) string {
	if name, ok := s.users[uid]; ok {
		return name
	}
	name := strconv.Itoa(uid)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	s.users[uid] = name
	return name
}

func deltaU64(now, prev uint64) uint64 {
	if now >= prev {
		return now - prev
	}
	// counter reset or PID reuse
	return 0
}
