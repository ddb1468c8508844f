//go:build linux

// Package procfs holds the stateless one-shot readers over kernel-exposed
// counter files. Every reader either returns a validated value or an error;
// partially parsed values are never propagated. Callers treat errors as
// "metric unavailable", never as fatal.
package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MaxCommLen bounds the command-name strings kept in the process table.
const MaxCommLen = 64

// Reader reads counters from a proc and sys filesystem root. The zero-ish
// defaults from New point at the live kernel; tests point them at a
// synthetic tree.
type Reader struct {
	Proc string
	Sys  string
}

func New() *Reader {
	return &Reader{Proc: "/proc", Sys: "/sys"}
}

// ClockTicks returns the kernel's clock ticks per second. The CLK_TCK env
// var overrides it for testing; 100 is the usual value on Linux and calling
// sysconf(_SC_CLK_TCK) needs cgo.
func ClockTicks() int {
	if v, _ := strconv.Atoi(os.Getenv("CLK_TCK")); v > 0 {
		return v
	}
	return 100
}

// CPULine is one raw cpu row from the global stat file: a label plus the
// eight monotonically increasing tick fields.
type CPULine struct {
	Label   string
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Total sums all eight fields.
func (l CPULine) Total() uint64 {
	return l.User + l.Nice + l.System + l.Idle + l.IOWait + l.IRQ + l.SoftIRQ + l.Steal
}

// CPULines reads the labelled cpu rows from the global stat file in file
// order: the aggregate line first, then one line per core. Scanning stops
// at the first line whose label does not start with "cpu" (interrupt
// counters and friends).
func (r *Reader) CPULines() ([]CPULine, error) {
	f, err := os.Open(r.Proc + "/stat")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []CPULine
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line, ok := parseCPULine(sc.Text())
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrNoCPULine
	}
	return lines, nil
}

func parseCPULine(s string) (CPULine, bool) {
	fields := strings.Fields(s)
	if len(fields) < 9 || !strings.HasPrefix(fields[0], "cpu") {
		return CPULine{}, false
	}
	var vals [8]uint64
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return CPULine{}, false
		}
		vals[i] = v
	}
	return CPULine{
		Label:   fields[0],
		User:    vals[0],
		Nice:    vals[1],
		System:  vals[2],
		Idle:    vals[3],
		IOWait:  vals[4],
		IRQ:     vals[5],
		SoftIRQ: vals[6],
		Steal:   vals[7],
	}, true
}

// ProcStat is the subset of a per-process stat record the scanner needs.
type ProcStat struct {
	Comm    string
	UTime   uint64
	STime   uint64
	Nice    int
	Running bool // false for stopped (T) and zombie (Z) states
}

// ProcStat reads /proc/<pid>/stat. The 2nd field is the parenthesized
// command name, which may itself contain spaces or parentheses, so the
// trailing fields are located from the last ')' in the line.
func (r *Reader) ProcStat(pid int) (ProcStat, error) {
	b, err := os.ReadFile(fmt.Sprintf("%s/%d/stat", r.Proc, pid))
	if err != nil {
		return ProcStat{}, err
	}
	return parseProcStat(string(b))
}

func parseProcStat(line string) (ProcStat, error) {
	line = strings.TrimRight(line, "\n")
	rp := strings.LastIndexByte(line, ')')
	lp := strings.IndexByte(line, '(')
	if rp < 0 || lp < 0 || rp < lp {
		return ProcStat{}, ErrNoStat
	}
	comm := line[lp+1 : rp]
	if len(comm) > MaxCommLen {
		comm = comm[:MaxCommLen]
	}

	// Positional fields after the comm: state is overall field 3,
	// utime 14, stime 15, nice 19.
	fields := strings.Fields(line[rp+1:])
	if len(fields) < 17 {
		return ProcStat{}, ErrShortStat
	}
	st := ProcStat{Comm: comm, Running: true}
	if state := fields[0]; state == "T" || state == "Z" || state == "t" {
		st.Running = false
	}
	var err error
	if st.UTime, err = strconv.ParseUint(fields[11], 10, 64); err != nil {
		return ProcStat{}, ErrShortStat
	}
	if st.STime, err = strconv.ParseUint(fields[12], 10, 64); err != nil {
		return ProcStat{}, ErrShortStat
	}
	nice, err := strconv.Atoi(fields[16])
	if err != nil {
		return ProcStat{}, ErrShortStat
	}
	st.Nice = nice
	return st, nil
}

// ProcStatus reads the owning UID and resident set size (kB) from
// /proc/<pid>/status. A missing VmRSS line (kernel threads) yields 0.
func (r *Reader) ProcStatus(pid int) (uid int, rssKB uint64, err error) {
	f, err := os.Open(fmt.Sprintf("%s/%d/status", r.Proc, pid))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "Uid:"):
			fields := strings.Fields(line[4:])
			if len(fields) > 0 {
				uid, _ = strconv.Atoi(fields[0])
			}
		case strings.HasPrefix(line, "VmRSS:"):
			fields := strings.Fields(line[6:])
			if len(fields) > 0 {
				rssKB, _ = strconv.ParseUint(fields[0], 10, 64)
			}
		}
	}
	return uid, rssKB, sc.Err()
}

// MemInfo returns the MemTotal, MemFree and MemAvailable values in kB
// from the system memory summary.
func (r *Reader) MemInfo() (totalKB, freeKB, availKB uint64, err error) {
	f, err := os.Open(r.Proc + "/meminfo")
	if err != nil {
		return 0, 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		v, perr := strconv.ParseUint(fields[1], 10, 64)
		if perr != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			totalKB = v
		case "MemFree:":
			freeKB = v
		case "MemAvailable:":
			availKB = v
		}
	}
	return totalKB, freeKB, availKB, sc.Err()
}

// PIDs enumerates the numeric entries of the proc root.
func (r *Reader) PIDs() ([]int, error) {
	entries, err := os.ReadDir(r.Proc)
	if err != nil {
		return nil, err
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
