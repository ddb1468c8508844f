//go:build linux

package sampler

import (
	"github.com/life2harsh/unixpbl/internal/model"
	"github.com/life2harsh/unixpbl/internal/procfs"
)

// Sampler converts successive global and per-core tick snapshots into
// utilization ratios and keeps the fixed-length history rings. All state
// lives on the struct; one goroutine owns it.
type Sampler struct {
	reader   *procfs.Reader
	maxCores int
	histLen  int

	prev    []procfs.CPULine
	hasPrev bool

	snap    model.CPUSnapshot
	history *model.RingSet // one ring per core, shared write cursor
	memHist *model.Ring    // memory used fraction, own cursor
	mem     model.Memory

	sensorPath string
	tempOK     bool
	temp       float64
	tempSeeded bool
}

// New probes the thermal sensor once; if no CPU-related zone exists,
// temperature stays unavailable for the session.
func New(r *procfs.Reader, maxCores, histLen int) *Sampler {
	s := &Sampler{
		reader:   r,
		maxCores: maxCores,
		histLen:  histLen,
		memHist:  model.NewRing(histLen),
	}
	if path, err := r.DetectTempSensor(); err == nil {
		s.sensorPath = path
		s.tempOK = true
	}
	return s
}

// Sample reads the cpu lines, derives utilization from the deltas against
// the previous tick, and appends to the history rings. The very first call
// has no baseline and reports zero everywhere instead of a spurious spike.
// An unreadable stat file leaves the previous snapshot in place.
func (s *Sampler) Sample() model.CPUSnapshot {
	lines, err := s.reader.CPULines()
	if err != nil {
		return s.snap
	}
	if len(lines) > s.maxCores+1 {
		lines = lines[:s.maxCores+1]
	}

	utils := make([]float64, len(lines))
	if s.hasPrev {
		for i, cur := range lines {
			if i >= len(s.prev) {
				continue
			}
			dTotal := deltaU64(cur.Total(), s.prev[i].Total())
			dIdle := deltaU64(cur.Idle, s.prev[i].Idle)
			if dTotal > 0 {
				utils[i] = clamp01(1.0 - float64(dIdle)/float64(dTotal))
			}
		}
	}
	s.prev = lines
	s.hasPrev = true

	cores := len(lines) - 1
	if cores < 1 {
		cores = 1
	}
	perCore := make([]float64, 0, cores)
	if len(lines) > 1 {
		perCore = append(perCore, utils[1:]...)
	}
	s.snap = model.CPUSnapshot{Total: utils[0], PerCore: perCore, Cores: cores}

	if s.history == nil {
		s.history = model.NewRingSet(cores, s.histLen)
	}
	s.history.PushAll(perCore)

	s.sampleMemory()
	s.sampleTemp()
	return s.snap
}

func (s *Sampler) sampleMemory() {
	totalKB, freeKB, availKB, err := s.reader.MemInfo()
	if err != nil {
		s.memHist.Push(s.mem.UsedPct())
		return
	}
	s.mem = model.Memory{TotalKB: totalKB, FreeKB: freeKB, AvailableKB: availKB}
	s.memHist.Push(s.mem.UsedPct())
}

func (s *Sampler) sampleTemp() {
	if !s.tempOK {
		return
	}
	t, err := s.reader.TempC(s.sensorPath)
	if err != nil {
		return
	}
	if !s.tempSeeded {
		s.temp = t
		s.tempSeeded = true
		return
	}
	s.temp = 0.7*s.temp + 0.3*t
}

// Snapshot returns the most recent CPU snapshot.
func (s *Sampler) Snapshot() model.CPUSnapshot { return s.snap }

// Memory returns the most recent memory summary.
func (s *Sampler) Memory() model.Memory { return s.mem }

// History returns the per-core utilization rings; nil before the first
// successful sample.
func (s *Sampler) History() *model.RingSet { return s.history }

// MemHistory returns the memory used-fraction ring.
func (s *Sampler) MemHistory() *model.Ring { return s.memHist }

// TempC returns the smoothed CPU temperature and whether a sensor exists.
func (s *Sampler) TempC() (float64, bool) { return s.temp, s.tempOK }
