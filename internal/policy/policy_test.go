package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/life2harsh/unixpbl/internal/model"
)

// fakeSignaler records signal deliveries and can refuse stops.
type fakeSignaler struct {
	stopped   []int
	continued []int
	stopErr   map[int]error
}

func newFakeSignaler() *fakeSignaler {
	return &fakeSignaler{stopErr: make(map[int]error)}
}

func (f *fakeSignaler) Stop(pid int) error {
	if err := f.stopErr[pid]; err != nil {
		return err
	}
	f.stopped = append(f.stopped, pid)
	return nil
}

func (f *fakeSignaler) Continue(pid int) error {
	f.continued = append(f.continued, pid)
	return nil
}

func newTestEngine(sig Signaler, priorityNames ...string) *Engine {
	pl := model.NewPriorityList(10)
	for _, n := range priorityNames {
		pl.Add(n)
	}
	e := New(sig, pl, DefaultThresholds)
	return e
}

func hog(pid int, command string, uid int, cpu float64, rssKB uint64) model.Process {
	return model.Process{
		PID: pid, UID: uid, Command: command,
		CPUPercent: cpu, RSSKB: rssKB, Running: true,
	}
}

func TestSuspendsHogWhilePriorityRuns(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "chrome", 1000, 15, 1000), // >10% CPU
	}
	e.Manage(procs)

	assert.Equal(t, []int{20}, sig.stopped)
	assert.True(t, procs[1].SuspendedByPolicy)
	assert.False(t, procs[1].Running)
	assert.False(t, procs[0].SuspendedByPolicy, "priority processes are never touched")
}

func TestMemoryThresholdAloneTriggers(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "editor", 1000, 1, 600000), // >500MB RSS, little CPU
	}
	e.Manage(procs)
	assert.Equal(t, []int{20}, sig.stopped)
}

func TestNoActionWithoutRunningPriority(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	// priority process exists but is stopped
	procs := []model.Process{
		{PID: 10, UID: 1000, Command: "ffmpeg", Running: false},
		hog(20, "chrome", 1000, 90, 9000000),
	}
	e.Manage(procs)
	assert.Empty(t, sig.stopped)
	assert.Empty(t, sig.continued, "no resumes either; suspension is sticky")
}

func TestDisabledEngineDoesNothing(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "chrome", 1000, 90, 1000),
	}
	e.Manage(procs)
	assert.Empty(t, sig.stopped)
}

func TestRootAndCriticalAreProtected(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "rootdaemon", 0, 95, 9000000),        // UID 0
		hog(30, "NetworkManager", 1000, 95, 9000000), // critical list
		hog(40, "systemd-oomd", 1000, 95, 9000000),   // substring match
	}
	e.Manage(procs)

	assert.Empty(t, sig.stopped, "hard safety rule, not a heuristic")
	for _, p := range procs {
		assert.False(t, p.SuspendedByPolicy)
	}
}

func TestBelowThresholdsLeftAlone(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "idleapp", 1000, 5, 100000),
	}
	e.Manage(procs)
	assert.Empty(t, sig.stopped)
}

func TestAlreadySuspendedNotStoppedAgain(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		{PID: 20, UID: 1000, Command: "chrome", CPUPercent: 15, RSSKB: 1000,
			Running: false, SuspendedByPolicy: true},
	}
	e.Manage(procs)
	assert.Empty(t, sig.stopped, "level-triggered pass must be idempotent")
}

func TestFailedStopLeavesRecordUnmarked(t *testing.T) {
	sig := newFakeSignaler()
	sig.stopErr[20] = errors.New("operation not permitted")
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "chrome", 1000, 15, 1000),
	}
	e.Manage(procs)
	assert.False(t, procs[1].SuspendedByPolicy)
	assert.True(t, procs[1].Running)
}

func TestDisableResumesEverythingAtomically(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "chrome", 1000, 15, 1000),
		hog(30, "slack", 1000, 20, 1000),
	}
	e.Manage(procs)
	require.Equal(t, 2, SuspendedCount(procs))

	e.SetEnabled(false, procs)
	assert.False(t, e.Enabled())
	assert.Equal(t, 0, SuspendedCount(procs), "flag off implies nothing held")
	assert.ElementsMatch(t, []int{20, 30}, sig.continued)
}

func TestResumeAllKeepsFlagOn(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(10, "ffmpeg", 1000, 50, 1000),
		hog(20, "chrome", 1000, 15, 1000),
	}
	e.Manage(procs)
	require.Equal(t, 1, SuspendedCount(procs))

	e.ResumeAll(procs)
	assert.True(t, e.Enabled())
	assert.Equal(t, 0, SuspendedCount(procs))
	assert.True(t, procs[1].Running)
}

func TestToggle(t *testing.T) {
	sig := newFakeSignaler()
	e := newTestEngine(sig)
	assert.True(t, e.Toggle(nil))
	assert.False(t, e.Toggle(nil))
}

func TestScenarioSuspendThenDisableResumes(t *testing.T) {
	// Priority list contains "ffmpeg"; a running ffmpeg exists; chrome at
	// 15% CPU gets suspended; disabling auto-management resumes it.
	sig := newFakeSignaler()
	e := newTestEngine(sig, "ffmpeg")
	e.SetEnabled(true, nil)

	procs := []model.Process{
		hog(1, "ffmpeg", 1000, 30, 2000),
		hog(2, "chrome", 1000, 15, 2000),
	}
	e.Manage(procs)
	require.True(t, procs[1].SuspendedByPolicy)

	e.SetEnabled(false, procs)
	assert.False(t, procs[1].SuspendedByPolicy)
	assert.Equal(t, []int{2}, sig.continued)
}

func TestIsSystemCritical(t *testing.T) {
	assert.True(t, IsSystemCritical("systemd"))
	assert.True(t, IsSystemCritical("kworker/0:1"))
	assert.True(t, IsSystemCritical("dbus-daemon"))
	assert.False(t, IsSystemCritical("vim"))
}
