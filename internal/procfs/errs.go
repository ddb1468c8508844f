package procfs

import "errors"

var (
	// ErrNoCPULine indicates that the stat file had no parseable cpu line.
	ErrNoCPULine = errors.New("procfs: no cpu line")

	// ErrShortStat indicates that a per-process stat record had fewer
	// fields than expected.
	ErrShortStat = errors.New("procfs: short stat")

	// ErrNoStat indicates that a per-process stat record was empty or
	// missing its parenthesized command field.
	ErrNoStat = errors.New("procfs: malformed or empty stat")

	// ErrNoSensor indicates that no thermal zone matched a CPU-related
	// type label at startup.
	ErrNoSensor = errors.New("procfs: no cpu thermal sensor")
)
