package config

import (
	"flag"
	"os"
	"time"
)

// Config carries runtime options for uxtop.
type Config struct {
	CPUInterval  time.Duration
	ProcInterval time.Duration
	HistorySize  int
	MaxCores     int
	Sort         string
	CPUThreshold float64
	MemThreshold uint64 // kB
	PriorityCap  int
}

func Default() Config {
	return Config{
		CPUInterval:  120 * time.Millisecond,
		ProcInterval: 1500 * time.Millisecond,
		HistorySize:  120,
		MaxCores:     128,
		Sort:         "cpu",
		CPUThreshold: 10.0,
		MemThreshold: 500000,
		PriorityCap:  10,
	}
}

// FromFlags parses flags and environment overrides.
func FromFlags(args []string) Config {
	cfg := Default()
	fs := flag.NewFlagSet("uxtop", flag.ContinueOnError)
	fs.DurationVar(&cfg.CPUInterval, "cpu-interval", cfg.CPUInterval, "CPU sampling interval")
	fs.DurationVar(&cfg.ProcInterval, "proc-interval", cfg.ProcInterval, "process table scan interval")
	fs.IntVar(&cfg.HistorySize, "history", cfg.HistorySize, "utilization history length in samples")
	fs.IntVar(&cfg.MaxCores, "max-cores", cfg.MaxCores, "maximum number of cores tracked")
	fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "sort column: cpu|mem")
	fs.Float64Var(&cfg.CPUThreshold, "cpu-threshold", cfg.CPUThreshold, "auto-manage CPU%% threshold")
	fs.Uint64Var(&cfg.MemThreshold, "mem-threshold", cfg.MemThreshold, "auto-manage RSS threshold in kB")
	_ = fs.Parse(args)

	if v := os.Getenv("UXTOP_CPU_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.CPUInterval = parsed
		}
	}
	if v := os.Getenv("UXTOP_PROC_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.ProcInterval = parsed
		}
	}
	if cfg.HistorySize < 1 {
		cfg.HistorySize = Default().HistorySize
	}
	if cfg.MaxCores < 1 {
		cfg.MaxCores = 1
	}
	return cfg
}
