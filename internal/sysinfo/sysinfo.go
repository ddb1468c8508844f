//go:build linux

// Package sysinfo gathers the static host description shown on the main
// and system-info pages. One-shot reads, no derived state.
package sysinfo

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Host is the one-shot environment description.
type Host struct {
	CPUModel string
	BaseMHz  float64
	Cores    int
	OS       string
	Kernel   string
	Hostname string
}

// Collect reads the host description once at startup. Every field is
// best-effort and falls back to a neutral value.
func Collect() Host {
	h := Host{
		CPUModel: "Unknown CPU",
		OS:       "Linux",
		Cores:    runtime.NumCPU(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		if infos[0].ModelName != "" {
			h.CPUModel = infos[0].ModelName
		}
		h.BaseMHz = infos[0].Mhz
	}
	if hi, err := host.Info(); err == nil {
		if hi.Platform != "" {
			h.OS = hi.Platform
			if hi.PlatformVersion != "" {
				h.OS += " " + hi.PlatformVersion
			}
		}
		h.Kernel = hi.KernelVersion
		h.Hostname = hi.Hostname
	}
	return h
}

// Uptime formats the host uptime as hh:mm:ss.
func Uptime() string {
	secs, err := host.Uptime()
	if err != nil {
		return "00:00:00"
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// LoadAvg returns the 1/5/15 minute load averages, zeros when unavailable.
func LoadAvg() (load1, load5, load15 float64) {
	avg, err := load.Avg()
	if err != nil {
		return 0, 0, 0
	}
	return avg.Load1, avg.Load5, avg.Load15
}

// SwapPct returns swap usage as a fraction, zero when there is no swap.
func SwapPct() float64 {
	swap, err := mem.SwapMemory()
	if err != nil || swap.Total == 0 {
		return 0
	}
	return float64(swap.Used) / float64(swap.Total)
}

// SummaryBlob runs the external system-summary printer and returns its
// stdout as an opaque text blob. Empty when the tool is missing or slow.
func SummaryBlob() string {
	out, err := runCmd(600*time.Millisecond, "neofetch", "--stdout")
	if err != nil {
		return ""
	}
	return out
}

func runCmd(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}
