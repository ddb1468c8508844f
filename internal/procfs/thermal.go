//go:build linux

package procfs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// cpuSensorKeywords mark thermal zone type labels that report a CPU
// temperature rather than some other component.
var cpuSensorKeywords = []string{"cpu", "x86", "pkg", "soc", "core"}

const maxThermalZones = 128

// DetectTempSensor probes the thermal zones in index order and returns the
// temp file path of the first zone whose type label matches a CPU keyword,
// case-insensitively. Called once at startup; ErrNoSensor means temperature
// reporting stays unavailable for the session.
func (r *Reader) DetectTempSensor() (string, error) {
	for i := 0; i < maxThermalZones; i++ {
		b, err := os.ReadFile(fmt.Sprintf("%s/class/thermal/thermal_zone%d/type", r.Sys, i))
		if err != nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(string(b)))
		for _, kw := range cpuSensorKeywords {
			if strings.Contains(label, kw) {
				return fmt.Sprintf("%s/class/thermal/thermal_zone%d/temp", r.Sys, i), nil
			}
		}
	}
	return "", ErrNoSensor
}

// TempC reads one millidegree-Celsius sample from a sensor path returned
// by DetectTempSensor.
func (r *Reader) TempC(sensorPath string) (float64, error) {
	b, err := os.ReadFile(sensorPath)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, err
	}
	return milli / 1000.0, nil
}

// CoreFreqsMHz returns the current frequency per core. Cores that expose
// scaling_cur_freq report it directly; when no core exposes it the static
// base frequency is held uniformly for all cores, and zero means unknown.
func (r *Reader) CoreFreqsMHz(cores int, baseMHz float64) []float64 {
	freqs := make([]float64, cores)
	found := false
	for i := 0; i < cores; i++ {
		path := fmt.Sprintf("%s/devices/system/cpu/cpu%d/cpufreq/scaling_cur_freq", r.Sys, i)
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
		if err != nil {
			continue
		}
		freqs[i] = float64(khz) / 1000.0
		found = true
	}
	if !found && baseMHz > 0 {
		for i := range freqs {
			freqs[i] = baseMHz
		}
	}
	return freqs
}
