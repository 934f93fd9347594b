//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// countInstructions counts the CPU instructions retired while f runs
func countInstructions(f func()) (instructions uint64, err error) {
	pv, err := perf.CPUInstructions(func() error {
		f()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting instructions: %w", err)
	}
	if pv.TimeRunning != 0 && pv.TimeRunning < pv.TimeEnabled {
		// Counter was multiplexed, scale to the enabled time
		return uint64(float64(pv.Value) * float64(pv.TimeEnabled) / float64(pv.TimeRunning)), nil
	}
	return pv.Value, nil
}
