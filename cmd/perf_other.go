//go:build !linux

package cmd

import "errors"

func countInstructions(f func()) (uint64, error) {
	return 0, errors.New("instruction counting is only available on linux")
}
