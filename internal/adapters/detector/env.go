// Package detector picks how the build driver attaches to the terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// DriverMode is the way the build driver's output is connected.
type DriverMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto DriverMode = iota
	// ModePTY runs make on a pseudo-terminal so it keeps colors and line buffering.
	ModePTY
	// ModePipe runs make with plain pipes.
	ModePipe
)

func (m DriverMode) String() string {
	switch m {
	case ModePTY:
		return "pty"
	case ModePipe:
		return "pipe"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended driver mode.
// Pipes are used when stdout is not a terminal or when running under CI.
func DetectEnvironment() DriverMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePipe
	}
	return ModePTY
}

// ResolveMode applies a user override to the detected mode.
// userFlag is one of "auto", "pty", "pipe", "ci" or empty.
func ResolveMode(autoDetected DriverMode, userFlag string) DriverMode {
	switch userFlag {
	case "pty":
		return ModePTY
	case "pipe", "ci":
		return ModePipe
	default:
		return autoDetected
	}
}
