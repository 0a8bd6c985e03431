// Package detector picks how the plan command presents its result.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeSummary prints a human readable trip summary.
	ModeSummary
	// ModeGeoJSON writes the route feature as GeoJSON.
	ModeGeoJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModeSummary:
		return "summary"
	case ModeGeoJSON:
		return "geojson"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// Piped output or a CI run gets GeoJSON; a terminal gets the summary.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModeGeoJSON
	}
	return ModeSummary
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "summary", "text", "geojson", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "summary", "text":
		return ModeSummary
	case "geojson", "json":
		return ModeGeoJSON
	default:
		return autoDetected
	}
}
