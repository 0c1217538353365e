// Package track derives structured track metadata from the plan's
// free-text Dutch track descriptions. The input is uncontrolled prose, so
// every rule is best-effort: no input ever produces an error, only
// defaults.
package track

import (
	"regexp"
	"strconv"
	"strings"
)

// Surface vocabulary. Values are the Dutch wire forms the rest of the
// state document uses.
const (
	SurfaceGrass    = "gras"
	SurfaceForest   = "bos"
	SurfaceSand     = "zand"
	SurfaceMixed    = "mix"
	SurfacePavement = "asfalt"
	SurfaceGravel   = "grind"
)

// Track shapes.
const (
	ShapeLine = "line"
	ShapeL    = "L"
)

// DefaultLengthM applies when the description names no length.
const DefaultLengthM = 10

// Metadata is the derived track description.
type Metadata struct {
	LengthM int
	Turns   int
	Shape   string
	Surface string
}

var (
	// "8 m", "10-15 m", "10 tot 15 m", "10–15m"
	lengthPattern = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:-|tot|\x{2013})?\s*(\d{1,3})?\s*m`)
	turnsPattern  = regexp.MustCompile(`(?i)(\d+)\s*bocht`)
)

// Derive extracts all metadata fields from one description. The rules are
// independent; a failure to match any of them silently yields that field's
// default.
func Derive(text string) Metadata {
	return Metadata{
		LengthM: EstimateLength(text),
		Turns:   EstimateTurns(text),
		Shape:   InferShape(text),
		Surface: InferSurface(text),
	}
}

// EstimateLength finds a track length in meters. A range like "10-15 m"
// yields the rounded midpoint; no match yields DefaultLengthM.
func EstimateLength(text string) int {
	match := lengthPattern.FindStringSubmatch(text)
	if match == nil {
		return DefaultLengthM
	}
	a, _ := strconv.Atoi(match[1])
	if match[2] == "" {
		return a
	}
	b, _ := strconv.Atoi(match[2])
	if b == 0 {
		return a
	}
	return (a + b + 1) / 2
}

// EstimateTurns finds an explicit turn count ("2 bochten"); a bare mention
// of "bocht" counts as one turn, otherwise zero.
func EstimateTurns(text string) int {
	if match := turnsPattern.FindStringSubmatch(text); match != nil {
		n, _ := strconv.Atoi(match[1])
		return n
	}
	if strings.Contains(strings.ToLower(text), "bocht") {
		return 1
	}
	return 0
}

// InferShape reads an L-shape or 90-degree reference as an L track, else a
// straight line.
func InferShape(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "l-vorm") || strings.Contains(lower, "90") {
		return ShapeL
	}
	return ShapeLine
}

// InferSurface keyword-matches the surface vocabulary, defaulting to grass.
func InferSurface(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "bos"):
		return SurfaceForest
	case strings.Contains(lower, "zand"):
		return SurfaceSand
	case strings.Contains(lower, "mix"):
		return SurfaceMixed
	case strings.Contains(lower, "asfalt"):
		return SurfacePavement
	case strings.Contains(lower, "grind"):
		return SurfaceGravel
	}
	return SurfaceGrass
}

// KnownSurface reports whether the value belongs to the surface
// vocabulary, used by input validation at the CLI boundary.
func KnownSurface(surface string) bool {
	switch surface {
	case SurfaceGrass, SurfaceForest, SurfaceSand, SurfaceMixed, SurfacePavement, SurfaceGravel:
		return true
	}
	return false
}
