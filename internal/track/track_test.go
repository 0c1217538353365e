package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateLength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit single length", "spoor van 8 m in het gras", 8},
		{"range takes rounded midpoint", "10-15 m door het bos", 13},
		{"range with tot", "10 tot 15 m", 13},
		{"range with en dash", "10–15 m", 13},
		{"no unit spacing", "12m recht spoor", 12},
		{"no length at all", "kort spoor, rustig tempo", DefaultLengthM},
		{"empty text", "", DefaultLengthM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateLength(tt.text))
		})
	}
}

func TestEstimateTurns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit count", "15 m met 2 bochten", 2},
		{"bare mention counts as one", "spoor met bocht naar links", 1},
		{"case insensitive", "een Bocht halverwege", 1},
		{"no turns", "recht spoor van 10 m", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTurns(tt.text))
		})
	}
}

func TestInferShape(t *testing.T) {
	assert.Equal(t, ShapeL, InferShape("spoor in L-vorm"))
	assert.Equal(t, ShapeL, InferShape("bocht van 90 graden"))
	assert.Equal(t, ShapeLine, InferShape("recht spoor van 10 m"))
}

func TestInferSurface(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"spoor door het bos", SurfaceForest},
		{"op zand bij het strand", SurfaceSand},
		{"mix van ondergronden", SurfaceMixed},
		{"kort stuk asfalt", SurfacePavement},
		{"grindpad achter het huis", SurfaceGravel},
		{"gewoon in het gras", SurfaceGrass},
		{"geen ondergrond genoemd", SurfaceGrass},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferSurface(tt.text), "text %q", tt.text)
	}
}

func TestDeriveCombinesAllRules(t *testing.T) {
	meta := Derive("10-15 m door het bos met 2 bochten, L-vorm")
	assert.Equal(t, Metadata{
		LengthM: 13,
		Turns:   2,
		Shape:   ShapeL,
		Surface: SurfaceForest,
	}, meta)

	// No input ever errors; everything defaults.
	meta = Derive("")
	assert.Equal(t, Metadata{
		LengthM: DefaultLengthM,
		Turns:   0,
		Shape:   ShapeLine,
		Surface: SurfaceGrass,
	}, meta)
}

func TestKnownSurface(t *testing.T) {
	for _, surface := range []string{SurfaceGrass, SurfaceForest, SurfaceSand, SurfaceMixed, SurfacePavement, SurfaceGravel} {
		assert.True(t, KnownSurface(surface))
	}
	assert.False(t, KnownSurface(""))
	assert.False(t, KnownSurface("beton"))
}
