package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gambitchess/gambit/internal/helpers"
)

func TestDefaultWeightsAreAllOne(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, Weights{1, 1, 1, 1, 1, 1, 1, 1}, w)
}

func TestLoadWeightsMissingFileYieldsDefaults(t *testing.T) {
	w, err := LoadWeights(filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, IsNil(err))
	assert.Equal(t, DefaultWeights(), w)
}

func TestWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	saved := Weights{
		Material:      1.5,
		Position:      0.8,
		KingSafety:    2.0,
		PawnStructure: 1.0,
		Mobility:      0.5,
		CenterControl: 1.0,
		Development:   1.0,
		Tempo:         0.0,
	}
	require.True(t, IsNil(SaveWeights(path, saved)))

	loaded, err := LoadWeights(path)
	assert.True(t, IsNil(err))
	assert.Equal(t, saved, loaded)
}

func TestLoadWeightsFillsMissingKeysWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"material": 2.5}`), 0644))

	w, err := LoadWeights(path)
	assert.True(t, IsNil(err))
	assert.Equal(t, 2.5, w.Material)
	assert.Equal(t, 1.0, w.Mobility)
	assert.Equal(t, 1.0, w.Tempo)
}

func TestLoadWeightsRejectsMalformedJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(`{material`), 0644))

	w, err := LoadWeights(path)
	assert.False(t, IsNil(err))
	assert.Equal(t, DefaultWeights(), w)
}
