package eval

import (
	"encoding/json"
	"os"

	. "github.com/gambitchess/gambit/internal/helpers"
)

// Weights scale the eight evaluation terms. All default to 1.0; tuning runs
// persist adjusted values as JSON.
type Weights struct {
	Material      float64 `json:"material"`
	Position      float64 `json:"position"`
	KingSafety    float64 `json:"king_safety"`
	PawnStructure float64 `json:"pawn_structure"`
	Mobility      float64 `json:"mobility"`
	CenterControl float64 `json:"center_control"`
	Development   float64 `json:"development"`
	Tempo         float64 `json:"tempo"`
}

func DefaultWeights() Weights {
	return Weights{
		Material:      1.0,
		Position:      1.0,
		KingSafety:    1.0,
		PawnStructure: 1.0,
		Mobility:      1.0,
		CenterControl: 1.0,
		Development:   1.0,
		Tempo:         1.0,
	}
}

// LoadWeights reads weights from a JSON file. Keys absent from the file keep
// their default values. A missing file is not an error; it yields defaults.
func LoadWeights(path string) (Weights, Error) {
	weights := DefaultWeights()

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return weights, NilError
	}
	if err != nil {
		return weights, Wrap(err)
	}
	if err := json.Unmarshal(contents, &weights); err != nil {
		return DefaultWeights(), Wrap(err)
	}
	return weights, NilError
}

func SaveWeights(path string, weights Weights) Error {
	contents, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return Wrap(err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return Wrap(err)
	}
	return NilError
}
