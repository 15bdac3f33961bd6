package footprint

import (
	"strings"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

// binsKg maps a weekly level to kilograms of material.
var binsKg = map[string]map[Level]float64{
	"plastic": {LevelNone: 0, LevelLow: 0.12, LevelMedium: 0.40, LevelHigh: 0.80},
	"paper":   {LevelNone: 0, LevelLow: 0.5, LevelMedium: 1.5, LevelHigh: 3.0},
	"glass":   {LevelNone: 0, LevelLow: 0.3, LevelMedium: 0.8, LevelHigh: 1.5},
	"metal":   {LevelNone: 0, LevelLow: 0.2, LevelMedium: 0.6, LevelHigh: 1.2},
	"organic": {LevelNone: 0, LevelLow: 2.0, LevelMedium: 4.0, LevelHigh: 7.0},
}

var wasteFallbacks = map[string]float64{
	"Plastic_mixed":    3.0,
	"Plastic_recycled": 2.1,
	"Paper_mixed":      1.0,
	"Paper_recycled":   0.5,
	"Glass_mixed":      0.85,
	"Glass_recycled":   0.64,
	"Metal_mixed":      2.0,
	"Metal_recycled":   1.5,
	"Organic_landfill": 0.5,
	"Organic_compost":  0.1,
}

// Waste converts weekly bin levels to kilograms, then applies a disposal
// factor chosen by recycling and composting.
type Waste struct {
	table *emission.Table
}

func NewWaste(table *emission.Table) Waste {
	return Waste{table: table}
}

func wasteKey(material string, recycled, compost bool) string {
	if material == "organic" {
		if compost {
			return "Organic_compost"
		}
		return "Organic_landfill"
	}
	method := "mixed"
	if recycled {
		method = "recycled"
	}
	return strings.ToUpper(material[:1]) + material[1:] + "_" + method
}

func kgFor(material string, l Level) float64 {
	return binsKg[material][l]
}

func (w Waste) Calculate(in WasteInput) Breakdown {
	in = in.normalized()
	b := Breakdown{Inputs: in}
	material := func(name string, level Level, recycled bool) {
		key := wasteKey(name, recycled, in.Compost)
		b.add(kgFor(name, level), w.table.Lookup(emission.Waste, key, wasteFallbacks[key]))
	}

	material("plastic", in.Levels.Plastic, in.Recycling.Plastic)
	material("paper", in.Levels.Paper, in.Recycling.Paper)
	material("glass", in.Levels.Glass, in.Recycling.Glass)
	material("metal", in.Levels.Metal, *in.Recycling.Metal)
	material("organic", in.Levels.Organic, false)

	return b
}

func heavy(l Level) bool { return l == LevelMedium || l == LevelHigh }

func (w Waste) Recommendations(weekly float64, in WasteInput) []string {
	var recs []string

	if heavy(in.Levels.Plastic) && !in.Recycling.Plastic {
		recs = append(recs,
			"Reduce single-use plastic; start with a reusable bottle and bags.",
			"Begin segregating plastic and find a local recycler.")
	}
	if heavy(in.Levels.Paper) && !in.Recycling.Paper {
		recs = append(recs, "Flatten & recycle cardboard; switch to e-bills where possible.")
	}
	if heavy(in.Levels.Glass) && !in.Recycling.Glass {
		recs = append(recs, "Rinse bottles/cans and recycle; look for return/deposit programs.")
	}
	if heavy(in.Levels.Organic) && !in.Compost {
		recs = append(recs, "Start basic composting or use a community compost drop-off.")
	}
	if weekly < 5 {
		recs = append(recs, "Great job! Your waste footprint is quite low this week.")
	}

	return recs
}
