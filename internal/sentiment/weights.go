package sentiment

// Emotion weights use go_emotions labels. Positive weights push the score up,
// negative weights down; anything unlisted weighs 0 and counts as neutral.
var defaultWeights = map[string]float64{
	"joy":        1.0,
	"pride":      1.0,
	"optimism":   0.8,
	"excitement": 0.9,
	"love":       1.0,
	"relief":     0.7,
	"gratitude":  0.8,
	"admiration": 0.6,
	"approval":   0.5,
	"caring":     0.6,
	"desire":     0.4,
	"amusement":  0.7,

	"guilt":          -1.0,
	"sadness":        -0.8,
	"anger":          -0.9,
	"fear":           -0.7,
	"disappointment": -0.8,
	"shame":          -1.0,
	"remorse":        -0.9,
	"frustration":    -0.6,
	"annoyance":      -0.5,
	"embarrassment":  -0.7,
	"grief":          -0.9,
	"nervousness":    -0.4,

	"surprise":    0.0,
	"confusion":   0.0,
	"curiosity":   0.1,
	"neutral":     0.0,
	"realization": 0.0,
	"disapproval": -0.1,
}

// Weight returns the sentiment weight of a label.
func Weight(label string) float64 {
	return defaultWeights[label]
}

// Labels lists every label with a known weight, in no particular order.
func Labels() []string {
	out := make([]string, 0, len(defaultWeights))
	for l := range defaultWeights {
		out = append(out, l)
	}
	return out
}

type ecoCategory struct {
	tag      string
	keywords []string
}

// ecoCategories is ordered; tags are reported in this order.
var ecoCategories = []ecoCategory{
	{"transport", []string{"bicycle", "bike", "walk", "walking", "public transport", "carpool", "metro", "bus", "train", "electric vehicle"}},
	{"energy", []string{"solar", "led", "electricity", "energy saving", "unplug", "renewable", "wind power", "hydroelectric", "battery"}},
	{"waste", []string{"recycle", "recycling", "reuse", "compost", "composting", "plastic", "zero waste", "reduce", "upcycle"}},
	{"food", []string{"organic", "local", "plant-based", "vegetarian", "vegan", "sustainable", "farm", "seasonal", "food waste"}},
	{"water", []string{"conservation", "shower", "tap", "rain water", "drought", "water saving", "irrigation", "greywater"}},
	{"consumption", []string{"minimalism", "second-hand", "thrift", "repair", "diy", "sustainable shopping", "eco-friendly", "green products"}},
}
