package footprint

import (
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

type foodItem struct {
	key      string
	fallback float64
}

var (
	beef       = foodItem{"Beef (Red Meat)", 27.0}
	chicken    = foodItem{"Chicken", 6.9}
	pork       = foodItem{"Pork", 7.2}
	fish       = foodItem{"Fish (Wild-caught)", 2.9}
	milk       = foodItem{"Milk (Dairy)", 3.3}
	cheese     = foodItem{"Cheese (Hard)", 13.5}
	vegetables = foodItem{"Vegetables (Root)", 0.4}
	fruits     = foodItem{"Bananas", 0.7}
	grains     = foodItem{"Rice", 2.7}
)

// Food prices weekly intake in kg against per-kg factors.
type Food struct {
	table *emission.Table
}

func NewFood(table *emission.Table) Food {
	return Food{table: table}
}

func (f Food) Calculate(in FoodInput) Breakdown {
	in = in.normalized()
	b := Breakdown{Inputs: in}
	item := func(kg float64, it foodItem) {
		b.add(kg, f.table.Lookup(emission.Food, it.key, it.fallback))
	}

	if m := in.Meat; m != nil {
		item(m.Beef, beef)
		item(m.Chicken, chicken)
		item(m.Pork, pork)
		item(m.Fish, fish)
	}
	if d := in.Dairy; d != nil {
		item(d.Milk, milk)
		item(d.Cheese, cheese)
	}
	if p := in.Plants; p != nil {
		item(p.Vegetables, vegetables)
		item(p.Fruits, fruits)
		item(p.Grains, grains)
	}

	return b
}

func (f Food) Recommendations(weekly float64, in FoodInput) []string {
	var recs []string

	if in.Meat != nil && in.Meat.Total() > 2 {
		recs = append(recs,
			"Consider reducing red meat consumption - try chicken or plant proteins",
			"Add more plant-based meals to your weekly diet")
	}
	if in.Meat != nil && in.Meat.Beef > 0.5 {
		recs = append(recs, "Beef has the highest carbon footprint - try substituting with chicken")
	}
	if weekly > 50 {
		recs = append(recs, "Your diet has high emissions - focus on more vegetables and less meat")
	}
	if weekly < 20 {
		recs = append(recs, "Great! You have a low-carbon diet")
	}

	return recs
}
