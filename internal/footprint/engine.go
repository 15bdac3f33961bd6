// Package footprint computes weekly household carbon emissions per category
// and rolls them up into a summary with recommendations.
package footprint

import (
	"math"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

// Categories in reporting order. Ties for the highest category resolve to the earliest.
var Categories = []emission.Category{
	emission.Transportation,
	emission.Energy,
	emission.Food,
	emission.Waste,
}

// recommendationOrder is the order categories appear in the merged list.
var recommendationOrder = []emission.Category{
	emission.Energy,
	emission.Transportation,
	emission.Food,
	emission.Waste,
}

// Annual benchmarks in kg CO2e per person.
const (
	BenchmarkUS    = 16000.0
	BenchmarkEU    = 8000.0
	BenchmarkWorld = 4000.0
	BenchmarkParis = 2300.0
)

// CategoryResult is one category's share of a calculation. Inputs holds the
// category's normalised input, or nil when it was not assessed.
type CategoryResult struct {
	WeeklyKgCO2     float64  `json:"weekly_kg_co2"`
	AnnualKgCO2     float64  `json:"annual_kg_co2"`
	Inputs          any      `json:"inputs"`
	Assessed        bool     `json:"assessed"`
	Recommendations []string `json:"recommendations"`
}

// Benchmark places an annual total in a named band.
type Benchmark struct {
	Band    string `json:"band"`
	Message string `json:"message"`
}

// Summary rolls the assessed categories up into totals and shares.
// Unassessed categories count as zero.
type Summary struct {
	TotalWeeklyKgCO2          float64                       `json:"total_weekly_kg_co2"`
	TotalAnnualKgCO2          float64                       `json:"total_annual_kg_co2"`
	MonthlyAverageKgCO2       float64                       `json:"monthly_average_kg_co2"`
	DailyAverageKgCO2         float64                       `json:"daily_average_kg_co2"`
	HighestCategory           emission.Category             `json:"highest_category"`
	Percentages               map[emission.Category]float64 `json:"percentages"`
	ChangeFromLastWeekPercent *float64                      `json:"change_from_last_week_percent"`
	Benchmark                 Benchmark                     `json:"benchmark"`
}

type Recommendation struct {
	Category emission.Category `json:"category"`
	Text     string            `json:"text"`
}

// Result is the full output of one calculation.
type Result struct {
	Categories      map[emission.Category]CategoryResult `json:"categories"`
	Summary         Summary                              `json:"summary"`
	Recommendations []Recommendation                     `json:"recommendations"`
	Fallbacks       []emission.Lookup                    `json:"fallbacks,omitempty"`
	Inputs          Inputs                               `json:"inputs"`
}

// Engine is stateless apart from the shared factor table.
type Engine struct {
	table     *emission.Table
	transport Transport
	energy    Energy
	food      Food
	waste     Waste
}

// NewEngine wires every category calculator to table. A nil table makes
// every lookup fall back.
func NewEngine(table *emission.Table) *Engine {
	return &Engine{
		table:     table,
		transport: NewTransport(table),
		energy:    NewEnergy(table),
		food:      NewFood(table),
		waste:     NewWaste(table),
	}
}

// Factors lists the table rows the calculators can use, per category.
func (e *Engine) Factors() map[emission.Category][]emission.Factor {
	out := make(map[emission.Category][]emission.Factor, len(Categories))
	for _, cat := range Categories {
		out[cat] = nonNilFactors(e.table.Factors(cat))
	}
	return out
}

func nonNilFactors(f []emission.Factor) []emission.Factor {
	if f == nil {
		return []emission.Factor{}
	}
	return f
}

// Aggregate assumes in has passed Validate. previousWeekly is the prior
// calculation's weekly total, if any.
func (e *Engine) Aggregate(in Inputs, previousWeekly *float64) Result {
	res := Result{
		Categories: make(map[emission.Category]CategoryResult, len(Categories)),
		Inputs:     in,
	}

	record := func(cat emission.Category, b Breakdown, recs []string) {
		res.Categories[cat] = CategoryResult{
			WeeklyKgCO2:     b.WeeklyKgCO2,
			AnnualKgCO2:     b.WeeklyKgCO2 * weeksPerYear,
			Inputs:          b.Inputs,
			Assessed:        true,
			Recommendations: recs,
		}
		for _, l := range b.Lookups {
			if l.UsedFallback {
				res.Fallbacks = append(res.Fallbacks, l)
			}
		}
	}

	if in.Transportation != nil {
		b := e.transport.Calculate(*in.Transportation)
		record(emission.Transportation, b, e.transport.Recommendations(b.WeeklyKgCO2, *in.Transportation))
	}
	if in.Energy != nil {
		b := e.energy.Calculate(*in.Energy)
		record(emission.Energy, b, e.energy.Recommendations(b.WeeklyKgCO2, *in.Energy))
	}
	if in.Food != nil {
		b := e.food.Calculate(*in.Food)
		record(emission.Food, b, e.food.Recommendations(b.WeeklyKgCO2, *in.Food))
	}
	if in.Waste != nil {
		b := e.waste.Calculate(*in.Waste)
		record(emission.Waste, b, e.waste.Recommendations(b.WeeklyKgCO2, *in.Waste))
	}
	for _, cat := range Categories {
		if _, ok := res.Categories[cat]; !ok {
			res.Categories[cat] = CategoryResult{Recommendations: []string{}}
		}
	}

	res.Summary = summarize(res.Categories, previousWeekly)
	res.Recommendations = mergeRecommendations(res.Categories)
	return res
}

func summarize(cats map[emission.Category]CategoryResult, previousWeekly *float64) Summary {
	s := Summary{Percentages: make(map[emission.Category]float64, len(Categories))}

	highest := math.Inf(-1)
	for _, cat := range Categories {
		w := cats[cat].WeeklyKgCO2
		s.TotalWeeklyKgCO2 += w
		if w > highest {
			highest = w
			s.HighestCategory = cat
		}
	}
	s.TotalAnnualKgCO2 = s.TotalWeeklyKgCO2 * weeksPerYear
	s.MonthlyAverageKgCO2 = s.TotalAnnualKgCO2 / 12
	s.DailyAverageKgCO2 = s.TotalAnnualKgCO2 / 365

	for _, cat := range Categories {
		if s.TotalWeeklyKgCO2 > 0 {
			s.Percentages[cat] = cats[cat].WeeklyKgCO2 / s.TotalWeeklyKgCO2 * 100
		} else {
			s.Percentages[cat] = 0
		}
	}

	if previousWeekly != nil && *previousWeekly > 0 {
		change := round((s.TotalWeeklyKgCO2-*previousWeekly) / *previousWeekly * 100, 2)
		s.ChangeFromLastWeekPercent = &change
	}

	s.Benchmark = CompareToBenchmarks(s.TotalAnnualKgCO2)
	return s
}

// CompareToBenchmarks places an annual total against published averages.
func CompareToBenchmarks(annual float64) Benchmark {
	switch {
	case annual > BenchmarkUS:
		return Benchmark{Band: "above_us_average", Message: "Your footprint is above the US average - there is a lot of room to cut emissions"}
	case annual > BenchmarkEU:
		return Benchmark{Band: "above_eu_average", Message: "Your footprint is above the EU average - focus on your highest category first"}
	case annual > BenchmarkWorld:
		return Benchmark{Band: "above_world_average", Message: "Your footprint is above the world average - small changes add up"}
	case annual > BenchmarkParis:
		return Benchmark{Band: "above_paris_target", Message: "You are below the world average - keep going toward the Paris target"}
	default:
		return Benchmark{Band: "within_paris_target", Message: "Amazing! Your footprint is within the Paris 1.5C target"}
	}
}

func mergeRecommendations(cats map[emission.Category]CategoryResult) []Recommendation {
	out := []Recommendation{}
	seen := make(map[Recommendation]bool)
	for _, cat := range recommendationOrder {
		for _, text := range cats[cat].Recommendations {
			r := Recommendation{Category: cat, Text: text}
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
