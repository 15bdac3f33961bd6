package footprint

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

func defaultTable(t *testing.T) *emission.Table {
	t.Helper()
	table, err := emission.Default()
	require.NoError(t, err)
	return table
}

func TestTransportCar(t *testing.T) {
	tr := NewTransport(defaultTable(t))
	b := tr.Calculate(TransportInput{Car: &CarUsage{Type: CarPetrol, KmPerWeek: 150}})

	assert.InDelta(t, 34.5, b.WeeklyKgCO2, 1e-9)
	assert.InDelta(t, 1794, b.WeeklyKgCO2*52, 1e-9)
	require.Len(t, b.Lookups, 1)
	assert.True(t, b.Lookups[0].Found())
}

func TestTransportFallbacks(t *testing.T) {
	tr := NewTransport(nil)
	b := tr.Calculate(TransportInput{
		Car:     &CarUsage{Type: CarHybrid, KmPerWeek: 100},
		Bus:     &DistanceUsage{KmPerWeek: 10},
		Train:   &DistanceUsage{KmPerWeek: 100},
		Flights: &FlightUsage{DomesticPerYear: 2, InternationalPerYear: 1},
	})

	want := 100*0.23 + 10*0.09 + 100*0.03 + (2*1000*0.13+1*8000*0.10)/52
	assert.InDelta(t, want, b.WeeklyKgCO2, 1e-9)
	for _, l := range b.Lookups {
		assert.True(t, l.UsedFallback, l.Key)
	}
}

func TestTransportRecommendations(t *testing.T) {
	tr := NewTransport(nil)

	recs := tr.Recommendations(60, TransportInput{
		Car:     &CarUsage{Type: CarDiesel, KmPerWeek: 200},
		Flights: &FlightUsage{DomesticPerYear: 5},
	})
	assert.Equal(t, []string{
		"Consider cycling or walking for short trips (<5 km)",
		"Use public transport more frequently",
		"Consider switching to an electric or hybrid vehicle",
		"Reduce domestic flights - try trains for shorter distances",
	}, recs)

	recs = tr.Recommendations(3, TransportInput{Car: &CarUsage{Type: CarElectric, KmPerWeek: 50}})
	assert.Equal(t, []string{"Great job! Your transport footprint is very low"}, recs)
}

func TestEnergyMonthlyToWeekly(t *testing.T) {
	en := NewEnergy(defaultTable(t))
	b := en.Calculate(EnergyInput{
		Electricity: &ElectricityUsage{KWhPerMonth: 300},
		NaturalGas:  &NaturalGasUsage{SCFPerMonth: 1000},
		LPG:         &LPGUsage{GallonsPerMonth: 2},
	})

	monthly := 300*0.45 + 1000*0.0544 + 2*5.72
	assert.InDelta(t, monthly*12/52, b.WeeklyKgCO2, 1e-9)
	assert.Len(t, b.Lookups, 3)
}

func TestEnergyRecommendations(t *testing.T) {
	en := NewEnergy(nil)
	recs := en.Recommendations(250, EnergyInput{Electricity: &ElectricityUsage{KWhPerMonth: 900, GridType: GridCoalHeavy}})
	assert.Equal(t, []string{
		"Switch to LED lighting and energy-efficient appliances",
		"Optimize heating/cooling - use programmable thermostats",
		"Consider installing solar panels or switching to green energy",
		"Your electricity usage is high - audit your appliances",
	}, recs)

	recs = en.Recommendations(10, EnergyInput{})
	assert.Equal(t, []string{"Excellent! Your home energy footprint is very efficient"}, recs)
}

func TestFood(t *testing.T) {
	fd := NewFood(nil)
	in := FoodInput{
		Meat:   &MeatIntake{Beef: 1, Chicken: 1, Pork: 0.5, Fish: 0.5},
		Dairy:  &DairyIntake{Milk: 2, Cheese: 0.2},
		Plants: &PlantIntake{Vegetables: 3, Fruits: 2, Grains: 1},
	}
	b := fd.Calculate(in)
	want := 27.0 + 6.9 + 0.5*7.2 + 0.5*2.9 + 2*3.3 + 0.2*13.5 + 3*0.4 + 2*0.7 + 2.7
	assert.InDelta(t, want, b.WeeklyKgCO2, 1e-9)
	assert.Len(t, b.Lookups, 9)

	recs := fd.Recommendations(b.WeeklyKgCO2, in)
	assert.Equal(t, []string{
		"Consider reducing red meat consumption - try chicken or plant proteins",
		"Add more plant-based meals to your weekly diet",
		"Beef has the highest carbon footprint - try substituting with chicken",
		"Your diet has high emissions - focus on more vegetables and less meat",
	}, recs)
}

func TestWastePlasticMedium(t *testing.T) {
	w := NewWaste(nil)
	b := w.Calculate(WasteInput{Levels: WasteLevels{Plastic: LevelMedium}})

	assert.InDelta(t, 1.2, b.WeeklyKgCO2, 1e-9)
}

func TestWasteRecyclingAndCompost(t *testing.T) {
	w := NewWaste(defaultTable(t))
	in := WasteInput{
		Levels:    WasteLevels{Plastic: LevelHigh, Paper: LevelLow, Glass: LevelMedium, Metal: LevelNone, Organic: LevelHigh},
		Recycling: WasteRecycling{Plastic: true, Paper: true, Glass: false},
		Compost:   true,
	}
	b := w.Calculate(in)
	want := 0.80*2.1 + 0.5*0.5 + 0.8*0.85 + 0 + 7.0*0.1
	assert.InDelta(t, want, b.WeeklyKgCO2, 1e-9)

	recs := w.Recommendations(b.WeeklyKgCO2, in)
	assert.Equal(t, []string{
		"Rinse bottles/cans and recycle; look for return/deposit programs.",
		"Great job! Your waste footprint is quite low this week.",
	}, recs)
}

func TestWasteMetalRecycledByDefault(t *testing.T) {
	w := NewWaste(nil)
	no := false

	tests := []struct {
		name  string
		metal *bool
		want  float64
	}{
		{"unset counts as recycled", nil, 0.6 * 1.5},
		{"explicit mixed", &no, 0.6 * 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := w.Calculate(WasteInput{
				Levels:    WasteLevels{Metal: LevelMedium},
				Recycling: WasteRecycling{Metal: tt.metal},
			})
			assert.InDelta(t, tt.want, b.WeeklyKgCO2, 1e-9)
		})
	}
}

func TestCategoryInputsAreNormalised(t *testing.T) {
	engine := NewEngine(defaultTable(t))
	in := Inputs{
		Transportation: &TransportInput{Car: &CarUsage{KmPerWeek: 150}},
		Energy:         &EnergyInput{Electricity: &ElectricityUsage{KWhPerMonth: 300}},
		Waste:          &WasteInput{Levels: WasteLevels{Plastic: LevelLow}},
	}
	res := engine.Aggregate(in, nil)

	transport, ok := res.Categories[emission.Transportation].Inputs.(TransportInput)
	require.True(t, ok)
	assert.Equal(t, CarPetrol, transport.Car.Type)
	assert.Empty(t, in.Transportation.Car.Type, "caller input must not be modified")

	energy, ok := res.Categories[emission.Energy].Inputs.(EnergyInput)
	require.True(t, ok)
	assert.Equal(t, GridUSAverage, energy.Electricity.GridType)

	waste, ok := res.Categories[emission.Waste].Inputs.(WasteInput)
	require.True(t, ok)
	assert.Equal(t, LevelNone, waste.Levels.Organic)
	require.NotNil(t, waste.Recycling.Metal)
	assert.True(t, *waste.Recycling.Metal)

	assert.Nil(t, res.Categories[emission.Food].Inputs)

	doc, err := json.Marshal(res)
	require.NoError(t, err)
	var decoded struct {
		Categories map[string]map[string]json.RawMessage `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(doc, &decoded))
	assert.JSONEq(t, `{"car":{"type":"Car (Petrol)","km_per_week":150}}`, string(decoded.Categories["transportation"]["inputs"]))
	assert.Equal(t, "null", string(decoded.Categories["food"]["inputs"]))
}

func TestValidateRejectsNegativeAndUnknown(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
	}{
		{"negative car km", Inputs{Transportation: &TransportInput{Car: &CarUsage{KmPerWeek: -1}}}},
		{"unknown car", Inputs{Transportation: &TransportInput{Car: &CarUsage{Type: "Rocket", KmPerWeek: 1}}}},
		{"negative flights", Inputs{Transportation: &TransportInput{Flights: &FlightUsage{DomesticPerYear: -2}}}},
		{"negative kwh", Inputs{Energy: &EnergyInput{Electricity: &ElectricityUsage{KWhPerMonth: -5}}}},
		{"nan gas", Inputs{Energy: &EnergyInput{NaturalGas: &NaturalGasUsage{SCFPerMonth: math.NaN()}}}},
		{"negative beef", Inputs{Food: &FoodInput{Meat: &MeatIntake{Beef: -0.1}}}},
		{"bad level", Inputs{Waste: &WasteInput{Levels: WasteLevels{Paper: "tons"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
		})
	}

	assert.NoError(t, Inputs{}.Validate())
}

func TestEngineAggregate(t *testing.T) {
	engine := NewEngine(defaultTable(t))
	in := Inputs{
		Transportation: &TransportInput{Car: &CarUsage{Type: CarPetrol, KmPerWeek: 150}},
		Energy:         &EnergyInput{Electricity: &ElectricityUsage{KWhPerMonth: 300}},
		Food:           &FoodInput{Meat: &MeatIntake{Chicken: 1}},
		Waste:          &WasteInput{Levels: WasteLevels{Plastic: LevelMedium}},
	}
	res := engine.Aggregate(in, nil)

	var sumWeekly, sumPct float64
	for _, cat := range Categories {
		c := res.Categories[cat]
		assert.True(t, c.Assessed)
		assert.InDelta(t, c.WeeklyKgCO2*52, c.AnnualKgCO2, 1e-9)
		sumWeekly += c.WeeklyKgCO2
		sumPct += res.Summary.Percentages[cat]
	}
	assert.InDelta(t, sumWeekly, res.Summary.TotalWeeklyKgCO2, 1e-9)
	assert.InDelta(t, sumWeekly*52, res.Summary.TotalAnnualKgCO2, 1e-9)
	assert.InDelta(t, 100, sumPct, 1e-9)
	assert.Equal(t, emission.Transportation, res.Summary.HighestCategory)
	assert.Nil(t, res.Summary.ChangeFromLastWeekPercent)
	assert.Empty(t, res.Fallbacks)
	assert.Equal(t, "above_paris_target", res.Summary.Benchmark.Band)

	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, emission.Energy, res.Recommendations[0].Category)
}

func TestEngineChangeFromLastWeek(t *testing.T) {
	engine := NewEngine(defaultTable(t))
	in := Inputs{Transportation: &TransportInput{Car: &CarUsage{Type: CarPetrol, KmPerWeek: 100}}}

	prev := 20.0
	res := engine.Aggregate(in, &prev)
	require.NotNil(t, res.Summary.ChangeFromLastWeekPercent)
	assert.InDelta(t, 15.0, *res.Summary.ChangeFromLastWeekPercent, 1e-9)

	zero := 0.0
	res = engine.Aggregate(in, &zero)
	assert.Nil(t, res.Summary.ChangeFromLastWeekPercent)
}

func TestEngineEmptyInputs(t *testing.T) {
	res := NewEngine(nil).Aggregate(Inputs{}, nil)

	assert.Zero(t, res.Summary.TotalWeeklyKgCO2)
	for _, cat := range Categories {
		assert.False(t, res.Categories[cat].Assessed)
		assert.Zero(t, res.Summary.Percentages[cat])
	}
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, emission.Transportation, res.Summary.HighestCategory)
}

func TestEngineReportsFallbacks(t *testing.T) {
	table, err := emission.NewTable([]emission.Factor{{Category: emission.Food, Activity: "Chicken", Value: 6.9}})
	require.NoError(t, err)

	res := NewEngine(table).Aggregate(Inputs{Food: &FoodInput{Meat: &MeatIntake{Beef: 1, Chicken: 1}}}, nil)
	var keys []string
	for _, l := range res.Fallbacks {
		keys = append(keys, l.Key)
	}
	assert.Equal(t, []string{"Beef (Red Meat)", "Pork", "Fish (Wild-caught)"}, keys)
	assert.InDelta(t, 27.0+6.9, res.Categories[emission.Food].WeeklyKgCO2, 1e-9)
}

func TestMergeRecommendationsDedupes(t *testing.T) {
	cats := map[emission.Category]CategoryResult{
		emission.Transportation: {Recommendations: []string{"a", "a"}},
		emission.Energy:         {Recommendations: []string{"b"}},
	}
	got := mergeRecommendations(cats)
	assert.Equal(t, []Recommendation{
		{Category: emission.Energy, Text: "b"},
		{Category: emission.Transportation, Text: "a"},
	}, got)
}

func TestCompareToBenchmarks(t *testing.T) {
	assert.Equal(t, "above_us_average", CompareToBenchmarks(20000).Band)
	assert.Equal(t, "above_eu_average", CompareToBenchmarks(9000).Band)
	assert.Equal(t, "above_world_average", CompareToBenchmarks(5000).Band)
	assert.Equal(t, "above_paris_target", CompareToBenchmarks(3000).Band)
	assert.Equal(t, "within_paris_target", CompareToBenchmarks(2000).Band)
}
