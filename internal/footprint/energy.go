package footprint

import (
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

const (
	fallbackGridFactor       = 0.45
	fallbackNaturalGasFactor = 0.0544
	fallbackLPGFactor        = 5.72

	monthlyToWeekly = 12.0 / 52.0
)

// Energy covers household electricity, natural gas and LPG.
type Energy struct {
	table *emission.Table
}

func NewEnergy(table *emission.Table) Energy {
	return Energy{table: table}
}

// Calculate converts monthly household usage to a weekly figure.
func (e Energy) Calculate(in EnergyInput) Breakdown {
	in = in.normalized()
	var monthly Breakdown

	if el := in.Electricity; el != nil {
		monthly.add(el.KWhPerMonth, e.table.Lookup(emission.Energy, string(el.GridType), fallbackGridFactor))
	}
	if in.NaturalGas != nil {
		monthly.add(in.NaturalGas.SCFPerMonth, e.table.Lookup(emission.Energy, "Natural Gas", fallbackNaturalGasFactor))
	}
	if in.LPG != nil {
		monthly.add(in.LPG.GallonsPerMonth, e.table.Lookup(emission.Energy, "Propane (LPG)", fallbackLPGFactor))
	}

	return Breakdown{
		WeeklyKgCO2: monthly.WeeklyKgCO2 * monthlyToWeekly,
		Lookups:     monthly.Lookups,
		Inputs:      in,
	}
}

func (e Energy) Recommendations(weekly float64, in EnergyInput) []string {
	var recs []string

	if weekly > 200 {
		recs = append(recs,
			"Switch to LED lighting and energy-efficient appliances",
			"Optimize heating/cooling - use programmable thermostats")
	}
	if el := in.Electricity; el != nil {
		if el.GridType == GridCoalHeavy {
			recs = append(recs, "Consider installing solar panels or switching to green energy")
		}
		if el.KWhPerMonth > 400 {
			recs = append(recs, "Your electricity usage is high - audit your appliances")
		}
	}
	if weekly < 50 {
		recs = append(recs, "Excellent! Your home energy footprint is very efficient")
	}

	return recs
}
