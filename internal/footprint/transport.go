package footprint

import (
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
)

const (
	fallbackCarFactor           = 0.23
	fallbackBusFactor           = 0.09
	fallbackTrainFactor         = 0.03
	fallbackDomesticFlight      = 0.13
	fallbackInternationalFlight = 0.10

	domesticFlightKm      = 1000.0
	internationalFlightKm = 8000.0
	weeksPerYear          = 52.0
)

// Breakdown is a category's weekly emissions, every factor lookup made and
// the inputs as the calculator read them, defaults filled in.
type Breakdown struct {
	WeeklyKgCO2 float64
	Lookups     []emission.Lookup
	Inputs      any
}

func (b *Breakdown) add(quantity float64, l emission.Lookup) {
	b.WeeklyKgCO2 += quantity * l.Value
	b.Lookups = append(b.Lookups, l)
}

// Transport covers car, bus, train and flights. Flights are annual counts
// spread over the year.
type Transport struct {
	table *emission.Table
}

func NewTransport(table *emission.Table) Transport {
	return Transport{table: table}
}

func (t Transport) Calculate(in TransportInput) Breakdown {
	in = in.normalized()
	b := Breakdown{Inputs: in}

	if in.Car != nil {
		b.add(in.Car.KmPerWeek, t.table.Lookup(emission.Transportation, string(in.Car.Type), fallbackCarFactor))
	}
	if in.Bus != nil {
		b.add(in.Bus.KmPerWeek, t.table.Lookup(emission.Transportation, "Public Bus", fallbackBusFactor))
	}
	if in.Train != nil {
		b.add(in.Train.KmPerWeek, t.table.Lookup(emission.Transportation, "Train (Regular)", fallbackTrainFactor))
	}
	if f := in.Flights; f != nil {
		domestic := t.table.Lookup(emission.Transportation, "Flight (Domestic)", fallbackDomesticFlight)
		international := t.table.Lookup(emission.Transportation, "Flight (International)", fallbackInternationalFlight)
		b.add(float64(f.DomesticPerYear)*domesticFlightKm/weeksPerYear, domestic)
		b.add(float64(f.InternationalPerYear)*internationalFlightKm/weeksPerYear, international)
	}

	return b
}

// Recommendations keys off the weekly total and the vehicle in use.
func (t Transport) Recommendations(weekly float64, in TransportInput) []string {
	var recs []string

	if weekly > 50 {
		recs = append(recs,
			"Consider cycling or walking for short trips (<5 km)",
			"Use public transport more frequently")
	}
	if in.Car != nil && (in.Car.Type == "" || in.Car.Type == CarPetrol || in.Car.Type == CarDiesel) {
		recs = append(recs, "Consider switching to an electric or hybrid vehicle")
	}
	if in.Flights != nil && in.Flights.DomesticPerYear > 4 {
		recs = append(recs, "Reduce domestic flights - try trains for shorter distances")
	}
	if weekly < 10 {
		recs = append(recs, "Great job! Your transport footprint is very low")
	}

	return recs
}
