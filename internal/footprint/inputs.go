package footprint

import (
	"math"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
)

// Inputs is the calculator payload. A nil category was not assessed.
type Inputs struct {
	Transportation *TransportInput `json:"transportation,omitempty"`
	Energy         *EnergyInput    `json:"energy,omitempty"`
	Food           *FoodInput      `json:"food,omitempty"`
	Waste          *WasteInput     `json:"waste,omitempty"`
}

// CarType values match activity names in the emission table.
type CarType string

const (
	CarPetrol   CarType = "Car (Petrol)"
	CarDiesel   CarType = "Car (Diesel)"
	CarElectric CarType = "Electric Car (EV)"
	CarHybrid   CarType = "Hybrid Car"
)

// GridType values match activity names in the emission table.
type GridType string

const (
	GridUSAverage  GridType = "Electricity (US Grid Average)"
	GridCoalHeavy  GridType = "Electricity (Coal-heavy)"
	GridNaturalGas GridType = "Electricity (Natural Gas)"
	GridRenewable  GridType = "Electricity (Renewable)"
)

// Level is an ordinal weekly waste amount.
type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

type TransportInput struct {
	Car     *CarUsage      `json:"car,omitempty"`
	Bus     *DistanceUsage `json:"bus,omitempty"`
	Train   *DistanceUsage `json:"train,omitempty"`
	Flights *FlightUsage   `json:"flights,omitempty"`
}

type CarUsage struct {
	Type      CarType `json:"type"`
	KmPerWeek float64 `json:"km_per_week"`
}

type DistanceUsage struct {
	KmPerWeek float64 `json:"km_per_week"`
}

type FlightUsage struct {
	DomesticPerYear      int `json:"domestic_per_year"`
	InternationalPerYear int `json:"international_per_year"`
}

type EnergyInput struct {
	Electricity *ElectricityUsage `json:"electricity,omitempty"`
	NaturalGas  *NaturalGasUsage  `json:"natural_gas,omitempty"`
	LPG         *LPGUsage         `json:"lpg,omitempty"`
}

type ElectricityUsage struct {
	KWhPerMonth float64  `json:"kwh_per_month"`
	GridType    GridType `json:"grid_type"`
}

type NaturalGasUsage struct {
	SCFPerMonth float64 `json:"scf_per_month"`
}

type LPGUsage struct {
	GallonsPerMonth float64 `json:"gallons_per_month"`
}

// FoodInput masses are kg per week.
type FoodInput struct {
	Meat   *MeatIntake  `json:"meat,omitempty"`
	Dairy  *DairyIntake `json:"dairy,omitempty"`
	Plants *PlantIntake `json:"plants,omitempty"`
}

type MeatIntake struct {
	Beef    float64 `json:"beef"`
	Chicken float64 `json:"chicken"`
	Pork    float64 `json:"pork"`
	Fish    float64 `json:"fish"`
}

func (m MeatIntake) Total() float64 { return m.Beef + m.Chicken + m.Pork + m.Fish }

type DairyIntake struct {
	Milk   float64 `json:"milk"`
	Cheese float64 `json:"cheese"`
}

type PlantIntake struct {
	Vegetables float64 `json:"vegetables"`
	Fruits     float64 `json:"fruits"`
	Grains     float64 `json:"grains"`
}

type WasteInput struct {
	Levels    WasteLevels    `json:"levels"`
	Recycling WasteRecycling `json:"recycling"`
	Compost   bool           `json:"compost"`
}

// WasteLevels are weekly amount bins. An empty level counts as none.
type WasteLevels struct {
	Plastic Level `json:"plastic"`
	Paper   Level `json:"paper"`
	Glass   Level `json:"glass"`
	Metal   Level `json:"metal"`
	Organic Level `json:"organic"`
}

// WasteRecycling flags which materials go to recycling. Metal is usually
// co-collected with glass, so a missing metal flag counts as recycled.
type WasteRecycling struct {
	Plastic bool  `json:"plastic"`
	Paper   bool  `json:"paper"`
	Glass   bool  `json:"glass"`
	Metal   *bool `json:"metal,omitempty"`
}

// normalized returns a copy with the car type defaulted to petrol.
func (in TransportInput) normalized() TransportInput {
	out := in
	if in.Car != nil {
		car := *in.Car
		if car.Type == "" {
			car.Type = CarPetrol
		}
		out.Car = &car
	}
	if in.Bus != nil {
		bus := *in.Bus
		out.Bus = &bus
	}
	if in.Train != nil {
		train := *in.Train
		out.Train = &train
	}
	if in.Flights != nil {
		flights := *in.Flights
		out.Flights = &flights
	}
	return out
}

// normalized returns a copy with the grid defaulted to the US average.
func (in EnergyInput) normalized() EnergyInput {
	out := in
	if in.Electricity != nil {
		el := *in.Electricity
		if el.GridType == "" {
			el.GridType = GridUSAverage
		}
		out.Electricity = &el
	}
	if in.NaturalGas != nil {
		gas := *in.NaturalGas
		out.NaturalGas = &gas
	}
	if in.LPG != nil {
		lpg := *in.LPG
		out.LPG = &lpg
	}
	return out
}

func (in FoodInput) normalized() FoodInput {
	out := in
	if in.Meat != nil {
		meat := *in.Meat
		out.Meat = &meat
	}
	if in.Dairy != nil {
		dairy := *in.Dairy
		out.Dairy = &dairy
	}
	if in.Plants != nil {
		plants := *in.Plants
		out.Plants = &plants
	}
	return out
}

// normalized fills empty levels with none and an unset metal flag with true.
func (in WasteInput) normalized() WasteInput {
	out := in
	for _, l := range []*Level{&out.Levels.Plastic, &out.Levels.Paper, &out.Levels.Glass, &out.Levels.Metal, &out.Levels.Organic} {
		if *l == "" {
			*l = LevelNone
		}
	}
	metal := true
	if in.Recycling.Metal != nil {
		metal = *in.Recycling.Metal
	}
	out.Recycling.Metal = &metal
	return out
}

// Validate rejects negative or non-finite quantities and unknown enum values.
func (in Inputs) Validate() error {
	if in.Transportation != nil {
		if err := in.Transportation.Validate(); err != nil {
			return err
		}
	}
	if in.Energy != nil {
		if err := in.Energy.Validate(); err != nil {
			return err
		}
	}
	if in.Food != nil {
		if err := in.Food.Validate(); err != nil {
			return err
		}
	}
	if in.Waste != nil {
		if err := in.Waste.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (in TransportInput) Validate() error {
	if c := in.Car; c != nil {
		switch c.Type {
		case "", CarPetrol, CarDiesel, CarElectric, CarHybrid:
		default:
			return apperror.Validation("transportation.car.type %q is not a known car type", c.Type)
		}
		if err := quantity("transportation.car.km_per_week", c.KmPerWeek); err != nil {
			return err
		}
	}
	if in.Bus != nil {
		if err := quantity("transportation.bus.km_per_week", in.Bus.KmPerWeek); err != nil {
			return err
		}
	}
	if in.Train != nil {
		if err := quantity("transportation.train.km_per_week", in.Train.KmPerWeek); err != nil {
			return err
		}
	}
	if f := in.Flights; f != nil {
		if f.DomesticPerYear < 0 {
			return apperror.Validation("transportation.flights.domestic_per_year must not be negative")
		}
		if f.InternationalPerYear < 0 {
			return apperror.Validation("transportation.flights.international_per_year must not be negative")
		}
	}
	return nil
}

func (in EnergyInput) Validate() error {
	if e := in.Electricity; e != nil {
		switch e.GridType {
		case "", GridUSAverage, GridCoalHeavy, GridNaturalGas, GridRenewable:
		default:
			return apperror.Validation("energy.electricity.grid_type %q is not a known grid type", e.GridType)
		}
		if err := quantity("energy.electricity.kwh_per_month", e.KWhPerMonth); err != nil {
			return err
		}
	}
	if in.NaturalGas != nil {
		if err := quantity("energy.natural_gas.scf_per_month", in.NaturalGas.SCFPerMonth); err != nil {
			return err
		}
	}
	if in.LPG != nil {
		if err := quantity("energy.lpg.gallons_per_month", in.LPG.GallonsPerMonth); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	name  string
	value float64
}

func (in FoodInput) Validate() error {
	var fields []field
	if m := in.Meat; m != nil {
		fields = append(fields,
			field{"food.meat.beef", m.Beef},
			field{"food.meat.chicken", m.Chicken},
			field{"food.meat.pork", m.Pork},
			field{"food.meat.fish", m.Fish})
	}
	if d := in.Dairy; d != nil {
		fields = append(fields,
			field{"food.dairy.milk", d.Milk},
			field{"food.dairy.cheese", d.Cheese})
	}
	if p := in.Plants; p != nil {
		fields = append(fields,
			field{"food.plants.vegetables", p.Vegetables},
			field{"food.plants.fruits", p.Fruits},
			field{"food.plants.grains", p.Grains})
	}
	for _, f := range fields {
		if err := quantity(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (in WasteInput) Validate() error {
	levels := map[string]Level{
		"plastic": in.Levels.Plastic,
		"paper":   in.Levels.Paper,
		"glass":   in.Levels.Glass,
		"metal":   in.Levels.Metal,
		"organic": in.Levels.Organic,
	}
	for name, l := range levels {
		switch l {
		case "", LevelNone, LevelLow, LevelMedium, LevelHigh:
		default:
			return apperror.Validation("waste.levels.%s %q must be one of none, low, medium, high", name, l)
		}
	}
	return nil
}

func quantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperror.Validation("%s must be a finite number", name)
	}
	if v < 0 {
		return apperror.Validation("%s must not be negative", name)
	}
	return nil
}
