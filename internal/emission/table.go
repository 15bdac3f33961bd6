// Package emission holds the immutable emission factor table used by the
// footprint calculators.
package emission

import (
	"fmt"
	"math"
	"sort"
)

type Category string

const (
	Transportation Category = "transportation"
	Energy         Category = "energy"
	Food           Category = "food"
	Waste          Category = "waste"
)

// Factor is one row of the table: kg CO2e per unit of activity.
type Factor struct {
	Category Category `json:"category" yaml:"category"`
	Activity string   `json:"activity" yaml:"activity"`
	Value    float64  `json:"factor" yaml:"factor"`
	Unit     string   `json:"unit" yaml:"unit"`
}

// Table is read-only after construction and safe for concurrent use.
// A nil *Table answers every lookup with the caller's fallback.
type Table struct {
	factors map[Category]map[string]Factor
	size    int
}

// Lookup is the outcome of a factor lookup. UsedFallback is set when the
// key was missing and Value is the caller supplied default.
type Lookup struct {
	Category     Category `json:"category"`
	Key          string   `json:"key"`
	Value        float64  `json:"value"`
	UsedFallback bool     `json:"used_fallback"`
}

func (l Lookup) Found() bool { return !l.UsedFallback }

func NewTable(factors []Factor) (*Table, error) {
	t := &Table{factors: make(map[Category]map[string]Factor)}
	for i, f := range factors {
		if f.Category == "" || f.Activity == "" {
			return nil, fmt.Errorf("row %d: category and activity are required", i+1)
		}
		if f.Value < 0 || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return nil, fmt.Errorf("row %d: invalid factor %v for %s/%s", i+1, f.Value, f.Category, f.Activity)
		}
		byKey, ok := t.factors[f.Category]
		if !ok {
			byKey = make(map[string]Factor)
			t.factors[f.Category] = byKey
		}
		if _, dup := byKey[f.Activity]; dup {
			return nil, fmt.Errorf("row %d: duplicate factor %s/%s", i+1, f.Category, f.Activity)
		}
		byKey[f.Activity] = f
		t.size++
	}
	return t, nil
}

// Lookup returns the factor for key, or fallback when the table has no such entry.
func (t *Table) Lookup(category Category, key string, fallback float64) Lookup {
	res := Lookup{Category: category, Key: key, Value: fallback, UsedFallback: true}
	if t == nil {
		return res
	}
	if f, ok := t.factors[category][key]; ok {
		res.Value = f.Value
		res.UsedFallback = false
	}
	return res
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Factors returns every row of category sorted by activity.
func (t *Table) Factors(category Category) []Factor {
	if t == nil {
		return nil
	}
	out := make([]Factor, 0, len(t.factors[category]))
	for _, f := range t.factors[category] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Activity < out[j].Activity })
	return out
}
