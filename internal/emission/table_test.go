package emission

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 33, table.Len())

	l := table.Lookup(Transportation, "Car (Petrol)", 99)
	assert.True(t, l.Found())
	assert.InDelta(t, 0.23, l.Value, 1e-9)

	l = table.Lookup(Waste, "Organic_compost", 99)
	assert.True(t, l.Found())
	assert.InDelta(t, 0.1, l.Value, 1e-9)
}

func TestFactorsSortedByActivity(t *testing.T) {
	table, err := NewTable([]Factor{
		{Category: Food, Activity: "Rice", Value: 2.7},
		{Category: Food, Activity: "Beef (Red Meat)", Value: 27},
		{Category: Energy, Activity: "Natural Gas", Value: 0.0544},
	})
	require.NoError(t, err)

	food := table.Factors(Food)
	require.Len(t, food, 2)
	assert.Equal(t, "Beef (Red Meat)", food[0].Activity)
	assert.Equal(t, "Rice", food[1].Activity)
	assert.Empty(t, table.Factors(Waste))

	var nilTable *Table
	assert.Nil(t, nilTable.Factors(Food))
}

func TestLookupFallback(t *testing.T) {
	table, err := NewTable([]Factor{{Category: Energy, Activity: "Natural Gas", Value: 0.06}})
	require.NoError(t, err)

	l := table.Lookup(Energy, "Propane (LPG)", 5.72)
	assert.True(t, l.UsedFallback)
	assert.Equal(t, 5.72, l.Value)
	assert.Equal(t, "Propane (LPG)", l.Key)

	l = table.Lookup(Energy, "Natural Gas", 0.0544)
	assert.False(t, l.UsedFallback)
	assert.Equal(t, 0.06, l.Value)
}

func TestNilTableAlwaysFallsBack(t *testing.T) {
	var table *Table
	l := table.Lookup(Food, "Chicken", 6.9)
	assert.True(t, l.UsedFallback)
	assert.Equal(t, 6.9, l.Value)
	assert.Zero(t, table.Len())
}

func TestNewTableRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		rows []Factor
	}{
		{"negative", []Factor{{Category: Food, Activity: "Rice", Value: -1}}},
		{"missing activity", []Factor{{Category: Food, Value: 1}}},
		{"duplicate", []Factor{
			{Category: Food, Activity: "Rice", Value: 1},
			{Category: Food, Activity: "Rice", Value: 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	src := "Category,Activity,Factor,Unit\nFood,Beef (Red Meat),30.5,kg\nenergy, Natural Gas ,0.05,scf\n"
	table, err := LoadCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 30.5, table.Lookup(Food, "Beef (Red Meat)", 0).Value)
	assert.Equal(t, 0.05, table.Lookup(Energy, "Natural Gas", 0).Value)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("category,activity\nfood,Rice\n"))
	assert.ErrorContains(t, err, "factor")

	_, err = LoadCSV(strings.NewReader("category,activity,factor\nfood,Rice,abc\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.yaml")
	doc := `factors:
  - category: Transportation
    activity: Public Bus
    factor: 0.1
    unit: kg/km
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	l := table.Lookup(Transportation, "Public Bus", 0.09)
	assert.True(t, l.Found())
	assert.Equal(t, 0.1, l.Value)
}

func TestLoadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "unsupported")
}
