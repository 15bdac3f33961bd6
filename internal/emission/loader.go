package emission

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/emission_factors.csv
var defaultFactors []byte

var csvHeader = []string{"category", "activity", "factor", "unit"}

// Default returns the table shipped with the binary.
func Default() (*Table, error) {
	return LoadCSV(bytes.NewReader(defaultFactors))
}

// LoadFile picks the decoder from the file extension (.csv, .yaml, .yml).
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open emission factors: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported emission factor file %q", path)
	}
}

// LoadCSV reads rows of category,activity,factor,unit with a header line.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("emission factors: empty file")
		}
		return nil, fmt.Errorf("emission factors: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range csvHeader[:3] {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("emission factors: missing column %q", want)
		}
	}

	var factors []Factor
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("emission factors line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		value, err := strconv.ParseFloat(get("factor"), 64)
		if err != nil {
			return nil, fmt.Errorf("emission factors line %d: bad factor: %w", line, err)
		}
		factors = append(factors, Factor{
			Category: Category(strings.ToLower(get("category"))),
			Activity: get("activity"),
			Value:    value,
			Unit:     get("unit"),
		})
	}

	return NewTable(factors)
}

type yamlTable struct {
	Factors []Factor `yaml:"factors"`
}

// LoadYAML reads a document of the form {factors: [{category, activity, factor, unit}]}.
func LoadYAML(r io.Reader) (*Table, error) {
	var doc yamlTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("emission factors: %w", err)
	}
	for i := range doc.Factors {
		doc.Factors[i].Category = Category(strings.ToLower(string(doc.Factors[i].Category)))
	}
	return NewTable(doc.Factors)
}
