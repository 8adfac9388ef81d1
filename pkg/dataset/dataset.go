// Package dataset provides the iris flower-measurement table used by the
// analysis: 150 rows, four numeric features and a species label, embedded
// in the binary so every run sees identical data.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

//go:embed iris.csv
var irisCSV []byte

// Feature column names, in CSV column order.
const (
	SepalLength = "sepal_length"
	SepalWidth  = "sepal_width"
	PetalLength = "petal_length"
	PetalWidth  = "petal_width"
)

// Schema describes the structure of a table.
type Schema struct {
	FeatureNames []string
	LabelName    string
}

// Table is an immutable column-oriented dataset. Columns are read many
// times over the analysis and never mutated after Load returns.
type Table struct {
	schema  Schema
	columns map[string][]float64
	labels  []string
}

// Load parses the embedded iris CSV into a Table.
func Load() (*Table, error) {
	return parse(irisCSV)
}

func parse(raw []byte) (*Table, error) {
	schema := Schema{
		FeatureNames: []string{SepalLength, SepalWidth, PetalLength, PetalWidth},
		LabelName:    "species",
	}
	t := &Table{
		schema:  schema,
		columns: make(map[string][]float64, len(schema.FeatureNames)),
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.ReuseRecord = true
	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading iris row %d", row)
		}
		if len(rec) != len(schema.FeatureNames)+1 {
			return nil, errors.Errorf("iris row %d: want %d fields, got %d", row, len(schema.FeatureNames)+1, len(rec))
		}
		for j, name := range schema.FeatureNames {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "iris row %d column %s", row, name)
			}
			t.columns[name] = append(t.columns[name], v)
		}
		t.labels = append(t.labels, rec[len(rec)-1])
		row++
	}
	if row != 150 {
		return nil, errors.Errorf("iris dataset: want 150 rows, got %d", row)
	}
	return t, nil
}

// Schema returns the table schema.
func (t *Table) Schema() Schema { return t.schema }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.labels) }

// Names returns the numeric feature names in column order.
func (t *Table) Names() []string {
	out := make([]string, len(t.schema.FeatureNames))
	copy(out, t.schema.FeatureNames)
	return out
}

// Column returns a copy of the named numeric column.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, errors.Errorf("dataset has no column %q", name)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Species returns a copy of the label column.
func (t *Table) Species() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}
