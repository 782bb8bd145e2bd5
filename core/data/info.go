package data

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/pkg/errors"
)

// Datatype is the kind of values held by one dimension of a dataset.
type Datatype int

const (
	// Numeric dimensions hold real numbers.
	Numeric Datatype = iota
	// Categorical dimensions hold strings mapped to 0, 1, 2, ...
	Categorical
)

func (d Datatype) String() string {
	if d == Categorical {
		return "categorical"
	}
	return "numeric"
}

// DatasetInfo records the type of each dimension of a dataset and, for
// categorical dimensions, the string to integer mapping used when loading.
// Strings are mapped in the order they are first seen.
type DatasetInfo struct {
	types    []Datatype
	mappings []map[string]int
	reverse  [][]string
}

// NewDatasetInfo returns info for dims numeric dimensions.
func NewDatasetInfo(dims int) *DatasetInfo {
	return &DatasetInfo{
		types:    make([]Datatype, dims),
		mappings: make([]map[string]int, dims),
		reverse:  make([][]string, dims),
	}
}

// Dimensionality returns the number of dimensions.
func (i *DatasetInfo) Dimensionality() int {
	return len(i.types)
}

// Type returns the type of dimension dim.
func (i *DatasetInfo) Type(dim int) Datatype {
	return i.types[dim]
}

// SetType sets the type of dimension dim.
func (i *DatasetInfo) SetType(dim int, t Datatype) {
	i.types[dim] = t
}

// MapString returns the value s maps to in dimension dim, assigning the next
// free value if s has not been seen. The dimension becomes categorical.
func (i *DatasetInfo) MapString(s string, dim int) int {
	i.types[dim] = Categorical
	if i.mappings[dim] == nil {
		i.mappings[dim] = make(map[string]int)
	}
	if v, ok := i.mappings[dim][s]; ok {
		return v
	}
	v := len(i.reverse[dim])
	i.mappings[dim][s] = v
	i.reverse[dim] = append(i.reverse[dim], s)
	return v
}

// UnmapString returns the string that maps to value in dimension dim.
func (i *DatasetInfo) UnmapString(value, dim int) (string, error) {
	if value < 0 || value >= len(i.reverse[dim]) {
		return "", errors.NewValueError("UnmapString",
			fmt.Sprintf("value %d has no mapping in dimension %d", value, dim))
	}
	return i.reverse[dim][value], nil
}

// NumMappings returns how many strings are mapped in dimension dim.
func (i *DatasetInfo) NumMappings(dim int) int {
	return len(i.reverse[dim])
}

// MatrixWithInfo is a dataset loaded together with its DatasetInfo. Points
// are the columns of Matrix.
type MatrixWithInfo struct {
	Info   *DatasetInfo
	Matrix *mat.Dense
}
