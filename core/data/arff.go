package data

import (
	"bufio"
	"encoding/csv"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/pkg/errors"
)

// LoadWithInfo reads a dataset that may contain categorical dimensions.
//
// ARFF files declare each attribute: STRING and nominal ({a,b,c}) attributes
// are categorical, NUMERIC, REAL and INTEGER attributes are numeric. For
// delimited text files a dimension is categorical if any of its values is not
// a number.
//
// If info is non-nil it must have the dimensionality of the file; its types
// and existing mappings are honoured and extended. Otherwise a new
// DatasetInfo is created.
func LoadWithInfo(path string, info *DatasetInfo, transpose bool) (*mat.Dense, *DatasetInfo, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	var declared []Datatype
	if format == ARFF {
		declared, records, err = readARFF(path)
	} else {
		records, err = readRecords(path, format)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.NewFormatError(path, "no data in %s file", format)
	}

	dims := len(records[0])
	if declared != nil {
		dims = len(declared)
	}
	if info == nil {
		info = NewDatasetInfo(dims)
		for d, t := range declared {
			info.SetType(d, t)
		}
	} else if info.Dimensionality() != dims {
		return nil, nil, errors.NewFormatError(path,
			"dataset has %d dimensions but the given DatasetInfo has %d", dims, info.Dimensionality())
	} else {
		for d, t := range declared {
			if t == Categorical {
				info.SetType(d, Categorical)
			}
		}
	}

	if declared == nil {
		// A dimension with any non-numeric value is categorical.
		for _, record := range records {
			for d, field := range record {
				if info.Type(d) == Numeric {
					if _, err := parseFloat(field); err != nil {
						info.SetType(d, Categorical)
					}
				}
			}
		}
	}

	points := len(records)
	values := make([]float64, 0, points*dims)
	for i, record := range records {
		if len(record) != dims {
			return nil, nil, errors.NewFormatError(path,
				"line %d has %d fields, expected %d", i+1, len(record), dims)
		}
		for d, field := range record {
			if info.Type(d) == Categorical {
				values = append(values, float64(info.MapString(field, d)))
				continue
			}
			v, err := parseFloat(field)
			if err != nil {
				return nil, nil, errors.NewFormatError(path,
					"cannot parse '%s' in numeric dimension %d", field, d)
			}
			values = append(values, v)
		}
	}

	m := mat.NewDense(points, dims, values)
	if transpose {
		m = mat.DenseCopyOf(m.T())
	}
	return m, info, nil
}

// readARFF returns the declared attribute types and the data rows of an ARFF
// file. Nominal value lists are not pre-mapped; values map in order of
// appearance like STRING attributes.
func readARFF(path string) ([]Datatype, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewFileError(path, err)
	}
	defer file.Close()

	var types []Datatype
	var records [][]string
	inData := false
	lineNo := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		if !inData {
			keyword, rest := splitKeyword(line)
			switch strings.ToLower(keyword) {
			case "@relation":
			case "@attribute":
				t, err := attributeType(rest)
				if err != nil {
					return nil, nil, errors.NewFormatError(path, "line %d: %v", lineNo, err)
				}
				types = append(types, t)
			case "@data":
				if len(types) == 0 {
					return nil, nil, errors.NewFormatError(path, "no attributes declared before @data")
				}
				inData = true
			default:
				return nil, nil, errors.NewFormatError(path, "line %d: unknown ARFF keyword '%s'", lineNo, keyword)
			}
			continue
		}

		if strings.HasPrefix(line, "{") {
			return nil, nil, errors.NewFormatError(path, "line %d: sparse ARFF data is not supported", lineNo)
		}
		r := csv.NewReader(strings.NewReader(line))
		r.TrimLeadingSpace = true
		r.LazyQuotes = true
		fields, err := r.Read()
		if err != nil {
			return nil, nil, errors.NewFormatError(path, "line %d: %v", lineNo, err)
		}
		for i := range fields {
			fields[i] = strings.Trim(strings.TrimSpace(fields[i]), "'")
		}
		if len(fields) != len(types) {
			return nil, nil, errors.NewFormatError(path,
				"line %d has %d values, but %d attributes are declared", lineNo, len(fields), len(types))
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.NewFileError(path, err)
	}
	if !inData {
		return nil, nil, errors.NewFormatError(path, "no @data section")
	}
	return types, records, nil
}

func splitKeyword(line string) (string, string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// attributeType parses the part of an @attribute line after the keyword:
// a name, optionally quoted, followed by a type.
func attributeType(decl string) (Datatype, error) {
	var rest string
	if strings.HasPrefix(decl, "'") || strings.HasPrefix(decl, "\"") {
		end := strings.IndexByte(decl[1:], decl[0])
		if end < 0 {
			return Numeric, errors.Newf("unterminated attribute name in '%s'", decl)
		}
		rest = strings.TrimSpace(decl[end+2:])
	} else {
		_, rest = splitKeyword(decl)
	}
	if rest == "" {
		return Numeric, errors.Newf("attribute '%s' has no type", decl)
	}
	if strings.HasPrefix(rest, "{") {
		return Categorical, nil
	}
	switch strings.ToLower(rest) {
	case "numeric", "real", "integer":
		return Numeric, nil
	case "string":
		return Categorical, nil
	default:
		return Numeric, errors.Newf("unsupported attribute type '%s'", rest)
	}
}
