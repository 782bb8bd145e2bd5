package data

import (
	"bufio"
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/pkg/errors"
)

// LoadMatrix reads a dense numeric matrix from path. Each line of the file is
// a row; with transpose each line becomes a column instead. ARFF files are
// accepted and their categorical dimensions are mapped in order of
// appearance.
func LoadMatrix(path string, transpose bool) (*mat.Dense, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == ARFF {
		m, _, err := LoadWithInfo(path, nil, transpose)
		return m, err
	}

	records, err := readRecords(path, format)
	if err != nil {
		return nil, err
	}
	rows := len(records)
	if rows == 0 {
		return nil, errors.NewFormatError(path, "no data in %s file", format)
	}
	cols := len(records[0])
	values := make([]float64, 0, rows*cols)
	for i, record := range records {
		for j, field := range record {
			v, err := parseFloat(field)
			if err != nil {
				return nil, errors.NewFormatError(path,
					"cannot parse '%s' at line %d, column %d as a number", field, i+1, j+1)
			}
			values = append(values, v)
		}
	}

	m := mat.NewDense(rows, cols, values)
	if !transpose {
		return m, nil
	}
	return mat.DenseCopyOf(m.T()), nil
}

// SaveMatrix writes m to path, one row per line, or one column per line with
// transpose.
func SaveMatrix(path string, m mat.Matrix, transpose bool) error {
	format, err := saveFormat(path)
	if err != nil {
		return err
	}
	src := m
	if transpose {
		src = m.T()
	}
	r, c := src.Dims()
	lines := make([][]string, r)
	for i := 0; i < r; i++ {
		line := make([]string, c)
		for j := 0; j < c; j++ {
			line[j] = formatFloat(src.At(i, j))
		}
		lines[i] = line
	}
	return writeLines(path, format, lines)
}

// LoadVector reads a vector stored either on one line or one element per
// line.
func LoadVector(path string) ([]float64, error) {
	m, err := LoadMatrix(path, false)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	switch {
	case r == 1:
		return append([]float64(nil), m.RawRowView(0)...), nil
	case c == 1:
		return mat.Col(nil, 0, m), nil
	default:
		return nil, errors.NewFormatError(path, "expected a vector but found a %dx%d matrix", r, c)
	}
}

// SaveVector writes values to path, one element per line.
func SaveVector(path string, values []float64) error {
	format, err := saveFormat(path)
	if err != nil {
		return err
	}
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = formatFloat(v)
	}
	return writeLines(path, format, column(fields))
}

// LoadLabels reads a vector of non-negative integers, such as class labels.
func LoadLabels(path string) ([]int, error) {
	values, err := LoadVector(path)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(values))
	for i, v := range values {
		if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			return nil, errors.NewFormatError(path, "'%s' is not a non-negative integer", formatFloat(v))
		}
		labels[i] = int(v)
	}
	return labels, nil
}

// SaveLabels writes labels to path, one per line.
func SaveLabels(path string, labels []int) error {
	format, err := saveFormat(path)
	if err != nil {
		return err
	}
	fields := make([]string, len(labels))
	for i, v := range labels {
		fields[i] = strconv.Itoa(v)
	}
	return writeLines(path, format, column(fields))
}

func column(fields []string) [][]string {
	lines := make([][]string, len(fields))
	for i, f := range fields {
		lines[i] = []string{f}
	}
	return lines
}

func saveFormat(path string) (Format, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return 0, err
	}
	if format == ARFF {
		return 0, errors.NewFormatError(path, "saving ARFF files is not supported")
	}
	return format, nil
}

// readRecords returns the trimmed fields of every non-empty line. All lines
// must have the same number of fields.
func readRecords(path string, format Format) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError(path, err)
	}
	defer file.Close()

	var records [][]string
	switch format {
	case CSV, TSV:
		r := csv.NewReader(file)
		if format == TSV {
			r.Comma = '\t'
		}
		r.TrimLeadingSpace = true
		records, err = r.ReadAll()
		if err != nil {
			return nil, errors.NewFormatError(path, "%v", err)
		}
	default:
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			if len(records) > 0 && len(fields) != len(records[0]) {
				return nil, errors.NewFormatError(path,
					"line %d has %d fields, expected %d", len(records)+1, len(fields), len(records[0]))
			}
			records = append(records, fields)
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.NewFileError(path, err)
		}
	}

	for _, record := range records {
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
	}
	return records, nil
}

func writeLines(path string, format Format, lines [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewFileError(path, err)
	}
	w := bufio.NewWriter(file)
	sep := separator(format)
	for _, line := range lines {
		w.WriteString(strings.Join(line, sep))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return errors.NewFileError(path, err)
	}
	if err := file.Close(); err != nil {
		return errors.NewFileError(path, err)
	}
	return nil
}

func separator(format Format) string {
	switch format {
	case TSV:
		return "\t"
	case Text:
		return " "
	default:
		return ","
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
