package params

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/core/data"
	"github.com/shrit/mlpack/pkg/log"
)

// fileSlot is the part shared by every file-backed value: the path given on
// the command line and whether the value has been materialized from it.
type fileSlot struct {
	path   string
	loaded bool
}

// Path returns the file given on the command line, "" if none.
func (f *fileSlot) Path() string { return f.path }

func (f *fileSlot) Arity() Arity { return ArityOne }

func (f *fileSlot) FlagName(name string) string { return name + "_file" }

func (f *fileSlot) FileBacked() bool { return true }

func (f *fileSlot) AddTo(g Grammar, d *ParamData) {
	g.Single(d.Flag(), d.Alias, d.Desc, "", d.Required)
}

func (f *fileSlot) Assign(d *ParamData, tokens []string) error {
	if len(tokens) != 1 || tokens[0] == "" {
		return malformed(d, fmt.Sprint(tokens), "expected one file name")
	}
	f.path = tokens[0]
	f.loaded = false
	return nil
}

func (f *fileSlot) DefaultString() string { return "" }

func (f *fileSlot) markLoaded() { f.loaded = true }

// pending reports whether d is an input whose file has not been read yet.
func (f *fileSlot) pending(d *ParamData) bool {
	return d.Input && !f.loaded && f.path != ""
}

// destination reports whether d is an output with somewhere to go.
func (f *fileSlot) destination(d *ParamData) bool {
	return !d.Input && f.path != ""
}

func logLoad(logger log.Logger, d *ParamData, path string, rows, cols int) {
	format, _ := data.DetectFormat(path)
	logger.Info(fmt.Sprintf("Loading '%s' as %s data.  Size is %d x %d.", path, format, rows, cols),
		log.ParamNameKey, d.Name,
		log.FileKey, path,
	)
}

func logSave(logger log.Logger, d *ParamData, path string) {
	format, _ := data.DetectFormat(path)
	logger.Info(fmt.Sprintf("Saving %s data to '%s'.", format, path),
		log.ParamNameKey, d.Name,
		log.FileKey, path,
	)
}

func printableShape(path string, rows, cols int) string {
	return fmt.Sprintf("'%s' (%dx%d matrix)", path, rows, cols)
}

// Matrix is a dense matrix read from or written to a file. Unless it was
// created as a TMatrix, each line of the file is one point and is stored as
// a column.
type Matrix struct {
	fileSlot
	transpose bool
	m         *mat.Dense
}

// Ptr returns the storage of the matrix.
func (x *Matrix) Ptr() **mat.Dense { return &x.m }

func (x *Matrix) Materialize(d *ParamData, logger log.Logger) error {
	if !x.pending(d) {
		return nil
	}
	m, err := data.LoadMatrix(x.path, x.transpose)
	if err != nil {
		return err
	}
	r, c := m.Dims()
	logLoad(logger, d, x.path, r, c)
	x.m = m
	x.loaded = true
	return nil
}

func (x *Matrix) Persist(d *ParamData, logger log.Logger) error {
	if !x.destination(d) || x.m == nil {
		return nil
	}
	logSave(logger, d, x.path)
	return data.SaveMatrix(x.path, x.m, x.transpose)
}

func (x *Matrix) Printable(d *ParamData, logger log.Logger) (string, error) {
	if err := x.Materialize(d, logger); err != nil {
		return "", err
	}
	var r, c int
	if x.m != nil {
		r, c = x.m.Dims()
	}
	return printableShape(x.path, r, c), nil
}

// Col is a column vector stored one element per line.
type Col struct {
	fileSlot
	v *mat.VecDense
}

// Ptr returns the storage of the vector.
func (x *Col) Ptr() **mat.VecDense { return &x.v }

func (x *Col) Materialize(d *ParamData, logger log.Logger) error {
	if !x.pending(d) {
		return nil
	}
	values, err := data.LoadVector(x.path)
	if err != nil {
		return err
	}
	logLoad(logger, d, x.path, len(values), 1)
	x.v = mat.NewVecDense(len(values), values)
	x.loaded = true
	return nil
}

func (x *Col) Persist(d *ParamData, logger log.Logger) error {
	if !x.destination(d) || x.v == nil {
		return nil
	}
	logSave(logger, d, x.path)
	return data.SaveVector(x.path, mat.Col(nil, 0, x.v))
}

func (x *Col) Printable(d *ParamData, logger log.Logger) (string, error) {
	if err := x.Materialize(d, logger); err != nil {
		return "", err
	}
	n := 0
	if x.v != nil {
		n = x.v.Len()
	}
	return printableShape(x.path, n, 1), nil
}

// Row is a row vector. On disk it has the same layout as a Col; only the
// printable shape differs.
type Row struct {
	Col
}

func (x *Row) Printable(d *ParamData, logger log.Logger) (string, error) {
	if err := x.Materialize(d, logger); err != nil {
		return "", err
	}
	n := 0
	if x.v != nil {
		n = x.v.Len()
	}
	return printableShape(x.path, 1, n), nil
}

// Labels is a vector of non-negative integers, such as class labels. It
// round-trips exactly.
type Labels struct {
	fileSlot
	row bool
	v   []int
}

// Ptr returns the storage of the labels.
func (x *Labels) Ptr() *[]int { return &x.v }

func (x *Labels) Materialize(d *ParamData, logger log.Logger) error {
	if !x.pending(d) {
		return nil
	}
	labels, err := data.LoadLabels(x.path)
	if err != nil {
		return err
	}
	logLoad(logger, d, x.path, len(labels), 1)
	x.v = labels
	x.loaded = true
	return nil
}

func (x *Labels) Persist(d *ParamData, logger log.Logger) error {
	if !x.destination(d) || x.v == nil {
		return nil
	}
	logSave(logger, d, x.path)
	return data.SaveLabels(x.path, x.v)
}

func (x *Labels) Printable(d *ParamData, logger log.Logger) (string, error) {
	if err := x.Materialize(d, logger); err != nil {
		return "", err
	}
	if x.row {
		return printableShape(x.path, 1, len(x.v)), nil
	}
	return printableShape(x.path, len(x.v), 1), nil
}

// Dataset is a matrix loaded together with its DatasetInfo. Categorical
// dimensions are mapped to integers; an Info set through GetRaw before the
// first Get supplies existing mappings.
type Dataset struct {
	fileSlot
	v data.MatrixWithInfo
}

// Ptr returns the storage of the dataset.
func (x *Dataset) Ptr() *data.MatrixWithInfo { return &x.v }

func (x *Dataset) Materialize(d *ParamData, logger log.Logger) error {
	if !x.pending(d) {
		return nil
	}
	m, info, err := data.LoadWithInfo(x.path, x.v.Info, true)
	if err != nil {
		return err
	}
	r, c := m.Dims()
	logLoad(logger, d, x.path, r, c)
	x.v = data.MatrixWithInfo{Info: info, Matrix: m}
	x.loaded = true
	return nil
}

func (x *Dataset) Persist(*ParamData, log.Logger) error { return nil }

func (x *Dataset) Printable(d *ParamData, logger log.Logger) (string, error) {
	if err := x.Materialize(d, logger); err != nil {
		return "", err
	}
	var r, c int
	if x.v.Matrix != nil {
		r, c = x.v.Matrix.Dims()
	}
	return printableShape(x.path, r, c), nil
}
