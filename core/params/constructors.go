package params

import (
	"fmt"

	"github.com/shrit/mlpack/core/data"
)

// Type tags of the value variants.
const (
	TagFlag    = "flag"
	TagInt     = "int"
	TagFloat   = "double"
	TagString  = "string"
	TagVector  = "vector"
	TagMatrix  = "matrix"
	TagTMatrix = "tmatrix"
	TagCol     = "col"
	TagRow     = "row"
	TagUCol    = "ucol"
	TagURow    = "urow"
	TagDataset = "matrix_with_info"
	TagModel   = "model"
)

func param(name, desc string, alias rune, tag, goType string, input, required bool, v Value) ParamData {
	return ParamData{
		Name:     name,
		Desc:     desc,
		Alias:    alias,
		TName:    tag,
		GoType:   goType,
		Required: required,
		Input:    input,
		Value:    v,
	}
}

// FlagParam is a boolean toggle, false unless passed.
func FlagParam(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagFlag, "bool", true, false, &Flag{})
}

// IntIn is an optional integer input with a default.
func IntIn(name, desc string, alias rune, def int) ParamData {
	return param(name, desc, alias, TagInt, "int", true, false, newScalar(def, true))
}

// IntInReq is a required integer input.
func IntInReq(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagInt, "int", true, true, newScalar(0, false))
}

// IntOut is an integer output, printed when the program ends.
func IntOut(name, desc string) ParamData {
	return param(name, desc, 0, TagInt, "int", false, false, newScalar(0, false))
}

// FloatIn is an optional floating-point input with a default.
func FloatIn(name, desc string, alias rune, def float64) ParamData {
	return param(name, desc, alias, TagFloat, "float64", true, false, newScalar(def, true))
}

// FloatInReq is a required floating-point input.
func FloatInReq(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagFloat, "float64", true, true, newScalar(0.0, false))
}

// FloatOut is a floating-point output, printed when the program ends.
func FloatOut(name, desc string) ParamData {
	return param(name, desc, 0, TagFloat, "float64", false, false, newScalar(0.0, false))
}

// StringIn is an optional string input with a default.
func StringIn(name, desc string, alias rune, def string) ParamData {
	return param(name, desc, alias, TagString, "string", true, false, newScalar(def, def != ""))
}

// StringInReq is a required string input.
func StringInReq(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagString, "string", true, true, newScalar("", false))
}

// StringOut is a string output, printed when the program ends.
func StringOut(name, desc string) ParamData {
	return param(name, desc, 0, TagString, "string", false, false, newScalar("", false))
}

// VectorIn is a multi-valued input. The flag may be repeated or given
// several values at once.
func VectorIn[E Element](name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagVector, vectorType[E](), true, false, &Vector[E]{})
}

// VectorOut is a multi-valued output, printed when the program ends.
func VectorOut[E Element](name, desc string) ParamData {
	return param(name, desc, 0, TagVector, vectorType[E](), false, false, &Vector[E]{})
}

func vectorType[E Element]() string {
	return "[]" + typeName[E]()
}

// MatrixIn is an optional matrix input. Each point of the file becomes a
// column.
func MatrixIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagMatrix, "*mat.Dense", true, false, &Matrix{transpose: true})
}

// MatrixInReq is a required matrix input.
func MatrixInReq(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagMatrix, "*mat.Dense", true, true, &Matrix{transpose: true})
}

// MatrixOut is a matrix output, saved when the program ends if a file was
// given.
func MatrixOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagMatrix, "*mat.Dense", false, false, &Matrix{transpose: true})
}

// TMatrixIn is a matrix input loaded as it is laid out in the file.
func TMatrixIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagTMatrix, "*mat.Dense", true, false, &Matrix{})
}

// TMatrixOut is a matrix output saved as it is laid out in memory.
func TMatrixOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagTMatrix, "*mat.Dense", false, false, &Matrix{})
}

// ColIn is a column vector input.
func ColIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagCol, "*mat.VecDense", true, false, &Col{})
}

// ColOut is a column vector output.
func ColOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagCol, "*mat.VecDense", false, false, &Col{})
}

// RowIn is a row vector input.
func RowIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagRow, "*mat.VecDense", true, false, &Row{})
}

// RowOut is a row vector output.
func RowOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagRow, "*mat.VecDense", false, false, &Row{})
}

// UColIn is a column of labels.
func UColIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagUCol, "[]int", true, false, &Labels{})
}

// UColOut is a column of labels written when the program ends.
func UColOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagUCol, "[]int", false, false, &Labels{})
}

// URowIn is a row of labels.
func URowIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagURow, "[]int", true, false, &Labels{row: true})
}

// URowOut is a row of labels written when the program ends.
func URowOut(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagURow, "[]int", false, false, &Labels{row: true})
}

// MatrixAndInfoIn is a dataset input whose categorical dimensions are mapped
// to integers.
func MatrixAndInfoIn(name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagDataset, typeName[data.MatrixWithInfo](), true, false, &Dataset{})
}

// ModelIn is an optional model input of type T.
func ModelIn[T any](name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagModel, modelType[T](), true, false, &Model[T]{})
}

// ModelInReq is a required model input of type T.
func ModelInReq[T any](name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagModel, modelType[T](), true, true, &Model[T]{})
}

// ModelOut is a model output of type T, saved when the program ends.
func ModelOut[T any](name, desc string, alias rune) ParamData {
	return param(name, desc, alias, TagModel, modelType[T](), false, false, &Model[T]{})
}

func modelType[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}
