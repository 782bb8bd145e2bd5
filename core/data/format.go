// Package data loads and saves the datasets read and written by bindings:
// dense matrices, label and response vectors, and categorical datasets with
// their DatasetInfo.
//
// Text files hold one point per line. Matrix parameters are transposed on
// load so that each point becomes a column, the layout the algorithms use.
package data

import (
	"path/filepath"
	"strings"

	"github.com/shrit/mlpack/pkg/errors"
)

// Format is an on-disk dataset format.
type Format int

const (
	// CSV is comma-separated text.
	CSV Format = iota
	// TSV is tab-separated text.
	TSV
	// Text is whitespace-separated text.
	Text
	// ARFF is the Weka attribute-relation file format.
	ARFF
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case Text:
		return "raw ASCII"
	case ARFF:
		return "ARFF"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format of path from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".tsv":
		return TSV, nil
	case ".txt":
		return Text, nil
	case ".arff":
		return ARFF, nil
	default:
		return 0, errors.NewFormatError(path,
			"unable to detect type of '%s'; incorrect extension? (allowed: csv, tsv, txt, arff)", path)
	}
}
