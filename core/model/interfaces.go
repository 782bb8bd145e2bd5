// Package model holds what every mlpack model shares: its training state and
// the self-describing archives models are saved to and loaded from.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is a model that can be trained. X holds one sample per row.
type Fitter interface {
	Fit(X mat.Matrix, y mat.Vector) error
}

// Predictor is a model that can predict one response per row of X.
type Predictor interface {
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Named is implemented by models that choose the name recorded in their
// archives. Other models are recorded under their Go type name.
type Named interface {
	ModelName() string
}
