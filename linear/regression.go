// Package linear implements least-squares and ridge linear regression.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/core/model"
	"github.com/shrit/mlpack/core/parallel"
	"github.com/shrit/mlpack/metrics"
	"github.com/shrit/mlpack/pkg/errors"
)

// parallelThreshold is the number of samples below which the normal
// equations are accumulated on a single goroutine.
const parallelThreshold = 1000

// LinearRegression solves y = X b by (regularized) least squares:
//
//	b = (X'X + lambda I)^-1 X'y
//
// When an intercept is fitted, X is augmented with a leading column of ones
// and Parameters[0] is the intercept.
type LinearRegression struct {
	model.BaseEstimator `yaml:",inline"`

	// Parameters are the fitted coefficients, intercept first.
	Parameters []float64 `json:"parameters" yaml:"parameters" xml:"parameter"`
	// Lambda is the ridge regularization parameter.
	Lambda float64 `json:"lambda" yaml:"lambda" xml:"lambda"`
	// FitIntercept is whether Parameters starts with an intercept.
	FitIntercept bool `json:"intercept" yaml:"intercept" xml:"intercept"`
}

var (
	_ model.Fitter    = (*LinearRegression)(nil)
	_ model.Predictor = (*LinearRegression)(nil)
	_ model.Named     = (*LinearRegression)(nil)
)

// NewLinearRegression returns an unfitted model with an intercept and no
// regularization.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{FitIntercept: true}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// ModelName implements model.Named.
func (lr *LinearRegression) ModelName() string { return "LinearRegression" }

// Fit trains the model on X, one sample per row, and responses y.
func (lr *LinearRegression) Fit(X mat.Matrix, y mat.Vector) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, y.Len())
	}
	if lr.Lambda < 0 {
		return errors.NewValueError("LinearRegression.Fit", "lambda must be non-negative")
	}

	offset := 0
	if lr.FitIntercept {
		offset = 1
	}
	d := c + offset

	// Accumulate X'X and X'y over row ranges.
	type normal struct {
		xtx *mat.SymDense
		xty *mat.VecDense
	}
	sums := parallel.Reduce(r, parallelThreshold,
		func(start, end int) normal {
			xtx := mat.NewSymDense(d, nil)
			xty := mat.NewVecDense(d, nil)
			row := make([]float64, d)
			for i := start; i < end; i++ {
				if offset == 1 {
					row[0] = 1
				}
				for j := 0; j < c; j++ {
					row[j+offset] = X.At(i, j)
				}
				x := mat.NewVecDense(d, row)
				xtx.SymRankOne(xtx, 1, x)
				xty.AddScaledVec(xty, y.AtVec(i), x)
			}
			return normal{xtx: xtx, xty: xty}
		},
		func(acc, part normal) normal {
			acc.xtx.AddSym(acc.xtx, part.xtx)
			acc.xty.AddVec(acc.xty, part.xty)
			return acc
		})

	for i := 0; i < d; i++ {
		sums.xtx.SetSym(i, i, sums.xtx.At(i, i)+lr.Lambda)
	}

	var chol mat.Cholesky
	b := mat.NewVecDense(d, nil)
	if ok := chol.Factorize(sums.xtx); ok {
		if err := chol.SolveVecTo(b, sums.xty); err != nil {
			return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
		}
	} else {
		// X'X is only positive semi-definite for rank-deficient X.
		var a mat.Dense
		a.CloneFrom(sums.xtx)
		if err := b.SolveVec(&a, sums.xty); err != nil {
			return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
		}
	}

	lr.Parameters = append(lr.Parameters[:0], b.RawVector().Data...)
	lr.SetFitted()
	return nil
}

// Dimensionality returns the number of features the model was trained on.
func (lr *LinearRegression) Dimensionality() int {
	if lr.FitIntercept {
		return len(lr.Parameters) - 1
	}
	return len(lr.Parameters)
}

// Intercept returns the fitted intercept, or 0 without one.
func (lr *LinearRegression) Intercept() float64 {
	if !lr.FitIntercept || len(lr.Parameters) == 0 {
		return 0
	}
	return lr.Parameters[0]
}

// Coefficients returns the fitted feature weights, without the intercept.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.FitIntercept && len(lr.Parameters) > 0 {
		return append([]float64(nil), lr.Parameters[1:]...)
	}
	return append([]float64(nil), lr.Parameters...)
}

// Predict returns one prediction per row of X.
func (lr *LinearRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	r, c := X.Dims()
	if c != lr.Dimensionality() {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.Dimensionality(), c)
	}

	w := mat.NewVecDense(c, lr.Coefficients())
	predictions := mat.NewVecDense(r, nil)
	predictions.MulVec(X, w)
	if b := lr.Intercept(); b != 0 {
		for i := 0; i < r; i++ {
			predictions.SetVec(i, predictions.AtVec(i)+b)
		}
	}
	return predictions, nil
}

// ComputeError returns the mean squared error of the model on X and y.
func (lr *LinearRegression) ComputeError(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.MSE(y, pred)
}

// Score returns the coefficient of determination of the model on X and y.
func (lr *LinearRegression) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, pred)
}
