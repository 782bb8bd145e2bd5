package linearregression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/bindings/cli"
	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
	"github.com/shrit/mlpack/linear"
	"github.com/shrit/mlpack/pkg/errors"
)

// PredictBinding returns the linear_regression_predict program.
func PredictBinding() cli.Binding {
	return cli.Binding{
		Details: params.BindingDetails{
			Name:     "linear_regression_predict",
			UserName: "Linear Regression Predict",
			Short: "A pre-trained model obtained from the fit program can be used to " +
				"output regression predictions for a test set.",
			Long: "Given a test set X' and a linear regression model with parameters b, " +
				"this program computes the predicted responses\n\n" +
				"  y' = X' * b\n\n" +
				"The model is given with --input_model_file and the test points with " +
				"--test_file. The predictions are saved to --output_predictions_file.",
			Examples: []string{
				"mlpack_linear_regression_predict --input_model_file lr.json " +
					"--test_file X_test.csv --output_predictions_file y_test.csv",
			},
			SeeAlso: []string{"linear_regression", "Linear/ridge regression tutorial"},
		},
		Register: registerPredict,
		Run:      predict,
	}
}

func registerPredict(p *params.Params) error {
	return addAll(p,
		params.ModelIn[linear.LinearRegression](ParamInputModel,
			"Existing LinearRegression model to use.", 'm'),
		params.MatrixIn(ParamTest, "Matrix containing X' (test regressors).", 'T'),
		params.RowOut(ParamOutputPredictions,
			"If --test_file is specified, this matrix is where the predicted "+
				"responses will be saved.", 'o'),
	)
}

func predict(p *params.Params, timers *timer.Timers) error {
	if err := params.RequireOnlyOnePassed(p, []string{ParamInputModel}); err != nil {
		return err
	}
	if err := params.RequireOnlyOnePassed(p, []string{ParamTest}); err != nil {
		return err
	}

	var lr *linear.LinearRegression
	err := timed(timers, "load_model", func() (err error) {
		lr, err = params.Get[*linear.LinearRegression](p, ParamInputModel)
		return err
	})
	if err != nil {
		return err
	}

	var source string
	err = timed(timers, "load_test_points", func() (err error) {
		source, err = p.GetPrintable(ParamTest)
		return err
	})
	if err != nil {
		return err
	}
	points, err := params.Get[*mat.Dense](p, ParamTest)
	if err != nil {
		return err
	}

	dims, _ := points.Dims()
	if dims != lr.Dimensionality() {
		return errors.NewSourceDimensionError("linear_regression_predict",
			lr.Dimensionality(), dims, source)
	}

	var predictions *mat.VecDense
	err = timed(timers, "prediction", func() (err error) {
		predictions, err = lr.Predict(points.T())
		return err
	})
	if err != nil {
		return err
	}
	return params.Set(p, ParamOutputPredictions, predictions)
}
