package linearregression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack/bindings/cli"
	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
	"github.com/shrit/mlpack/linear"
	"github.com/shrit/mlpack/pkg/errors"
)

// FitBinding returns the linear_regression program. It trains a model, or
// loads one, and optionally predicts the responses of a test set.
func FitBinding() cli.Binding {
	return cli.Binding{
		Details: params.BindingDetails{
			Name:     "linear_regression",
			UserName: "Simple Linear Regression and Prediction",
			Short: "An implementation of simple linear regression and ridge regression " +
				"using ordinary least squares. Given a dataset and responses, a model " +
				"can be trained and saved for later use, or a pre-trained model can be " +
				"used to output regression predictions for a test set.",
			Long: "This program solves\n\n" +
				"  y = X * b + e\n\n" +
				"where X (--training_file) and y (--training_responses_file) are known " +
				"and b is the desired variable. If the responses are not given, the " +
				"last row of the training file is used. The ridge parameter is set " +
				"with --lambda; the default of 0 gives ordinary least squares.\n\n" +
				"The model can be saved with --output_model_file. With --test_file, " +
				"the predicted responses are saved to --output_predictions_file.",
			Examples: []string{
				"mlpack_linear_regression --training_file X.csv " +
					"--training_responses_file y.csv --output_model_file lr.json",
				"mlpack_linear_regression --input_model_file lr.json " +
					"--test_file X_test.csv --output_predictions_file y_test.csv",
			},
			SeeAlso: []string{"linear_regression_predict", "Linear/ridge regression tutorial"},
		},
		Register: registerFit,
		Run:      fit,
	}
}

func registerFit(p *params.Params) error {
	return addAll(p,
		params.MatrixIn(ParamTraining,
			"Matrix containing training set X (regressors).", 't'),
		params.RowIn(ParamTrainingResponses,
			"Optional vector containing y (responses). If not given, the responses "+
				"are assumed to be the last row of the input file.", 'r'),
		params.FloatIn(ParamLambda,
			"Tikhonov regularization for ridge regression. If 0, the method "+
				"reduces to linear regression.", 'l', 0),
		params.ModelIn[linear.LinearRegression](ParamInputModel,
			"Existing LinearRegression model to use.", 'm'),
		params.MatrixIn(ParamTest, "Matrix containing X' (test regressors).", 'T'),
		params.ModelOut[linear.LinearRegression](ParamOutputModel,
			"Output LinearRegression model.", 'M'),
		params.RowOut(ParamOutputPredictions,
			"If --test_file is specified, this matrix is where the predicted "+
				"responses will be saved.", 'o'),
	)
}

func checkFit(p *params.Params) error {
	if err := params.RequireOnlyOnePassed(p, []string{ParamTraining, ParamInputModel}); err != nil {
		return err
	}
	if err := params.RequireAtLeastOnePassed(p,
		[]string{ParamOutputModel, ParamOutputPredictions},
		params.Warn(), params.WithMessage("no results will be saved")); err != nil {
		return err
	}
	ignored := []struct {
		conds []params.Condition
		name  string
	}{
		{[]params.Condition{{Name: ParamTraining}}, ParamTrainingResponses},
		{[]params.Condition{{Name: ParamInputModel, Passed: true}}, ParamLambda},
		{[]params.Condition{{Name: ParamTest}}, ParamOutputPredictions},
	}
	for _, ig := range ignored {
		if err := params.ReportIgnoredParam(p, ig.conds, ig.name); err != nil {
			return err
		}
	}
	return params.RequireParamValue(p, ParamLambda,
		func(l float64) bool { return l >= 0 }, "lambda must be non-negative")
}

func fit(p *params.Params, timers *timer.Timers) error {
	if err := checkFit(p); err != nil {
		return err
	}

	var lr *linear.LinearRegression
	trained, _ := p.WasPassed(ParamTraining)
	if trained {
		var err error
		if lr, err = train(p, timers); err != nil {
			return err
		}
	} else {
		err := timed(timers, "load_model", func() (err error) {
			lr, err = params.Get[*linear.LinearRegression](p, ParamInputModel)
			return err
		})
		if err != nil {
			return err
		}
	}

	if test, _ := p.WasPassed(ParamTest); test {
		var source string
		err := timed(timers, "load_test_points", func() (err error) {
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
			return errors.NewSourceDimensionError("linear_regression",
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
		if err := params.Set(p, ParamOutputPredictions, predictions); err != nil {
			return err
		}
	}

	return params.Set(p, ParamOutputModel, lr)
}

// train fits a model on the training set. Columns of the training matrix are
// points; without separate responses the last dimension is the response.
func train(p *params.Params, timers *timer.Timers) (*linear.LinearRegression, error) {
	var regressors *mat.Dense
	err := timed(timers, "load_regressors", func() (err error) {
		regressors, err = params.Get[*mat.Dense](p, ParamTraining)
		return err
	})
	if err != nil {
		return nil, err
	}
	dims, n := regressors.Dims()

	var responses *mat.VecDense
	var X mat.Matrix
	if passed, _ := p.WasPassed(ParamTrainingResponses); passed {
		err := timed(timers, "load_responses", func() (err error) {
			responses, err = params.Get[*mat.VecDense](p, ParamTrainingResponses)
			return err
		})
		if err != nil {
			return nil, err
		}
		if responses.Len() != n {
			return nil, errors.NewValueError("linear_regression",
				"The responses must have the same number of columns as the training set.")
		}
		X = regressors.T()
	} else {
		if dims < 2 {
			return nil, errors.NewValueError("linear_regression",
				"The training set needs at least two rows when --training_responses_file is not given.")
		}
		responses = mat.NewVecDense(n, mat.Row(nil, dims-1, regressors))
		X = regressors.Slice(0, dims-1, 0, n).T()
	}

	lambda, err := params.Get[float64](p, ParamLambda)
	if err != nil {
		return nil, err
	}
	lr := linear.NewLinearRegression(linear.WithLambda(lambda))
	err = timed(timers, "regression", func() error {
		return lr.Fit(X, responses)
	})
	if err != nil {
		return nil, err
	}
	return lr, nil
}
