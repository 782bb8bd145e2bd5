// Package linearregression provides the linear_regression and
// linear_regression_predict command-line programs.
package linearregression

import (
	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
)

// Parameter names shared by the two programs.
const (
	ParamTraining          = "training"
	ParamTrainingResponses = "training_responses"
	ParamLambda            = "lambda"
	ParamInputModel        = "input_model"
	ParamTest              = "test"
	ParamOutputModel       = "output_model"
	ParamOutputPredictions = "output_predictions"
)

func addAll(p *params.Params, ds ...params.ParamData) error {
	for _, d := range ds {
		if err := p.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// timed runs fn under the timer name.
func timed(timers *timer.Timers, name string, fn func() error) error {
	if err := timers.Start(name); err != nil {
		return err
	}
	err := fn()
	if stopErr := timers.Stop(name); err == nil {
		err = stopErr
	}
	return err
}
