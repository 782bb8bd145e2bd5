// Command mlpack_linear_regression_predict computes predictions of a saved
// linear regression model on a test set.
package main

import (
	"os"

	"github.com/shrit/mlpack/bindings/cli"
	"github.com/shrit/mlpack/methods/linearregression"
)

func main() {
	os.Exit(cli.Main(linearregression.PredictBinding(), os.Args[1:]))
}
