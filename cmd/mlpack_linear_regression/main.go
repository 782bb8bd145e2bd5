// Command mlpack_linear_regression trains a linear or ridge regression model
// and optionally predicts the responses of a test set.
package main

import (
	"os"

	"github.com/shrit/mlpack/bindings/cli"
	"github.com/shrit/mlpack/methods/linearregression"
)

func main() {
	os.Exit(cli.Main(linearregression.FitBinding(), os.Args[1:]))
}
