// Package mlpack is a machine learning library whose algorithms are exposed
// as command-line programs through a generic parameter-binding layer.
//
// Each program ("binding") declares its parameters once, with a type,
// direction and optional short alias, and the binding layer turns that
// declaration into a command-line grammar, help text, input loading and
// output persistence.
//
// # Layout
//
//   - core/params: the parameter registry and the typed value variants
//   - core/data: matrix, vector and ARFF loading and saving
//   - core/model: self-describing model archives
//   - core/timer: named timers reported with --verbose
//   - bindings/cli: command-line parsing, help, and end-of-program handling
//   - linear: least-squares and ridge linear regression
//   - methods/linearregression: the linear_regression and
//     linear_regression_predict programs
//
// # Quick Start
//
// Train a model and predict with it from the shell:
//
//	mlpack_linear_regression -t X.csv -r y.csv -M lr.json
//	mlpack_linear_regression_predict -m lr.json -T X_test.csv -o predictions.csv
//
// Or declare a new binding in Go:
//
//	var binding = cli.Binding{
//	    Details: params.BindingDetails{Name: "scale", Short: "Doubles a dataset."},
//	    Register: func(p *params.Params) error {
//	        if err := p.Add(params.MatrixInReq("input", "Input dataset.", 'i')); err != nil {
//	            return err
//	        }
//	        return p.Add(params.MatrixOut("output", "Scaled dataset.", 'o'))
//	    },
//	    Run: func(p *params.Params, t *timer.Timers) error {
//	        in, err := params.Get[*mat.Dense](p, "input")
//	        if err != nil {
//	            return err
//	        }
//	        var out mat.Dense
//	        out.Scale(2, in)
//	        return params.Set(p, "output", &out)
//	    },
//	}
//
//	func main() { os.Exit(cli.Main(binding, os.Args[1:])) }
package mlpack
