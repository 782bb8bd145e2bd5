package log

// Binding and parameter context.
const (
	// BindingKey names the program being run, e.g. "linear_regression_predict".
	BindingKey = "binding.name"

	// ParamNameKey is the canonical name of a parameter.
	ParamNameKey = "param.name"

	// FlagKey is the command-line form of a parameter, e.g. "--test_file".
	FlagKey = "param.flag"

	// TypeKey is the display type of a parameter value.
	TypeKey = "param.type"

	// ValueKey is the printable value of a parameter.
	ValueKey = "param.value"

	// FileKey is a path a parameter is loaded from or saved to.
	FileKey = "param.file"

	// TimerKey names a binding timer.
	TimerKey = "timer.name"
)

// Model and data shape.
const (
	// ModelNameKey identifies the type of a model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey is the id recorded in a saved model archive.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed: "fit", "predict", "load", "save".
	OperationKey = "ml.operation"

	// SamplesKey is the number of points in a dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the dimensionality of a dataset.
	FeaturesKey = "data.features"
)

// Performance and errors.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ErrorCodeKey is a structured error code such as "MISSING_REQUIRED".
	ErrorCodeKey = "error.code"

	// ErrorTypeKey is the error kind, e.g. "UserInputError".
	ErrorTypeKey = "error.type"
)

// Standard values for OperationKey.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationLoad    = "load"
	OperationSave    = "save"
	OperationParse   = "parse"
)
