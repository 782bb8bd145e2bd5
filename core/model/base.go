package model

// EstimatorState is the training state of a model.
type EstimatorState int

const (
	// NotFitted is the state of a model that has not been trained.
	NotFitted EstimatorState = iota
	// Fitted is the state of a trained model.
	Fitted
)

// BaseEstimator is embedded by every model. The state is exported so that it
// survives a save/load round trip in every archive format.
type BaseEstimator struct {
	State EstimatorState `json:"state" yaml:"state" xml:"state"`
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the model to the untrained state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}
