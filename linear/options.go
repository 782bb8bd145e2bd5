package linear

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithLambda sets the Tikhonov (ridge) regularization parameter. Zero gives
// ordinary least squares.
func WithLambda(lambda float64) Option {
	return func(lr *LinearRegression) {
		lr.Lambda = lambda
	}
}

// WithIntercept sets whether an intercept term is fitted.
func WithIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.FitIntercept = fit
	}
}
