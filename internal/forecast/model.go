package forecast

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ErrSeriesTooShort signals a brand series with fewer than two observations,
// which cannot support a trend fit.
var ErrSeriesTooShort = errors.New("series too short to fit")

// Options configures the additive model. Changepoints sets how many trend
// change candidates are placed over the first 80% of the history;
// ChangepointPrior controls their flexibility (larger = bendier trend).
type Options struct {
	Changepoints     int
	ChangepointPrior float64
}

func DefaultOptions() Options {
	return Options{Changepoints: 25, ChangepointPrior: 0.05}
}

const (
	weeklyPeriod    = 7.0
	yearlyPeriod    = 365.25
	weeklyHarmonics = 3
	yearlyHarmonics = 10

	// Seasonal blocks share one smoothing prior, matching the original
	// model configuration (seasonality_prior_scale = 10).
	seasonalityPrior = 10.0
)

// additiveModel is a decomposable time series model: piecewise linear trend
// plus weekly and yearly Fourier seasonality, fitted by ridge-regularized
// least squares on daily observations.
type additiveModel struct {
	start        time.Time
	span         float64
	changepoints []float64
	weekly       bool
	yearly       bool
	beta         []float64
}

// fitModel fits the additive model to one brand's daily series. Dates must
// be ascending. Seasonal blocks are only enabled when the observed span can
// support them: two weeks for weekly, a full year for yearly.
func fitModel(dates []time.Time, values []float64, opts Options) (*additiveModel, error) {
	n := len(values)
	if n < 2 {
		return nil, ErrSeriesTooShort
	}

	start := dates[0]
	span := daysBetween(start, dates[n-1])
	if span <= 0 {
		return nil, ErrSeriesTooShort
	}

	m := &additiveModel{
		start:  start,
		span:   span,
		weekly: span >= 2*weeklyPeriod,
		yearly: span >= yearlyPeriod,
	}
	m.changepoints = placeChangepoints(opts.Changepoints, span, n)

	p := len(m.features(0))
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.SetRow(i, m.features(daysBetween(start, dates[i])))
		y.SetVec(i, values[i])
	}

	// Normal equations with a per-column ridge penalty: hinge columns are
	// shrunk by the changepoint prior, seasonal columns by the seasonality
	// prior, intercept and slope are left effectively free.
	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	penalties := m.penalties(opts)
	for j := 0; j < p; j++ {
		xtx.Set(j, j, xtx.At(j, j)+penalties[j])
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return nil, err
	}

	m.beta = make([]float64, p)
	for j := 0; j < p; j++ {
		m.beta[j] = beta.AtVec(j)
	}
	return m, nil
}

// predict returns the model value for an arbitrary date, inside or beyond
// the observed range.
func (m *additiveModel) predict(date time.Time) float64 {
	feats := m.features(daysBetween(m.start, date))
	out := 0.0
	for j, f := range feats {
		out += m.beta[j] * f
	}
	return out
}

func (m *additiveModel) features(t float64) []float64 {
	feats := []float64{1, t / m.span}
	for _, c := range m.changepoints {
		if t > c {
			feats = append(feats, (t-c)/m.span)
		} else {
			feats = append(feats, 0)
		}
	}
	if m.weekly {
		feats = appendFourier(feats, t, weeklyPeriod, weeklyHarmonics)
	}
	if m.yearly {
		feats = appendFourier(feats, t, yearlyPeriod, yearlyHarmonics)
	}
	return feats
}

func (m *additiveModel) penalties(opts Options) []float64 {
	prior := opts.ChangepointPrior
	if prior <= 0 {
		prior = DefaultOptions().ChangepointPrior
	}

	penalties := []float64{1e-8, 1e-8}
	for range m.changepoints {
		penalties = append(penalties, 1/prior)
	}
	seasonal := 0
	if m.weekly {
		seasonal += 2 * weeklyHarmonics
	}
	if m.yearly {
		seasonal += 2 * yearlyHarmonics
	}
	for i := 0; i < seasonal; i++ {
		penalties = append(penalties, 1/seasonalityPrior)
	}
	return penalties
}

// placeChangepoints spreads candidates evenly over the first 80% of the
// span, capped by the number of observations.
func placeChangepoints(requested int, span float64, n int) []float64 {
	if requested <= 0 {
		return nil
	}
	if requested > n-1 {
		requested = n - 1
	}
	cps := make([]float64, 0, requested)
	limit := 0.8 * span
	for i := 1; i <= requested; i++ {
		cps = append(cps, limit*float64(i)/float64(requested+1))
	}
	return cps
}

func appendFourier(feats []float64, t, period float64, harmonics int) []float64 {
	for k := 1; k <= harmonics; k++ {
		angle := 2 * math.Pi * float64(k) * t / period
		feats = append(feats, math.Sin(angle), math.Cos(angle))
	}
	return feats
}

func daysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
