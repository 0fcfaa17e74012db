package forecast

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nelson960/Trend-Analysis/internal/trend"
)

const (
	TypeActual     = "actual"
	TypeForecasted = "forecasted"
)

// Point is one forecast row: the model value for a date, the observed value
// for dates inside the historical range, and a type tag.
type Point struct {
	Date      time.Time
	Brand     string
	Predicted float64
	Observed  *float64
	Type      string
}

// Forecast fits one additive model per brand and projects horizonDays past
// the last observed date. Historical dates keep their observed value and
// are tagged actual; projected dates are tagged forecasted. Brands whose
// series is empty or whose fit fails are logged and skipped; the rest
// proceed. Brand fits are independent and run concurrently.
func Forecast(series []trend.Point, horizonDays int, opts Options, logger *logrus.Logger) []Point {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	brands, byBrand := groupByBrand(series)
	results := make([][]Point, len(brands))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, b := range brands {
		i, b := i, b
		g.Go(func() error {
			points, err := forecastBrand(b, byBrand[b], horizonDays, opts)
			if err != nil {
				logger.WithFields(logrus.Fields{"brand": b, "error": err}).
					Warn("skipping brand forecast")
				return nil
			}
			results[i] = points
			return nil
		})
	}
	// Per-brand failures are absorbed above, so Wait cannot fail.
	_ = g.Wait()

	var out []Point
	for _, points := range results {
		out = append(out, points...)
	}
	return out
}

func forecastBrand(brand string, points []trend.Point, horizonDays int, opts Options) ([]Point, error) {
	dates := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.Date
		values[i] = p.Value
	}

	model, err := fitModel(dates, values, opts)
	if err != nil {
		return nil, err
	}

	out := make([]Point, 0, len(points)+horizonDays)
	for i, d := range dates {
		observed := values[i]
		out = append(out, Point{
			Date:      d,
			Brand:     brand,
			Predicted: model.predict(d),
			Observed:  &observed,
			Type:      TypeActual,
		})
	}

	last := dates[len(dates)-1]
	for h := 1; h <= horizonDays; h++ {
		d := last.AddDate(0, 0, h)
		out = append(out, Point{
			Date:      d,
			Brand:     brand,
			Predicted: model.predict(d),
			Type:      TypeForecasted,
		})
	}
	return out, nil
}

// groupByBrand splits the long-form series per brand, preserving first-seen
// brand order and the date order within each brand.
func groupByBrand(series []trend.Point) ([]string, map[string][]trend.Point) {
	var brands []string
	byBrand := make(map[string][]trend.Point)
	for _, p := range series {
		if _, ok := byBrand[p.Brand]; !ok {
			brands = append(brands, p.Brand)
		}
		byBrand[p.Brand] = append(byBrand[p.Brand], p)
	}
	return brands, byBrand
}
