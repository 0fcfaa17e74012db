package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/nelson960/Trend-Analysis/internal/trend"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// linearSeries builds n daily points following value = base + slope*day.
func linearSeries(brand string, n int, base, slope float64) []trend.Point {
	points := make([]trend.Point, n)
	for i := 0; i < n; i++ {
		points[i] = trend.Point{
			Date:  day(i),
			Value: base + slope*float64(i),
			Brand: brand,
		}
	}
	return points
}

func TestForecastHorizonZeroRoundTrip(t *testing.T) {
	series := linearSeries("nike", 10, 5, 2)

	out := Forecast(series, 0, DefaultOptions(), nil)
	if len(out) != len(series) {
		t.Fatalf("expected %d rows, got %d", len(series), len(out))
	}
	for i, p := range out {
		if p.Type != TypeActual {
			t.Errorf("row %d: expected type actual, got %s", i, p.Type)
		}
		if p.Observed == nil {
			t.Fatalf("row %d: expected observed value", i)
		}
		if math.Abs(*p.Observed-series[i].Value) > 1e-9 {
			t.Errorf("row %d: expected observed %f, got %f", i, series[i].Value, *p.Observed)
		}
		if !p.Date.Equal(series[i].Date) {
			t.Errorf("row %d: expected date %v, got %v", i, series[i].Date, p.Date)
		}
	}
}

func TestForecastProjectsHorizon(t *testing.T) {
	series := linearSeries("nike", 20, 10, 1)

	out := Forecast(series, 5, DefaultOptions(), nil)
	if len(out) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(out))
	}

	forecasted := out[20:]
	for i, p := range forecasted {
		if p.Type != TypeForecasted {
			t.Errorf("row %d: expected type forecasted, got %s", i, p.Type)
		}
		if p.Observed != nil {
			t.Errorf("row %d: forecasted rows carry no observed value", i)
		}
		if !p.Date.Equal(day(20 + i)) {
			t.Errorf("row %d: expected date %v, got %v", i, day(20+i), p.Date)
		}
	}

	// A steadily rising series should keep rising over the horizon.
	if forecasted[4].Predicted <= series[19].Value {
		t.Errorf("expected trend continuation above %f, got %f",
			series[19].Value, forecasted[4].Predicted)
	}
}

func TestForecastFitsLinearTrend(t *testing.T) {
	series := linearSeries("nike", 30, 4, 3)

	out := Forecast(series, 3, DefaultOptions(), nil)
	for _, p := range out {
		want := 4 + 3*daysBetween(day(0), p.Date)
		if math.Abs(p.Predicted-want) > 2.0 {
			t.Errorf("date %v: predicted %f too far from trend %f", p.Date, p.Predicted, want)
		}
	}
}

func TestForecastSkipsShortSeries(t *testing.T) {
	series := []trend.Point{
		{Date: day(0), Value: 5, Brand: "apple"},
	}
	series = append(series, linearSeries("nike", 10, 5, 1)...)

	out := Forecast(series, 2, DefaultOptions(), nil)
	for _, p := range out {
		if p.Brand == "apple" {
			t.Errorf("expected single-point brand to be skipped, got %+v", p)
		}
	}
	if len(out) != 12 {
		t.Errorf("expected 12 nike rows, got %d", len(out))
	}
}

func TestForecastEmptySeries(t *testing.T) {
	out := Forecast(nil, 10, DefaultOptions(), nil)
	if len(out) != 0 {
		t.Errorf("expected no rows for empty series, got %d", len(out))
	}
}

func TestForecastMultipleBrandsConcatenated(t *testing.T) {
	series := append(linearSeries("apple", 10, 1, 1), linearSeries("nike", 10, 2, 2)...)

	out := Forecast(series, 2, DefaultOptions(), nil)
	if len(out) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(out))
	}
	// Output preserves first-seen brand order regardless of fit scheduling.
	for i := 0; i < 12; i++ {
		if out[i].Brand != "apple" {
			t.Fatalf("row %d: expected apple block first, got %s", i, out[i].Brand)
		}
	}
	for i := 12; i < 24; i++ {
		if out[i].Brand != "nike" {
			t.Fatalf("row %d: expected nike block second, got %s", i, out[i].Brand)
		}
	}
}

func TestFitModelTooShort(t *testing.T) {
	if _, err := fitModel([]time.Time{day(0)}, []float64{1}, DefaultOptions()); err != ErrSeriesTooShort {
		t.Errorf("expected ErrSeriesTooShort, got %v", err)
	}
}

func TestFitModelWeeklySeasonality(t *testing.T) {
	// Four weeks of data with a weekend bump.
	var dates []time.Time
	var values []float64
	for i := 0; i < 28; i++ {
		d := day(i)
		v := 10.0
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			v = 20.0
		}
		dates = append(dates, d)
		values = append(values, v)
	}

	model, err := fitModel(dates, values, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !model.weekly {
		t.Fatal("expected weekly seasonality to be enabled for a 4-week span")
	}

	// The fitted curve should place the next Saturday above the next Monday.
	var saturday, monday time.Time
	for i := 28; i < 35; i++ {
		switch day(i).Weekday() {
		case time.Saturday:
			saturday = day(i)
		case time.Monday:
			monday = day(i)
		}
	}
	if model.predict(saturday) <= model.predict(monday) {
		t.Errorf("expected weekend bump: saturday %f <= monday %f",
			model.predict(saturday), model.predict(monday))
	}
}
