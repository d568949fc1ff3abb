package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{90000}, want: 90000},
		{name: "odd", values: []float64{3, 1, 2}, want: 2},
		{name: "even averages middle pair", values: []float64{4, 1, 3, 2}, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Median(tt.values))
		})
	}
}

func TestMedian_DoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, Quantile(sorted, 0.75), 1e-9)
}

func TestFiveNumberSummary(t *testing.T) {
	lo, q1, med, q3, hi := FiveNumberSummary([]float64{50, 10, 40, 20, 30})
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, []float64{lo, q1, med, q3, hi})

	lo, q1, med, q3, hi = FiveNumberSummary(nil)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, []float64{lo, q1, med, q3, hi})
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, percent(1, 2))
	assert.Equal(t, 0.0, percent(1, 0))
}
