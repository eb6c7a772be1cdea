package domain

import (
	"math"
	"testing"
)

func TestNormalize_UnitNorm(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-6 {
		t.Fatalf("expected unit norm, got %v", math.Sqrt(sum))
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Fatalf("unexpected direction: %v", v)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Fatalf("expected zero vector unchanged, got %v at %d", x, i)
		}
	}
}

func TestWeightedMean_EqualWeights(t *testing.T) {
	// Equal weights cancel: the result is the plain mean.
	got := WeightedMean(
		[][]float32{{1, 0}, {0, 1}},
		[]float64{1.5, 1.5},
	)
	want := []float32{0.5, 0.5}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWeightedMean_FavoriteOutweighsSearch(t *testing.T) {
	// One favorite (1.5) and one most-recent search term (0.5):
	// (1.5*v_fav + 0.5*v_search) / 2.0
	fav := []float32{1, 0}
	search := []float32{0, 1}

	got := WeightedMean([][]float32{fav, search}, []float64{1.5, 0.5})
	want := []float32{0.75, 0.25}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWeightedMean_Invalid(t *testing.T) {
	if got := WeightedMean(nil, nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := WeightedMean([][]float32{{1, 2}}, []float64{1, 2}); got != nil {
		t.Fatalf("expected nil for mismatched weights, got %v", got)
	}
	if got := WeightedMean([][]float32{{1, 2}, {1}}, []float64{1, 1}); got != nil {
		t.Fatalf("expected nil for mixed dimensions, got %v", got)
	}
}
