package analysis

import (
	"math"
	"testing"
)

func tone(hz, dt float64, n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.5 + math.Sin(2*math.Pi*hz*float64(i)*dt)
	}
	return data
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		hz float64
		dt float64
		n  int
	}{
		{2.0, 0.01, 1000},
		{0.5, 0.02, 1500},
		{5.0, 0.02, 512},
	}

	for _, tt := range tests {
		got := DominantFrequency(tone(tt.hz, tt.dt, tt.n), tt.dt)
		res := 1 / (float64(tt.n) * tt.dt)
		if math.Abs(got-tt.hz) > res {
			t.Errorf("%.2f Hz tone: got %.4f (resolution %.4f)", tt.hz, got, res)
		}
	}
}

func TestDominantFrequency_Flat(t *testing.T) {
	data := make([]float64, 256)
	for i := range data {
		data[i] = 3
	}
	if got := DominantFrequency(data, 0.01); got != 0 {
		t.Errorf("flat signal: expected 0, got %f", got)
	}
	if got := DominantFrequency([]float64{1}, 0.01); got != 0 {
		t.Errorf("single sample: expected 0, got %f", got)
	}
}

func TestPowerSpectrum(t *testing.T) {
	ps := PowerSpectrum(tone(2.0, 0.01, 1000))
	if len(ps) != 500 {
		t.Fatalf("expected 500 bins, got %d", len(ps))
	}
	if ps[0] >= ps[20] {
		t.Errorf("offset should be removed, dc bin %f vs tone %f", ps[0], ps[20])
	}

	freqs := Frequencies(1000, 0.01)
	if len(freqs) != 500 || math.Abs(freqs[20]-2.0) > 1e-12 {
		t.Errorf("unexpected bin frequency %f", freqs[20])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.N != 8 || s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Mean != 5 || s.StdDev != 2 {
		t.Errorf("expected mean 5 stddev 2, got %f %f", s.Mean, s.StdDev)
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("empty input should give zero summary")
	}
}
