package mastery

import (
	"log"
	"math"

	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
)

// Calibration constants. These are contract values tuned against real exam
// outcomes — do not adjust them.
const (
	calibAlpha = 5.0
	calibBeta  = 0.6
	calibGamma = 0.25

	naiveBlend      = 0.3
	calibratedBlend = 0.7
)

// ItemWeight returns the exam point value of the 1-based item number n for a
// course. Items outside the scored range weigh zero.
func ItemWeight(courseID string, n int) float64 {
	switch courseID {
	case catalog.CourseOGE:
		switch {
		case n == 1:
			return 5
		case n >= 6 && n <= 19:
			return 1
		case n >= 20 && n <= 25:
			return 2
		}
	case catalog.CourseEGEBasic:
		if n >= 1 && n <= 21 {
			return 1
		}
	case catalog.CourseEGEAdvanced:
		switch {
		case n >= 1 && n <= 12:
			return 1
		case n == 13, n == 15, n == 16:
			return 2
		case n == 14, n == 17:
			return 3
		case n == 18, n == 19:
			return 4
		}
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// calibrate compresses mid-range uncertainty into a steeper pass/fail
// signal: q = γ + (1-γ)·σ(α·(p-β)).
func calibrate(p float64) float64 {
	return calibGamma + (1-calibGamma)*sigmoid(calibAlpha*(p-calibBeta))
}

// EstimateExpectedScore maps the probability table to a single expected exam
// score. Only FIPI-task entries participate, in the order given. Returns nil
// when there are no FIPI-task entries: absence of data is not a score of 0.
//
// Any panic during calculation is recovered and reported as nil so the rest
// of the snapshot still persists.
func EstimateExpectedScore(entries []models.ProbabilityEntry, courseID string) (score *float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARN: [estimator] expected score calculation failed for course %s: %v", courseID, r)
			score = nil
		}
	}()

	var items []models.ProbabilityEntry
	for _, e := range entries {
		if e.Kind == models.KindFipiTask {
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return nil
	}

	var naive, calibrated float64
	for i, e := range items {
		n := e.FipiTask
		if n == 0 {
			n = i + 1
		}
		w := ItemWeight(courseID, n)
		naive += e.Prob * w
		calibrated += calibrate(e.Prob) * w
	}

	raw := naiveBlend*naive + calibratedBlend*calibrated

	if courseID == catalog.CourseEGEAdvanced {
		rescaled := RescaleAdvanced(raw)
		return &rescaled
	}

	rounded := math.Round(raw*100) / 100
	return &rounded
}

// advancedScaleTable maps raw ЕГЭ-профиль points to the 0-100 test score
// band. Monotonically increasing control points; intermediate values are
// linearly interpolated.
var advancedScaleTable = []struct {
	Raw    float64
	Scaled float64
}{
	{0, 0}, {1, 5}, {2, 9}, {3, 14}, {4, 18}, {5, 23}, {6, 27}, {7, 33},
	{8, 39}, {9, 45}, {10, 50}, {11, 56}, {12, 62}, {13, 64}, {14, 66},
	{15, 68}, {16, 70}, {17, 72}, {18, 74}, {19, 76}, {20, 78}, {21, 80},
	{22, 82}, {23, 84}, {24, 86}, {25, 88}, {26, 90}, {27, 92}, {28, 94},
	{29, 96}, {30, 98}, {31, 99}, {32, 100},
}

// RescaleAdvanced converts a raw point total (~0-32) to the 0-100 band via
// piecewise-linear interpolation, clamping outside the table bounds.
func RescaleAdvanced(raw float64) float64 {
	table := advancedScaleTable
	if raw <= table[0].Raw {
		return table[0].Scaled
	}
	last := table[len(table)-1]
	if raw >= last.Raw {
		return last.Scaled
	}
	for i := 1; i < len(table); i++ {
		if raw <= table[i].Raw {
			lo, hi := table[i-1], table[i]
			frac := (raw - lo.Raw) / (hi.Raw - lo.Raw)
			return lo.Scaled + frac*(hi.Scaled-lo.Scaled)
		}
	}
	return last.Scaled
}
