package mastery

import (
	"math"
	"testing"

	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
)

func TestItemWeightOGE(t *testing.T) {
	tests := []struct {
		item int
		want float64
	}{
		{1, 5},
		{2, 0},
		{5, 0},
		{6, 1},
		{19, 1},
		{20, 2},
		{25, 2},
		{26, 0},
	}
	for _, tt := range tests {
		if got := ItemWeight(catalog.CourseOGE, tt.item); got != tt.want {
			t.Errorf("ItemWeight(OGE, %d) = %v, want %v", tt.item, got, tt.want)
		}
	}
}

func TestItemWeightEGEBasic(t *testing.T) {
	tests := []struct {
		item int
		want float64
	}{
		{0, 0},
		{1, 1},
		{21, 1},
		{22, 0},
	}
	for _, tt := range tests {
		if got := ItemWeight(catalog.CourseEGEBasic, tt.item); got != tt.want {
			t.Errorf("ItemWeight(EGE basic, %d) = %v, want %v", tt.item, got, tt.want)
		}
	}
}

func TestItemWeightEGEAdvanced(t *testing.T) {
	tests := []struct {
		item int
		want float64
	}{
		{1, 1},
		{12, 1},
		{13, 2},
		{14, 3},
		{15, 2},
		{16, 2},
		{17, 3},
		{18, 4},
		{19, 4},
		{20, 0},
	}
	for _, tt := range tests {
		if got := ItemWeight(catalog.CourseEGEAdvanced, tt.item); got != tt.want {
			t.Errorf("ItemWeight(EGE advanced, %d) = %v, want %v", tt.item, got, tt.want)
		}
	}

	var total float64
	for n := 1; n <= 19; n++ {
		total += ItemWeight(catalog.CourseEGEAdvanced, n)
	}
	if total != 32 {
		t.Errorf("EGE advanced total raw points = %v, want 32", total)
	}
}

func TestItemWeightUnknownCourse(t *testing.T) {
	if got := ItemWeight("99", 1); got != 0 {
		t.Errorf("ItemWeight(99, 1) = %v, want 0", got)
	}
}

func TestEstimateNoFipiEntries(t *testing.T) {
	if got := EstimateExpectedScore(nil, catalog.CourseOGE); got != nil {
		t.Errorf("empty entries should give nil, got %v", *got)
	}

	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Натуральные и целые числа", 0.8),
		models.SkillEntry(4, 0.5),
	}
	if got := EstimateExpectedScore(entries, catalog.CourseOGE); got != nil {
		t.Errorf("entries without FIPI tasks should give nil, got %v", *got)
	}
}

func TestEstimateBlendsNaiveAndCalibrated(t *testing.T) {
	entries := []models.ProbabilityEntry{
		models.FipiTaskEntry(1, 0.9),
		models.FipiTaskEntry(6, 0.1),
		models.FipiTaskEntry(7, 0.5),
		models.FipiTaskEntry(8, 0.0),
	}

	got := EstimateExpectedScore(entries, catalog.CourseOGE)
	if got == nil {
		t.Fatal("expected a score, got nil")
	}

	// Weights for items 1, 6, 7, 8 are 5, 1, 1, 1.
	naive := 0.9*5 + 0.1*1 + 0.5*1 + 0.0*1
	calibrated := calibrate(0.9)*5 + calibrate(0.1)*1 + calibrate(0.5)*1 + calibrate(0.0)*1
	want := math.Round((0.3*naive+0.7*calibrated)*100) / 100

	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", *got, want)
	}
	if *got <= 0 || *got > 8 {
		t.Errorf("score %v outside the reachable range (0, 8]", *got)
	}
}

func TestEstimateBoundedByTotalWeight(t *testing.T) {
	var perfect, hopeless []models.ProbabilityEntry
	for n := 1; n <= 21; n++ {
		perfect = append(perfect, models.FipiTaskEntry(n, 1.0))
		hopeless = append(hopeless, models.FipiTaskEntry(n, 0.0))
	}

	hi := EstimateExpectedScore(perfect, catalog.CourseEGEBasic)
	lo := EstimateExpectedScore(hopeless, catalog.CourseEGEBasic)
	if hi == nil || lo == nil {
		t.Fatal("expected scores, got nil")
	}
	if *hi > 21 {
		t.Errorf("all-mastered score %v exceeds the 21 point maximum", *hi)
	}
	if *lo < 0 {
		t.Errorf("all-failed score %v is negative", *lo)
	}
	if *lo >= *hi {
		t.Errorf("all-failed score %v should be below all-mastered %v", *lo, *hi)
	}
}

func TestEstimateRoundsToTwoDecimals(t *testing.T) {
	entries := []models.ProbabilityEntry{
		models.FipiTaskEntry(1, 0.337),
		models.FipiTaskEntry(7, 0.613),
	}
	got := EstimateExpectedScore(entries, catalog.CourseOGE)
	if got == nil {
		t.Fatal("expected a score, got nil")
	}
	cents := *got * 100
	if math.Abs(cents-math.Round(cents)) > 1e-9 {
		t.Errorf("score %v not rounded to two decimals", *got)
	}
}

func TestEstimateAdvancedIsRescaled(t *testing.T) {
	var entries []models.ProbabilityEntry
	for n := 1; n <= 19; n++ {
		entries = append(entries, models.FipiTaskEntry(n, 1.0))
	}
	got := EstimateExpectedScore(entries, catalog.CourseEGEAdvanced)
	if got == nil {
		t.Fatal("expected a score, got nil")
	}
	if *got < 90 || *got > 100 {
		t.Errorf("near-perfect advanced score %v should land in the 90-100 band", *got)
	}
}

func TestRescaleAdvancedClamps(t *testing.T) {
	if got := RescaleAdvanced(-3); got != 0 {
		t.Errorf("RescaleAdvanced(-3) = %v, want 0", got)
	}
	if got := RescaleAdvanced(40); got != 100 {
		t.Errorf("RescaleAdvanced(40) = %v, want 100", got)
	}
}

func TestRescaleAdvancedControlPoints(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0, 0},
		{5, 23},
		{12, 62},
		{32, 100},
	}
	for _, tt := range tests {
		if got := RescaleAdvanced(tt.raw); got != tt.want {
			t.Errorf("RescaleAdvanced(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	// Midpoint between 7→33 and 8→39.
	if got := RescaleAdvanced(7.5); math.Abs(got-36) > 1e-9 {
		t.Errorf("RescaleAdvanced(7.5) = %v, want 36", got)
	}
}

func TestRescaleAdvancedMonotonic(t *testing.T) {
	prev := RescaleAdvanced(0)
	for raw := 0.25; raw <= 32; raw += 0.25 {
		cur := RescaleAdvanced(raw)
		if cur < prev {
			t.Fatalf("RescaleAdvanced decreased at raw=%v: %v < %v", raw, cur, prev)
		}
		prev = cur
	}
}

func TestCalibrateSteepensMidrange(t *testing.T) {
	if calibrate(0.2) >= calibrate(0.6) || calibrate(0.6) >= calibrate(0.95) {
		t.Error("calibrate should be strictly increasing")
	}
	// The floor keeps even a zero-probability item above γ.
	if got := calibrate(0); got <= calibGamma-1e-9 || got >= 0.5 {
		t.Errorf("calibrate(0) = %v, want a value just above %v", got, calibGamma)
	}
}
