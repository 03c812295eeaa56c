package mastery

import (
	"testing"
	"time"
)

func TestShouldRecompute(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name         string
		masteryTime  *time.Time
		snapshotTime *time.Time
		want         bool
	}{
		{"no mastery data", nil, nil, false},
		{"no mastery data but old snapshot", nil, ago(2 * time.Hour), false},
		{"first snapshot for the pair", ago(5 * time.Minute), nil, true},
		{"new evidence after cooldown", ago(10 * time.Minute), ago(45 * time.Minute), true},
		{"new evidence inside cooldown", ago(5 * time.Minute), ago(10 * time.Minute), false},
		{"cooldown passed, no new evidence", ago(3 * time.Hour), ago(2 * time.Hour), false},
		{"mastery exactly at snapshot time", ago(time.Hour), ago(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldRecompute(tt.masteryTime, tt.snapshotTime, now, DefaultSnapshotCooldown)
			if got != tt.want {
				t.Errorf("ShouldRecompute = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRecomputeCustomCooldown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mastery := now.Add(-time.Minute)
	snapshot := now.Add(-10 * time.Minute)

	if ShouldRecompute(&mastery, &snapshot, now, 30*time.Minute) {
		t.Error("10 minutes since snapshot should fail the default 30m cooldown")
	}
	if !ShouldRecompute(&mastery, &snapshot, now, 5*time.Minute) {
		t.Error("10 minutes since snapshot should pass a 5m cooldown")
	}
}
