package mastery

import (
	"math"
	"testing"

	"github.com/mathprep/backend/internal/models"
)

func snapshotWith(entries ...models.ProbabilityEntry) *models.MasterySnapshot {
	return &models.MasterySnapshot{RawData: entries}
}

func TestDiffNilWhenEitherMissing(t *testing.T) {
	s := snapshotWith(models.SkillEntry(1, 0.5))

	if got := DiffSnapshots(nil, s); got != nil {
		t.Errorf("DiffSnapshots(nil, s) = %v, want nil", got)
	}
	if got := DiffSnapshots(s, nil); got != nil {
		t.Errorf("DiffSnapshots(s, nil) = %v, want nil", got)
	}
	if got := DiffSnapshots(nil, nil); got != nil {
		t.Errorf("DiffSnapshots(nil, nil) = %v, want nil", got)
	}
}

func TestDiffDeltasAndSortOrder(t *testing.T) {
	previous := snapshotWith(
		models.SkillEntry(1, 0.20),
		models.SkillEntry(2, 0.50),
		models.FipiTaskEntry(7, 0.40),
	)
	recent := snapshotWith(
		models.SkillEntry(1, 0.90), // +0.70
		models.SkillEntry(2, 0.45), // -0.05
		models.FipiTaskEntry(7, 0.55), // +0.15
		models.TopicEntry("1.1 Числа", 0.30), // new, +0.30
	)

	diff := DiffSnapshots(recent, previous)
	if len(diff) != 4 {
		t.Fatalf("diff length = %d, want 4", len(diff))
	}

	wantProbs := []float64{0.70, 0.30, 0.15, -0.05}
	for i, want := range wantProbs {
		if math.Abs(diff[i].Prob-want) > 1e-9 {
			t.Errorf("diff[%d].Prob = %v, want %v", i, diff[i].Prob, want)
		}
	}
	if diff[0].Kind != models.KindSkill || diff[0].Skill != 1 {
		t.Errorf("largest delta should be skill 1, got %+v", diff[0])
	}
}

func TestDiffDisappearedEntryDropsToZero(t *testing.T) {
	previous := snapshotWith(models.FipiTaskEntry(3, 0.8))
	recent := snapshotWith(models.FipiTaskEntry(4, 0.1))

	diff := DiffSnapshots(recent, previous)
	if len(diff) != 2 {
		t.Fatalf("diff length = %d, want 2", len(diff))
	}

	// Task 3 vanished: reported as a drop by its previous probability.
	if diff[0].FipiTask != 3 || math.Abs(diff[0].Prob+0.8) > 1e-9 {
		t.Errorf("disappeared entry = %+v, want task 3 with delta -0.8", diff[0])
	}
	if diff[1].FipiTask != 4 || math.Abs(diff[1].Prob-0.1) > 1e-9 {
		t.Errorf("new entry = %+v, want task 4 with delta 0.1", diff[1])
	}
}

func TestDiffDistinguishesKindsWithEqualValues(t *testing.T) {
	// A topic named "7" must not match FIPI task 7.
	previous := snapshotWith(models.FipiTaskEntry(7, 0.9))
	recent := snapshotWith(models.TopicEntry("7", 0.9))

	diff := DiffSnapshots(recent, previous)
	if len(diff) != 2 {
		t.Fatalf("diff length = %d, want 2: kinds must not collide", len(diff))
	}
}

func TestDiffTruncatedToTopThirty(t *testing.T) {
	var prev, cur []models.ProbabilityEntry
	for i := 0; i < 40; i++ {
		prev = append(prev, models.SkillEntry(i, 0.0))
		// Deltas 0.40, 0.39, ... so the ordering is deterministic.
		cur = append(cur, models.SkillEntry(i, float64(40-i)/100))
	}

	diff := DiffSnapshots(snapshotWith(cur...), snapshotWith(prev...))
	if len(diff) != maxDiffEntries {
		t.Fatalf("diff length = %d, want %d", len(diff), maxDiffEntries)
	}
	for i, e := range diff {
		if e.Skill != i {
			t.Fatalf("diff[%d] = skill %d, want skill %d", i, e.Skill, i)
		}
	}
}

func TestDiffKeysAreStable(t *testing.T) {
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.5),
		models.SkillEntry(12, 0.5),
		models.FipiTaskEntry(12, 0.5),
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		k := e.Key()
		if seen[k] {
			t.Fatalf("duplicate identity key %q", k)
		}
		seen[k] = true
	}
	// Self-diff is all zeros.
	diff := DiffSnapshots(snapshotWith(entries...), snapshotWith(entries...))
	for _, e := range diff {
		if e.Prob != 0 {
			t.Errorf("self-diff entry %s has delta %v, want 0", e.Key(), e.Prob)
		}
	}
}
