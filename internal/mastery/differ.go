package mastery

import (
	"math"
	"sort"

	"github.com/mathprep/backend/internal/models"
)

// maxDiffEntries bounds the diff payload fed into narrative generation.
const maxDiffEntries = 30

// DiffSnapshots computes the per-entry probability deltas between the most
// recent snapshot and the previous one. Entries only present in recent keep
// their probability as the delta; entries that disappeared since previous
// are reported as a drop to zero. The result is sorted by absolute delta
// descending and truncated to the top 30.
//
// Returns nil when either snapshot is missing — expected on first runs.
func DiffSnapshots(recent, previous *models.MasterySnapshot) []models.ProbabilityEntry {
	if recent == nil || previous == nil {
		return nil
	}

	prevByKey := make(map[string]models.ProbabilityEntry, len(previous.RawData))
	for _, e := range previous.RawData {
		prevByKey[e.Key()] = e
	}

	diffs := make([]models.ProbabilityEntry, 0, len(recent.RawData))
	seen := make(map[string]bool, len(recent.RawData))
	for _, e := range recent.RawData {
		d := e
		if prev, ok := prevByKey[e.Key()]; ok {
			d.Prob = e.Prob - prev.Prob
		}
		diffs = append(diffs, d)
		seen[e.Key()] = true
	}

	for _, e := range previous.RawData {
		if seen[e.Key()] {
			continue
		}
		d := e
		d.Prob = -e.Prob
		diffs = append(diffs, d)
	}

	sort.SliceStable(diffs, func(i, j int) bool {
		return math.Abs(diffs[i].Prob) > math.Abs(diffs[j].Prob)
	})

	if len(diffs) > maxDiffEntries {
		diffs = diffs[:maxDiffEntries]
	}
	return diffs
}
