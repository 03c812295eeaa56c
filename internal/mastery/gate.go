package mastery

import "time"

// DefaultSnapshotCooldown is the minimum spacing between snapshot runs for
// one (user, course) pair.
const DefaultSnapshotCooldown = 30 * time.Minute

// ShouldRecompute decides whether a new snapshot run is warranted.
// masteryTime is the most recent raw mastery update, snapshotTime the most
// recent persisted snapshot; either may be nil when no record exists.
//
// A pair is eligible only when there is new evidence since the last snapshot
// AND the cooldown window has elapsed. With no snapshot yet, both conditions
// hold. With no mastery data at all there is nothing to compute.
func ShouldRecompute(masteryTime, snapshotTime *time.Time, now time.Time, cooldown time.Duration) bool {
	if masteryTime == nil {
		return false
	}

	newEvidence := snapshotTime == nil || masteryTime.After(*snapshotTime)
	cooldownOver := snapshotTime == nil || now.After(snapshotTime.Add(cooldown))

	return newEvidence && cooldownOver
}
