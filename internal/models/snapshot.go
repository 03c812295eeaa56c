package models

import "time"

// MasterySnapshot is an immutable point-in-time copy of the probability
// table plus derived summaries. History is append-only; "latest" is always
// resolved by run_timestamp descending.
type MasterySnapshot struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	CourseID        string             `json:"course_id"`
	RunTimestamp    time.Time          `json:"run_timestamp"`
	RawData         []ProbabilityEntry `json:"raw_data"`
	ComputedSummary []TopicSummary     `json:"computed_summary"`
	Stats           ActivityStats      `json:"stats"`
	ExpectedScore   *float64           `json:"expected_score"`
}

// SnapshotDiff is one entry of the change set between the two snapshots
// bracketing the last narrative. Prob holds the signed delta.
type SnapshotDiff = ProbabilityEntry

type SnapshotResponse struct {
	Snapshot *MasterySnapshot   `json:"snapshot"`
	Diff     []ProbabilityEntry `json:"diff,omitempty"`
}

type SweepRequest struct {
	UserID   *int64  `json:"user_id,omitempty"`
	CourseID *string `json:"course_id,omitempty"`
}

type SweepResult struct {
	PairsChecked  int `json:"pairs_checked"`
	PairsEligible int `json:"pairs_eligible"`
	PairsFailed   int `json:"pairs_failed"`
}
