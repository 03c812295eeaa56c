package mastery

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
	"github.com/mathprep/backend/internal/narrative"
)

type Service struct {
	store      *Store
	progress   ProgressCalculator
	narrator   *narrative.Generator
	narratives *narrative.Store
	cooldown   time.Duration
	pairDelay  time.Duration
}

func NewService(store *Store, narrator *narrative.Generator, narratives *narrative.Store) *Service {
	cooldown := DefaultSnapshotCooldown
	if v := os.Getenv("SNAPSHOT_COOLDOWN_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cooldown = time.Duration(n) * time.Minute
		}
	}

	// Inter-pair delay rate-limits the narrative collaborator during sweeps.
	pairDelay := 500 * time.Millisecond
	if v := os.Getenv("SWEEP_PAIR_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			pairDelay = time.Duration(n) * time.Millisecond
		}
	}

	log.Printf("[mastery] cooldown=%v pairDelay=%v", cooldown, pairDelay)

	return &Service{
		store:      store,
		progress:   &storeProgress{store: store},
		narrator:   narrator,
		narratives: narratives,
		cooldown:   cooldown,
		pairDelay:  pairDelay,
	}
}

// storeProgress is the default ProgressCalculator: it reads the
// incrementally-maintained mastery state table.
type storeProgress struct {
	store *Store
}

func (p *storeProgress) Compute(ctx context.Context, userID int64, courseID string) ([]models.ProbabilityEntry, error) {
	return p.store.GetProbabilities(userID, courseID)
}

// ── Attempt Recording ───────────────────────────────────

// RecordAttempt appends the attempt event and moves the mastery estimates
// the question touches. Ungraded attempts (is_correct null) are stored but
// never move mastery. Scopes the catalog does not know are dropped with a
// log line, not an error.
func (s *Service) RecordAttempt(userID int64, req models.RecordAttemptRequest) (*models.AttemptEvent, error) {
	cat, err := catalog.Load(req.CourseID)
	if err != nil {
		return nil, err
	}

	ev, err := s.store.InsertAttempt(userID, req)
	if err != nil {
		return nil, err
	}

	if req.IsCorrect == nil {
		return ev, nil
	}
	correct := *req.IsCorrect

	var refs []stateRef
	if key := cat.KeyFor(req.TopicCode); key != "" {
		refs = append(refs, stateRef{kind: models.KindTopic, topicKey: key})
	} else if req.TopicCode != "" {
		log.Printf("[mastery] dropping update for unknown topic %q (course %s)", req.TopicCode, req.CourseID)
	}
	for _, n := range req.SkillNumbers {
		if cat.HasSkill(n) {
			refs = append(refs, stateRef{kind: models.KindSkill, refNum: n})
		} else {
			log.Printf("[mastery] dropping update for unknown skill %d (course %s)", n, req.CourseID)
		}
	}
	if req.FipiTask != nil {
		if _, ok := cat.FipiTaskTopics[*req.FipiTask]; ok {
			refs = append(refs, stateRef{kind: models.KindFipiTask, refNum: *req.FipiTask})
		} else {
			log.Printf("[mastery] dropping update for unknown FIPI task %d (course %s)", *req.FipiTask, req.CourseID)
		}
	}

	for _, ref := range refs {
		prob, attempts, err := s.store.GetOrCreateState(userID, req.CourseID, ref)
		if err != nil {
			return nil, err
		}
		newProb := UpdatedProbability(prob, correct, attempts)
		if err := s.store.UpdateState(userID, req.CourseID, ref, newProb, correct); err != nil {
			return nil, err
		}
	}

	return ev, nil
}

// ── On-Demand Reads ─────────────────────────────────────

func (s *Service) CurrentProbabilities(ctx context.Context, userID int64, courseID string) ([]models.ProbabilityEntry, error) {
	return s.progress.Compute(ctx, userID, courseID)
}

func (s *Service) CurrentPlan(ctx context.Context, userID int64, courseID string) (*models.StudyPlan, error) {
	cat, err := catalog.Load(courseID)
	if err != nil {
		return nil, err
	}
	probs, err := s.progress.Compute(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	plan := BuildStudyPlan(cat, probs)
	return &plan, nil
}

func (s *Service) CurrentExpectedScore(ctx context.Context, userID int64, courseID string) (*float64, error) {
	if _, err := catalog.Load(courseID); err != nil {
		return nil, err
	}
	probs, err := s.progress.Compute(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return EstimateExpectedScore(probs, courseID), nil
}

func (s *Service) ActivityStats(userID int64, courseID string) (models.ActivityStats, error) {
	return s.store.GetActivityStats(userID, courseID)
}

// LatestSnapshotWithDiff returns the newest snapshot plus the diff against
// the snapshot preceding the last narrative.
func (s *Service) LatestSnapshotWithDiff(userID int64, courseID string) (*models.SnapshotResponse, error) {
	snap, err := s.store.LatestSnapshot(userID, courseID, nil)
	if err != nil {
		return nil, err
	}
	resp := &models.SnapshotResponse{Snapshot: snap}
	if snap == nil {
		return resp, nil
	}

	prev, err := s.previousSnapshot(userID, courseID)
	if err != nil {
		return nil, err
	}
	resp.Diff = DiffSnapshots(snap, prev)
	return resp, nil
}

func (s *Service) LatestNarrative(userID int64, courseID string) (*narrative.Narrative, error) {
	return s.narratives.Latest(userID, courseID)
}

// previousSnapshot resolves the differ's "previous" side: the most recent
// snapshot taken before the last narrative. No narrative yet means no
// reference point, so no previous snapshot.
func (s *Service) previousSnapshot(userID int64, courseID string) (*models.MasterySnapshot, error) {
	last, err := s.narratives.Latest(userID, courseID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	return s.store.LatestSnapshot(userID, courseID, &last.CreatedAt)
}

// ── Pipeline ────────────────────────────────────────────

// RunPipeline executes one full run for a pair: aggregate, estimate, select,
// persist the snapshot, diff, narrate. Only the snapshot insert is a hard
// failure; every collaborator failure degrades to an empty or nil value and
// the run keeps going.
func (s *Service) RunPipeline(ctx context.Context, userID int64, courseID string) error {
	cat, err := catalog.Load(courseID)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	probs, err := s.progress.Compute(ctx, userID, courseID)
	if err != nil {
		log.Printf("WARN: [mastery] progress calculation failed for user %d course %s: %v — using empty table", userID, courseID, err)
		probs = nil
	}

	stats, err := s.store.GetActivityStats(userID, courseID)
	if err != nil {
		log.Printf("WARN: [mastery] activity stats failed for user %d course %s: %v", userID, courseID, err)
		stats = models.ActivityStats{}
	}

	expectedScore := EstimateExpectedScore(probs, courseID)
	summary := BuildTopicSummary(cat, probs)
	plan := BuildStudyPlan(cat, probs)

	snap := &models.MasterySnapshot{
		UserID:          userID,
		CourseID:        courseID,
		RunTimestamp:    time.Now().UTC(),
		RawData:         probs,
		ComputedSummary: summary,
		Stats:           stats,
		ExpectedScore:   expectedScore,
	}
	if err := s.store.InsertSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("persist snapshot for user %d course %s: %w", userID, courseID, err)
	}

	prev, err := s.previousSnapshot(userID, courseID)
	if err != nil {
		log.Printf("WARN: [mastery] previous snapshot lookup failed for user %d course %s: %v", userID, courseID, err)
		prev = nil
	}
	diff := DiffSnapshots(snap, prev)

	s.generateNarrative(ctx, userID, courseID, plan, diff, stats, expectedScore)
	return nil
}

// generateNarrative is strictly best-effort: the snapshot is already
// persisted, so a narrator failure only costs the text.
func (s *Service) generateNarrative(ctx context.Context, userID int64, courseID string,
	plan models.StudyPlan, diff []models.ProbabilityEntry, stats models.ActivityStats, expectedScore *float64) {

	if s.narrator == nil || s.narratives == nil {
		return
	}

	user, err := s.store.GetStudyUser(userID)
	if err != nil {
		log.Printf("WARN: [mastery] study user lookup failed for user %d: %v", userID, err)
		user = nil
	}

	prior := ""
	if last, err := s.narratives.Latest(userID, courseID); err == nil && last != nil {
		prior = last.Text
	}

	prompt := narrative.BuildPlanPrompt(user, plan, diff, stats, expectedScore, prior, time.Now().UTC())
	text, err := s.narrator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("WARN: [mastery] narrative generation failed for user %d course %s: %v — snapshot kept", userID, courseID, err)
		return
	}

	if err := s.narratives.Insert(userID, courseID, text); err != nil {
		log.Printf("WARN: [mastery] narrative insert failed for user %d course %s: %v", userID, courseID, err)
	}
}

// ── Scheduled Sweep ─────────────────────────────────────

// RunSweep iterates the active pairs, applies the eligibility gate and runs
// the pipeline for each pair that passes. A failing pair never aborts the
// sweep; pairs are spaced by the configured delay.
func (s *Service) RunSweep(ctx context.Context, filter models.SweepRequest) (models.SweepResult, error) {
	var result models.SweepResult

	pairs, err := s.store.ListActivePairs(filter.UserID, filter.CourseID)
	if err != nil {
		return result, fmt.Errorf("list pairs: %w", err)
	}

	now := time.Now().UTC()
	for i, pair := range pairs {
		if i > 0 && s.pairDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.pairDelay):
			}
		}

		result.PairsChecked++

		masteryTime, err := s.store.LatestMasteryUpdate(pair.UserID, pair.CourseID)
		if err != nil {
			log.Printf("WARN: [sweep] mastery time lookup failed for user %d course %s: %v", pair.UserID, pair.CourseID, err)
			result.PairsFailed++
			continue
		}

		var snapshotTime *time.Time
		if snap, err := s.store.LatestSnapshot(pair.UserID, pair.CourseID, nil); err != nil {
			log.Printf("WARN: [sweep] snapshot lookup failed for user %d course %s: %v", pair.UserID, pair.CourseID, err)
			result.PairsFailed++
			continue
		} else if snap != nil {
			snapshotTime = &snap.RunTimestamp
		}

		if !ShouldRecompute(masteryTime, snapshotTime, now, s.cooldown) {
			continue
		}

		result.PairsEligible++
		if err := s.RunPipeline(ctx, pair.UserID, pair.CourseID); err != nil {
			log.Printf("WARN: [sweep] pipeline failed for user %d course %s: %v", pair.UserID, pair.CourseID, err)
			result.PairsFailed++
		}
	}

	return result, nil
}
