package mastery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mathprep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Attempt Events ──────────────────────────────────────

func (s *Store) InsertAttempt(userID int64, req models.RecordAttemptRequest) (*models.AttemptEvent, error) {
	var ev models.AttemptEvent
	err := s.db.QueryRow(
		`INSERT INTO attempt_events (user_id, course_id, question_id, is_correct, duration_seconds)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, course_id, question_id, is_correct, duration_seconds, created_at`,
		userID, req.CourseID, req.QuestionID, req.IsCorrect, req.DurationSeconds,
	).Scan(&ev.ID, &ev.UserID, &ev.CourseID, &ev.QuestionID, &ev.IsCorrect, &ev.DurationSeconds, &ev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return &ev, nil
}

// ── Mastery States ──────────────────────────────────────

// stateRef addresses one mastery state row. Exactly one of topicKey or
// refNumber is meaningful, selected by kind.
type stateRef struct {
	kind     models.EntryKind
	topicKey string
	refNum   int
}

func (s *Store) GetOrCreateState(userID int64, courseID string, ref stateRef) (prob float64, attempts int, err error) {
	_, err = s.db.Exec(
		`INSERT INTO mastery_states (user_id, course_id, kind, topic_key, ref_number)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, course_id, kind, topic_key, ref_number) DO NOTHING`,
		userID, courseID, ref.kind, ref.topicKey, ref.refNum,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert mastery state: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT prob, attempts FROM mastery_states
		 WHERE user_id = $1 AND course_id = $2 AND kind = $3 AND topic_key = $4 AND ref_number = $5`,
		userID, courseID, ref.kind, ref.topicKey, ref.refNum,
	).Scan(&prob, &attempts)
	if err != nil {
		return 0, 0, fmt.Errorf("get mastery state: %w", err)
	}
	return prob, attempts, nil
}

func (s *Store) UpdateState(userID int64, courseID string, ref stateRef, newProb float64, correct bool) error {
	correctIncrement := 0
	if correct {
		correctIncrement = 1
	}
	_, err := s.db.Exec(
		`UPDATE mastery_states
		 SET prob = $1,
		     attempts = attempts + 1,
		     correct = correct + $2,
		     last_updated = NOW()
		 WHERE user_id = $3 AND course_id = $4 AND kind = $5 AND topic_key = $6 AND ref_number = $7`,
		newProb, correctIncrement, userID, courseID, ref.kind, ref.topicKey, ref.refNum,
	)
	return err
}

// GetProbabilities returns the flat probability table for a pair. FIPI-task
// entries come out ordered by task number — the estimator relies on that.
func (s *Store) GetProbabilities(userID int64, courseID string) ([]models.ProbabilityEntry, error) {
	rows, err := s.db.Query(
		`SELECT kind, topic_key, ref_number, prob
		 FROM mastery_states
		 WHERE user_id = $1 AND course_id = $2
		 ORDER BY CASE kind WHEN 'topic' THEN 0 WHEN 'skill' THEN 1 ELSE 2 END,
		          topic_key, ref_number`,
		userID, courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("get probabilities: %w", err)
	}
	defer rows.Close()

	var entries []models.ProbabilityEntry
	for rows.Next() {
		var kind string
		var topicKey string
		var refNum int
		var prob float64
		if err := rows.Scan(&kind, &topicKey, &refNum, &prob); err != nil {
			return nil, fmt.Errorf("scan mastery state: %w", err)
		}
		switch models.EntryKind(kind) {
		case models.KindTopic:
			entries = append(entries, models.TopicEntry(topicKey, prob))
		case models.KindSkill:
			entries = append(entries, models.SkillEntry(refNum, prob))
		case models.KindFipiTask:
			entries = append(entries, models.FipiTaskEntry(refNum, prob))
		}
	}
	return entries, rows.Err()
}

// LatestMasteryUpdate returns the newest state change for a pair, or nil
// when the pair has no mastery data.
func (s *Store) LatestMasteryUpdate(userID int64, courseID string) (*time.Time, error) {
	var t sql.NullTime
	err := s.db.QueryRow(
		`SELECT MAX(last_updated) FROM mastery_states WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&t)
	if err != nil {
		return nil, fmt.Errorf("latest mastery update: %w", err)
	}
	if !t.Valid {
		return nil, nil
	}
	return &t.Time, nil
}

// ── Activity Stats ──────────────────────────────────────

func (s *Store) GetActivityStats(userID int64, courseID string) (models.ActivityStats, error) {
	var stats models.ActivityStats
	var correct int
	var seconds float64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE is_correct IS NOT NULL),
		        COUNT(*) FILTER (WHERE is_correct = TRUE),
		        COALESCE(SUM(duration_seconds), 0)
		 FROM attempt_events
		 WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&stats.TotalSolved, &correct, &seconds)
	if err != nil {
		return stats, fmt.Errorf("activity stats: %w", err)
	}

	if stats.TotalSolved > 0 {
		stats.PctCorrect = 100 * float64(correct) / float64(stats.TotalSolved)
	}
	stats.HoursSpent = seconds / 3600

	streak, err := s.currentStreakDays(userID, courseID)
	if err != nil {
		return stats, err
	}
	stats.CurrentStreakDays = streak

	return stats, nil
}

// currentStreakDays counts consecutive active days ending today or
// yesterday. An untouched today does not break a streak that ran through
// yesterday.
func (s *Store) currentStreakDays(userID int64, courseID string) (int, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT DATE(created_at AT TIME ZONE 'UTC') AS day
		 FROM attempt_events
		 WHERE user_id = $1 AND course_id = $2
		 ORDER BY day DESC
		 LIMIT 366`,
		userID, courseID,
	)
	if err != nil {
		return 0, fmt.Errorf("streak days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return 0, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	expected := today
	if !days[0].Equal(today) {
		expected = today.AddDate(0, 0, -1)
		if !days[0].Equal(expected) {
			return 0, nil
		}
	}

	streak := 0
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// ── Snapshots ───────────────────────────────────────────

func (s *Store) InsertSnapshot(ctx context.Context, snap *models.MasterySnapshot) error {
	rawData, err := json.Marshal(snap.RawData)
	if err != nil {
		return fmt.Errorf("marshal raw data: %w", err)
	}
	summary, err := json.Marshal(snap.ComputedSummary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	stats, err := json.Marshal(snap.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO mastery_snapshots (user_id, course_id, run_timestamp, raw_data, computed_summary, stats, expected_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		snap.UserID, snap.CourseID, snap.RunTimestamp, rawData, summary, stats, snap.ExpectedScore,
	).Scan(&snap.ID)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot for a pair, optionally
// restricted to snapshots taken strictly before a reference timestamp.
// Returns nil (not an error) when no snapshot qualifies.
func (s *Store) LatestSnapshot(userID int64, courseID string, before *time.Time) (*models.MasterySnapshot, error) {
	query := `SELECT id, user_id, course_id, run_timestamp, raw_data, computed_summary, stats, expected_score
	          FROM mastery_snapshots
	          WHERE user_id = $1 AND course_id = $2`
	args := []interface{}{userID, courseID}
	if before != nil {
		query += ` AND run_timestamp < $3`
		args = append(args, *before)
	}
	query += ` ORDER BY run_timestamp DESC LIMIT 1`

	var snap models.MasterySnapshot
	var rawData, summary, stats []byte
	err := s.db.QueryRow(query, args...).Scan(
		&snap.ID, &snap.UserID, &snap.CourseID, &snap.RunTimestamp,
		&rawData, &summary, &stats, &snap.ExpectedScore,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	if err := json.Unmarshal(rawData, &snap.RawData); err != nil {
		return nil, fmt.Errorf("unmarshal raw data: %w", err)
	}
	if err := json.Unmarshal(summary, &snap.ComputedSummary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	if err := json.Unmarshal(stats, &snap.Stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return &snap, nil
}

// ── Sweep Support ───────────────────────────────────────

type Pair struct {
	UserID   int64
	CourseID string
}

// ListActivePairs returns every (user, course) pair with mastery data,
// optionally filtered.
func (s *Store) ListActivePairs(userID *int64, courseID *string) ([]Pair, error) {
	query := `SELECT DISTINCT user_id, course_id FROM mastery_states`
	var clauses []string
	var args []interface{}
	if userID != nil {
		args = append(args, *userID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if courseID != nil {
		args = append(args, *courseID)
		clauses = append(clauses, fmt.Sprintf("course_id = $%d", len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY user_id, course_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active pairs: %w", err)
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.UserID, &p.CourseID); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// GetStudyUser loads the user row with study parameters for prompt building.
func (s *Store) GetStudyUser(userID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, email, name, course_id, goal_score, hours_per_week, exam_date, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.CourseID, &u.GoalScore, &u.HoursPerWeek, &u.ExamDate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get study user: %w", err)
	}
	return &u, nil
}
