package narrative

import (
	"database/sql"
	"fmt"
	"time"
)

// Narrative is one persisted piece of free-text guidance. Rows are
// append-only; the newest one doubles as the differ's reference timestamp.
type Narrative struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(userID int64, courseID, text string) error {
	_, err := s.db.Exec(
		`INSERT INTO plan_narratives (user_id, course_id, narrative)
		 VALUES ($1, $2, $3)`,
		userID, courseID, text,
	)
	if err != nil {
		return fmt.Errorf("insert narrative: %w", err)
	}
	return nil
}

// Latest returns the newest narrative for a pair, or nil when none exists.
func (s *Store) Latest(userID int64, courseID string) (*Narrative, error) {
	var n Narrative
	err := s.db.QueryRow(
		`SELECT id, user_id, course_id, narrative, created_at
		 FROM plan_narratives
		 WHERE user_id = $1 AND course_id = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, courseID,
	).Scan(&n.ID, &n.UserID, &n.CourseID, &n.Text, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest narrative: %w", err)
	}
	return &n, nil
}
