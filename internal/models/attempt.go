package models

import "time"

// AttemptEvent is one student action on one question. Rows are append-only:
// the pipeline never updates or deletes them.
type AttemptEvent struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	CourseID        string    `json:"course_id"`
	QuestionID      string    `json:"question_id"`
	IsCorrect       *bool     `json:"is_correct"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecordAttemptRequest struct {
	CourseID        string  `json:"course_id"`
	QuestionID      string  `json:"question_id"`
	TopicCode       string  `json:"topic_code"`
	SkillNumbers    []int   `json:"skill_numbers,omitempty"`
	FipiTask        *int    `json:"fipi_task,omitempty"`
	IsCorrect       *bool   `json:"is_correct"`
	DurationSeconds float64 `json:"duration_seconds"`
}
