package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Password     string     `json:"-"`
	CourseID     string     `json:"course_id"`
	GoalScore    *int       `json:"goal_score,omitempty"`
	HoursPerWeek *float64   `json:"hours_per_week,omitempty"`
	ExamDate     *time.Time `json:"exam_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName returns "FirstName L." format (first name + last initial).
func (u User) DisplayName() string {
	parts := splitName(u.Name)
	if len(parts) <= 1 {
		return u.Name
	}
	lastName := parts[len(parts)-1]
	if len(lastName) > 0 {
		return parts[0] + " " + string([]rune(lastName)[0]) + "."
	}
	return parts[0]
}

// DaysToExam returns the number of whole days until the exam, or nil when no
// exam date is set or the date has passed.
func (u User) DaysToExam(now time.Time) *int {
	if u.ExamDate == nil {
		return nil
	}
	days := int(u.ExamDate.Sub(now).Hours() / 24)
	if days < 0 {
		return nil
	}
	return &days
}

func splitName(name string) []string {
	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(name), " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	CourseID string `json:"course_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type StudyProfileRequest struct {
	CourseID     *string  `json:"course_id,omitempty"`
	GoalScore    *int     `json:"goal_score,omitempty"`
	HoursPerWeek *float64 `json:"hours_per_week,omitempty"`
	ExamDate     *string  `json:"exam_date,omitempty"` // "2006-01-02"
}

type ErrorResponse struct {
	Error string `json:"error"`
}
