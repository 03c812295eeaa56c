package models

import (
	"encoding/json"
	"fmt"
)

// EntryKind discriminates the three variants of a ProbabilityEntry.
type EntryKind string

const (
	KindTopic    EntryKind = "topic"
	KindSkill    EntryKind = "skill"
	KindFipiTask EntryKind = "fipi_task"
)

// ProbabilityEntry is one mastery estimate. Exactly one identifying field is
// meaningful, selected by Kind: Topic ("<code> <name>") for KindTopic,
// Skill for KindSkill, FipiTask for KindFipiTask.
//
// The wire format is a flat JSON object discriminated by key presence:
//
//	{"topic": "1.1 Числа", "prob": 0.4}
//	{"навык": 12, "prob": 0.4}
//	{"задача ФИПИ": 7, "prob": 0.4}
type ProbabilityEntry struct {
	Kind     EntryKind
	Topic    string
	Skill    int
	FipiTask int
	Prob     float64
}

func TopicEntry(topic string, prob float64) ProbabilityEntry {
	return ProbabilityEntry{Kind: KindTopic, Topic: topic, Prob: prob}
}

func SkillEntry(skill int, prob float64) ProbabilityEntry {
	return ProbabilityEntry{Kind: KindSkill, Skill: skill, Prob: prob}
}

func FipiTaskEntry(task int, prob float64) ProbabilityEntry {
	return ProbabilityEntry{Kind: KindFipiTask, FipiTask: task, Prob: prob}
}

// Key identifies the entry by everything except its probability, so that a
// topic entry and a skill entry never collide when diffing snapshots.
func (e ProbabilityEntry) Key() string {
	switch e.Kind {
	case KindTopic:
		return "topic:" + e.Topic
	case KindSkill:
		return fmt.Sprintf("skill:%d", e.Skill)
	case KindFipiTask:
		return fmt.Sprintf("fipi:%d", e.FipiTask)
	}
	return ""
}

const (
	skillJSONKey = "навык"
	fipiJSONKey  = "задача ФИПИ"
)

func (e ProbabilityEntry) MarshalJSON() ([]byte, error) {
	obj := map[string]interface{}{"prob": e.Prob}
	switch e.Kind {
	case KindTopic:
		obj["topic"] = e.Topic
	case KindSkill:
		obj[skillJSONKey] = e.Skill
	case KindFipiTask:
		obj[fipiJSONKey] = e.FipiTask
	default:
		return nil, fmt.Errorf("probability entry has no kind")
	}
	return json.Marshal(obj)
}

func (e *ProbabilityEntry) UnmarshalJSON(data []byte) error {
	var obj struct {
		Topic    *string `json:"topic"`
		Skill    *int    `json:"навык"`
		FipiTask *int    `json:"задача ФИПИ"`
		Prob     float64 `json:"prob"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Prob = obj.Prob
	switch {
	case obj.Topic != nil:
		e.Kind = KindTopic
		e.Topic = *obj.Topic
	case obj.Skill != nil:
		e.Kind = KindSkill
		e.Skill = *obj.Skill
	case obj.FipiTask != nil:
		e.Kind = KindFipiTask
		e.FipiTask = *obj.FipiTask
	default:
		return fmt.Errorf("probability entry missing identifying key")
	}
	return nil
}

// ActivityStats is derived from attempt events alone, independent of the
// probability model.
type ActivityStats struct {
	TotalSolved       int     `json:"total_solved"`
	PctCorrect        float64 `json:"pct_correct"`
	HoursSpent        float64 `json:"hours_spent"`
	CurrentStreakDays int     `json:"current_streak_days"`
}

// TopicSummary is one row of the computed per-topic rollup persisted with a
// snapshot.
type TopicSummary struct {
	Topic  string  `json:"topic"`
	Prob   float64 `json:"prob"`
	Status string  `json:"status"`
}

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusStrong     = "strong"
)

// StudyPlan is the selector's output, recomputed fresh each run.
type StudyPlan struct {
	TopicsToStudy        []string `json:"topics_to_study"`
	HighImportanceSkills []int    `json:"high_importance_skills"`
	FipiTasksForDrilling []int    `json:"fipi_tasks_for_drilling"`
	SkillsToReinforce    []int    `json:"skills_to_reinforce"`
}
