package mastery

import (
	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
)

const (
	// topicStartedThreshold separates "not started" topics from topics the
	// student has begun to master.
	topicStartedThreshold = 0.2

	// maxStudyTopics caps how many new topics a plan pushes at once.
	maxStudyTopics = 2

	// highImportanceCutoff selects the skills worth naming for a fresh topic.
	highImportanceCutoff = 2
)

// reinforceThresholds maps a skill's importance tier to the mastery level it
// must reach before it stops appearing in the reinforcement list.
var reinforceThresholds = map[int]float64{
	0: 0.7,
	1: 0.6,
	2: 0.5,
	3: 0.2,
}

// BuildStudyPlan selects what to study next from the mastery table and the
// course catalog. The four lists are independent; a skill may appear in more
// than one.
func BuildStudyPlan(cat *catalog.Catalog, entries []models.ProbabilityEntry) models.StudyPlan {
	topicMastery := make(map[string]float64)
	skillMastery := make(map[int]float64)
	for _, e := range entries {
		switch e.Kind {
		case models.KindTopic:
			topicMastery[e.Topic] = e.Prob
		case models.KindSkill:
			skillMastery[e.Skill] = e.Prob
		}
	}

	plan := models.StudyPlan{
		TopicsToStudy:        []string{},
		HighImportanceSkills: []int{},
		FipiTasksForDrilling: []int{},
		SkillsToReinforce:    []int{},
	}

	// Topics to study: the first under-threshold topics in curriculum order,
	// capped — not the lowest-probability ones.
	for _, topic := range cat.Topics {
		if len(plan.TopicsToStudy) >= maxStudyTopics {
			break
		}
		if topicMastery[topic.Key()] < topicStartedThreshold {
			plan.TopicsToStudy = append(plan.TopicsToStudy, topic.Code)
		}
	}

	// High-importance skills of the selected topics.
	for _, code := range plan.TopicsToStudy {
		topic, ok := cat.TopicByCode(code)
		if !ok {
			continue
		}
		for _, s := range topic.Skills {
			if s.Importance <= highImportanceCutoff {
				plan.HighImportanceSkills = append(plan.HighImportanceSkills, s.Number)
			}
		}
	}

	// FIPI tasks ready for drilling: a strict majority of the task's
	// prerequisite topics must be past the started threshold.
	for _, task := range cat.FipiTasks() {
		codes := cat.FipiTaskTopics[task]
		mastered := 0
		for _, code := range codes {
			if topicMastery[cat.KeyFor(code)] >= topicStartedThreshold {
				mastered++
			}
		}
		if mastered*2 > len(codes) {
			plan.FipiTasksForDrilling = append(plan.FipiTasksForDrilling, task)
		}
	}

	// Skills to reinforce: within started topics, skills below the mastery
	// bar for their importance tier.
	for _, topic := range cat.Topics {
		if topicMastery[topic.Key()] < topicStartedThreshold {
			continue
		}
		for _, s := range topic.Skills {
			threshold, ok := reinforceThresholds[s.Importance]
			if !ok {
				continue
			}
			if skillMastery[s.Number] < threshold {
				plan.SkillsToReinforce = append(plan.SkillsToReinforce, s.Number)
			}
		}
	}

	return plan
}

// BuildTopicSummary produces the per-topic rollup persisted alongside the
// raw probability table.
func BuildTopicSummary(cat *catalog.Catalog, entries []models.ProbabilityEntry) []models.TopicSummary {
	topicMastery := make(map[string]float64)
	for _, e := range entries {
		if e.Kind == models.KindTopic {
			topicMastery[e.Topic] = e.Prob
		}
	}

	summary := make([]models.TopicSummary, 0, len(cat.Topics))
	for _, topic := range cat.Topics {
		prob := topicMastery[topic.Key()]
		status := models.StatusNotStarted
		switch {
		case prob >= 0.7:
			status = models.StatusStrong
		case prob >= topicStartedThreshold:
			status = models.StatusInProgress
		}
		summary = append(summary, models.TopicSummary{
			Topic:  topic.Code,
			Prob:   prob,
			Status: status,
		})
	}
	return summary
}
