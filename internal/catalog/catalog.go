// Package catalog holds the static per-course curriculum configuration:
// ordered topic lists, skill membership with importance tiers, and the
// FIPI-task → prerequisite-topic mapping. The data is fixed at compile time
// and validated once per load.
package catalog

import (
	"fmt"
	"sort"
)

// Course identifiers as used across the platform.
const (
	CourseOGE         = "1" // ОГЭ математика
	CourseEGEBasic    = "2" // ЕГЭ база
	CourseEGEAdvanced = "3" // ЕГЭ профиль
)

// SkillRef ties a numbered skill to a topic. Importance 0 is the most
// important tier; higher numbers matter less.
type SkillRef struct {
	Number     int
	Importance int
}

// TopicEntry is one topic in curriculum order. Ordering is significant: the
// study-plan selector picks the first under-mastered topics, not the lowest.
type TopicEntry struct {
	Code   string
	Name   string
	Skills []SkillRef
}

// Key returns the mastery-map key for the topic, "<code> <name>".
func (t TopicEntry) Key() string {
	return t.Code + " " + t.Name
}

type Catalog struct {
	CourseID       string
	Topics         []TopicEntry
	FipiTaskTopics map[int][]string

	byCode   map[string]int
	skillSet map[int]bool
}

// Load returns the immutable catalog for a course id.
func Load(courseID string) (*Catalog, error) {
	switch courseID {
	case CourseOGE:
		return New(courseID, ogeTopics, ogeFipiTaskTopics)
	case CourseEGEBasic:
		return New(courseID, egeBasicTopics, egeBasicFipiTaskTopics)
	case CourseEGEAdvanced:
		return New(courseID, egeAdvancedTopics, egeAdvancedFipiTaskTopics)
	}
	return nil, fmt.Errorf("unknown course id %q", courseID)
}

// New builds and validates a catalog from explicit data.
func New(courseID string, topics []TopicEntry, fipiTaskTopics map[int][]string) (*Catalog, error) {
	c := &Catalog{CourseID: courseID, Topics: topics, FipiTaskTopics: fipiTaskTopics}

	c.byCode = make(map[string]int, len(c.Topics))
	c.skillSet = make(map[int]bool)
	for i, t := range c.Topics {
		if _, dup := c.byCode[t.Code]; dup {
			return nil, fmt.Errorf("course %s: duplicate topic code %q", courseID, t.Code)
		}
		c.byCode[t.Code] = i
		for _, s := range t.Skills {
			c.skillSet[s.Number] = true
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks that every topic code referenced by the FIPI-task mapping
// exists in the ordered topic list.
func (c *Catalog) validate() error {
	for task, codes := range c.FipiTaskTopics {
		if len(codes) == 0 {
			return fmt.Errorf("course %s: FIPI task %d has no prerequisite topics", c.CourseID, task)
		}
		for _, code := range codes {
			if _, ok := c.byCode[code]; !ok {
				return fmt.Errorf("course %s: FIPI task %d references unknown topic %q", c.CourseID, task, code)
			}
		}
	}
	return nil
}

// TopicByCode looks up a topic by its curriculum code.
func (c *Catalog) TopicByCode(code string) (TopicEntry, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return TopicEntry{}, false
	}
	return c.Topics[i], true
}

// KeyFor returns the "<code> <name>" mastery key for a topic code, or ""
// when the code is not in the catalog.
func (c *Catalog) KeyFor(code string) string {
	t, ok := c.TopicByCode(code)
	if !ok {
		return ""
	}
	return t.Key()
}

// HasSkill reports whether a skill number belongs to any topic of the course.
func (c *Catalog) HasSkill(number int) bool {
	return c.skillSet[number]
}

// FipiTasks returns the task numbers of the course in ascending order.
func (c *Catalog) FipiTasks() []int {
	tasks := make([]int, 0, len(c.FipiTaskTopics))
	for n := range c.FipiTaskTopics {
		tasks = append(tasks, n)
	}
	sort.Ints(tasks)
	return tasks
}
