package catalog

import "testing"

func TestLoadAllCourses(t *testing.T) {
	for _, courseID := range []string{CourseOGE, CourseEGEBasic, CourseEGEAdvanced} {
		c, err := Load(courseID)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", courseID, err)
		}
		if len(c.Topics) == 0 {
			t.Errorf("course %s has no topics", courseID)
		}
		if len(c.FipiTaskTopics) == 0 {
			t.Errorf("course %s has no FIPI task mapping", courseID)
		}
	}
}

func TestLoadUnknownCourse(t *testing.T) {
	if _, err := Load("99"); err == nil {
		t.Error("Load(\"99\") should fail")
	}
}

func TestNewRejectsUnknownTopicReference(t *testing.T) {
	topics := []TopicEntry{
		{Code: "1.1", Name: "Числа"},
	}
	fipi := map[int][]string{
		1: {"1.1", "9.9"},
	}
	if _, err := New("test", topics, fipi); err == nil {
		t.Error("New should reject FIPI mapping with unknown topic code")
	}
}

func TestNewRejectsDuplicateTopicCode(t *testing.T) {
	topics := []TopicEntry{
		{Code: "1.1", Name: "Числа"},
		{Code: "1.1", Name: "Дроби"},
	}
	fipi := map[int][]string{1: {"1.1"}}
	if _, err := New("test", topics, fipi); err == nil {
		t.Error("New should reject duplicate topic codes")
	}
}

func TestKeyFor(t *testing.T) {
	c, err := Load(CourseOGE)
	if err != nil {
		t.Fatal(err)
	}

	got := c.KeyFor("1.1")
	want := "1.1 Натуральные и целые числа"
	if got != want {
		t.Errorf("KeyFor(1.1) = %q, want %q", got, want)
	}

	if got := c.KeyFor("no_such"); got != "" {
		t.Errorf("KeyFor(no_such) = %q, want empty", got)
	}
}

func TestFipiTasksSorted(t *testing.T) {
	c, err := Load(CourseEGEAdvanced)
	if err != nil {
		t.Fatal(err)
	}
	tasks := c.FipiTasks()
	if len(tasks) != 19 {
		t.Fatalf("course 3 should have 19 FIPI tasks, got %d", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i] <= tasks[i-1] {
			t.Errorf("FipiTasks not ascending at index %d: %v", i, tasks)
		}
	}
}

func TestSkillNumbersUniquePerCourse(t *testing.T) {
	for _, courseID := range []string{CourseOGE, CourseEGEBasic, CourseEGEAdvanced} {
		c, err := Load(courseID)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[int]string)
		for _, topic := range c.Topics {
			for _, s := range topic.Skills {
				if prev, dup := seen[s.Number]; dup {
					t.Errorf("course %s: skill %d appears in both %s and %s", courseID, s.Number, prev, topic.Code)
				}
				seen[s.Number] = topic.Code
			}
		}
	}
}
