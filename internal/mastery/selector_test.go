package mastery

import (
	"reflect"
	"testing"

	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	topics := []catalog.TopicEntry{
		{Code: "1.1", Name: "Числа", Skills: []catalog.SkillRef{
			{Number: 1, Importance: 0},
			{Number: 2, Importance: 2},
			{Number: 3, Importance: 4},
		}},
		{Code: "1.2", Name: "Дроби", Skills: []catalog.SkillRef{
			{Number: 4, Importance: 1},
			{Number: 5, Importance: 3},
		}},
		{Code: "2.1", Name: "Уравнения", Skills: []catalog.SkillRef{
			{Number: 6, Importance: 0},
		}},
		{Code: "3.1", Name: "Функции", Skills: []catalog.SkillRef{
			{Number: 7, Importance: 2},
		}},
	}
	fipi := map[int][]string{
		1: {"1.1"},
		2: {"1.1", "1.2", "2.1", "3.1"},
		3: {"1.2", "2.1", "3.1"},
	}
	cat, err := catalog.New("test", topics, fipi)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestTopicsToStudyCurriculumOrder(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.1),
		models.TopicEntry("1.2 Дроби", 0.9),
		models.TopicEntry("2.1 Уравнения", 0.15),
		models.TopicEntry("3.1 Функции", 0.05),
	}

	plan := BuildStudyPlan(cat, entries)

	// The first two under-threshold topics in curriculum order, not the two
	// lowest probabilities.
	want := []string{"1.1", "2.1"}
	if !reflect.DeepEqual(plan.TopicsToStudy, want) {
		t.Errorf("TopicsToStudy = %v, want %v", plan.TopicsToStudy, want)
	}
}

func TestTopicsToStudyTreatsMissingAsZero(t *testing.T) {
	cat := testCatalog(t)

	plan := BuildStudyPlan(cat, nil)

	want := []string{"1.1", "1.2"}
	if !reflect.DeepEqual(plan.TopicsToStudy, want) {
		t.Errorf("TopicsToStudy = %v, want %v", plan.TopicsToStudy, want)
	}
}

func TestHighImportanceSkillsOfSelectedTopics(t *testing.T) {
	cat := testCatalog(t)

	plan := BuildStudyPlan(cat, nil) // selects 1.1 and 1.2

	// Skill 3 (importance 4) and skill 5 (importance 3) are above the cutoff.
	want := []int{1, 2, 4}
	if !reflect.DeepEqual(plan.HighImportanceSkills, want) {
		t.Errorf("HighImportanceSkills = %v, want %v", plan.HighImportanceSkills, want)
	}
}

func TestFipiTasksRequireStrictMajority(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.8),
		models.TopicEntry("1.2 Дроби", 0.5),
		models.TopicEntry("2.1 Уравнения", 0.1),
		models.TopicEntry("3.1 Функции", 0.1),
	}

	plan := BuildStudyPlan(cat, entries)

	// Task 1: 1 of 1 started. Task 2: 2 of 4 is not a strict majority.
	// Task 3: 1 of 3 is not a majority.
	want := []int{1}
	if !reflect.DeepEqual(plan.FipiTasksForDrilling, want) {
		t.Errorf("FipiTasksForDrilling = %v, want %v", plan.FipiTasksForDrilling, want)
	}
}

func TestSkillsToReinforceByImportanceTier(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.5), // started
		models.SkillEntry(1, 0.65),          // importance 0, below 0.7
		models.SkillEntry(2, 0.55),          // importance 2, above 0.5
		models.SkillEntry(3, 0.0),           // importance 4, never reinforced
	}

	plan := BuildStudyPlan(cat, entries)

	want := []int{1}
	if !reflect.DeepEqual(plan.SkillsToReinforce, want) {
		t.Errorf("SkillsToReinforce = %v, want %v", plan.SkillsToReinforce, want)
	}
}

func TestSkillsToReinforceSkipsUnstartedTopics(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.SkillEntry(1, 0.0),
		models.SkillEntry(4, 0.0),
	}

	plan := BuildStudyPlan(cat, entries)

	if len(plan.SkillsToReinforce) != 0 {
		t.Errorf("no topic started, SkillsToReinforce should be empty, got %v", plan.SkillsToReinforce)
	}
}

func TestPlanListsNeverNil(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.9),
		models.TopicEntry("1.2 Дроби", 0.9),
		models.TopicEntry("2.1 Уравнения", 0.9),
		models.TopicEntry("3.1 Функции", 0.9),
		models.SkillEntry(1, 0.9),
		models.SkillEntry(2, 0.9),
		models.SkillEntry(3, 0.9),
		models.SkillEntry(4, 0.9),
		models.SkillEntry(5, 0.9),
		models.SkillEntry(6, 0.9),
		models.SkillEntry(7, 0.9),
	}

	plan := BuildStudyPlan(cat, entries)

	if plan.TopicsToStudy == nil || plan.HighImportanceSkills == nil ||
		plan.FipiTasksForDrilling == nil || plan.SkillsToReinforce == nil {
		t.Error("plan lists must serialize as [], not null")
	}
	if len(plan.TopicsToStudy) != 0 {
		t.Errorf("all topics started, TopicsToStudy should be empty, got %v", plan.TopicsToStudy)
	}
}

func TestBuildTopicSummary(t *testing.T) {
	cat := testCatalog(t)
	entries := []models.ProbabilityEntry{
		models.TopicEntry("1.1 Числа", 0.85),
		models.TopicEntry("1.2 Дроби", 0.4),
	}

	summary := BuildTopicSummary(cat, entries)
	if len(summary) != 4 {
		t.Fatalf("summary should cover all 4 topics, got %d", len(summary))
	}

	wantStatus := map[string]string{
		"1.1": models.StatusStrong,
		"1.2": models.StatusInProgress,
		"2.1": models.StatusNotStarted,
		"3.1": models.StatusNotStarted,
	}
	for _, s := range summary {
		if s.Status != wantStatus[s.Topic] {
			t.Errorf("topic %s status = %q, want %q", s.Topic, s.Status, wantStatus[s.Topic])
		}
	}
}
