package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/mathprep/backend/internal/models"
)

// SystemPrompt frames the narrator as a tutor writing to one student.
func SystemPrompt() string {
	return `Ты — опытный репетитор по математике, готовящий школьников к ОГЭ и ЕГЭ.
Тебе дают структурированный план занятий, статистику активности ученика и
список самых заметных изменений с прошлого плана. Напиши короткое (3-5 абзацев)
личное обращение к ученику: что изучать дальше и почему, какие навыки закрепить,
какие задачи ФИПИ пора отрабатывать. Пиши по-русски, дружелюбно и конкретно,
без нумерованных списков. Не выдумывай темы, которых нет в плане.`
}

// BuildPlanPrompt renders the structured plan, the diff since the last
// narrative, activity stats and the student's own parameters into the user
// prompt. A nil diff (first run) omits the changes section entirely.
func BuildPlanPrompt(user *models.User, plan models.StudyPlan, diff []models.ProbabilityEntry,
	stats models.ActivityStats, expectedScore *float64, priorNarrative string, now time.Time) string {

	var b strings.Builder

	b.WriteString("ДАННЫЕ УЧЕНИКА\n")
	if user != nil {
		fmt.Fprintf(&b, "Имя: %s\n", user.DisplayName())
		if user.GoalScore != nil {
			fmt.Fprintf(&b, "Целевой балл: %d\n", *user.GoalScore)
		}
		if user.HoursPerWeek != nil {
			fmt.Fprintf(&b, "Часов занятий в неделю: %.1f\n", *user.HoursPerWeek)
		}
		if days := user.DaysToExam(now); days != nil {
			fmt.Fprintf(&b, "Дней до экзамена: %d\n", *days)
		}
	}

	b.WriteString("\nАКТИВНОСТЬ\n")
	fmt.Fprintf(&b, "Решено задач: %d\n", stats.TotalSolved)
	fmt.Fprintf(&b, "Процент верных: %.0f%%\n", stats.PctCorrect)
	fmt.Fprintf(&b, "Часов занятий: %.1f\n", stats.HoursSpent)
	fmt.Fprintf(&b, "Текущая серия дней: %d\n", stats.CurrentStreakDays)
	if expectedScore != nil {
		fmt.Fprintf(&b, "Ожидаемый балл: %.2f\n", *expectedScore)
	}

	b.WriteString("\nПЛАН\n")
	if len(plan.TopicsToStudy) > 0 {
		fmt.Fprintf(&b, "Новые темы для изучения: %s\n", strings.Join(plan.TopicsToStudy, ", "))
	} else {
		b.WriteString("Новых тем для изучения нет — все темы начаты.\n")
	}
	if len(plan.HighImportanceSkills) > 0 {
		fmt.Fprintf(&b, "Ключевые навыки этих тем: %s\n", joinInts(plan.HighImportanceSkills))
	}
	if len(plan.FipiTasksForDrilling) > 0 {
		fmt.Fprintf(&b, "Задачи ФИПИ для отработки: %s\n", joinInts(plan.FipiTasksForDrilling))
	}
	if len(plan.SkillsToReinforce) > 0 {
		fmt.Fprintf(&b, "Навыки для закрепления: %s\n", joinInts(plan.SkillsToReinforce))
	}

	if len(diff) > 0 {
		b.WriteString("\nИЗМЕНЕНИЯ С ПРОШЛОГО ПЛАНА (знак — направление)\n")
		for _, d := range diff {
			switch d.Kind {
			case models.KindTopic:
				fmt.Fprintf(&b, "тема %s: %+.2f\n", d.Topic, d.Prob)
			case models.KindSkill:
				fmt.Fprintf(&b, "навык %d: %+.2f\n", d.Skill, d.Prob)
			case models.KindFipiTask:
				fmt.Fprintf(&b, "задача ФИПИ %d: %+.2f\n", d.FipiTask, d.Prob)
			}
		}
	}

	if priorNarrative != "" {
		b.WriteString("\nПРЕДЫДУЩЕЕ ОБРАЩЕНИЕ (для связности, не повторяй дословно)\n")
		b.WriteString(priorNarrative)
		b.WriteString("\n")
	}

	return b.String()
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
