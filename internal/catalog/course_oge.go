package catalog

// Курс "1" — ОГЭ по математике. Темы идут в порядке кодификатора.

var ogeTopics = []TopicEntry{
	{Code: "1.1", Name: "Натуральные и целые числа", Skills: []SkillRef{
		{Number: 1, Importance: 0}, {Number: 2, Importance: 1}, {Number: 3, Importance: 3},
	}},
	{Code: "1.2", Name: "Обыкновенные и десятичные дроби", Skills: []SkillRef{
		{Number: 4, Importance: 0}, {Number: 5, Importance: 2},
	}},
	{Code: "1.3", Name: "Проценты и отношения", Skills: []SkillRef{
		{Number: 6, Importance: 1}, {Number: 7, Importance: 2}, {Number: 8, Importance: 4},
	}},
	{Code: "2.1", Name: "Буквенные выражения и их преобразования", Skills: []SkillRef{
		{Number: 9, Importance: 0}, {Number: 10, Importance: 2},
	}},
	{Code: "2.2", Name: "Степени с целым показателем и корни", Skills: []SkillRef{
		{Number: 11, Importance: 1}, {Number: 12, Importance: 3},
	}},
	{Code: "3.1", Name: "Линейные уравнения", Skills: []SkillRef{
		{Number: 13, Importance: 0}, {Number: 14, Importance: 2},
	}},
	{Code: "3.2", Name: "Квадратные уравнения", Skills: []SkillRef{
		{Number: 15, Importance: 0}, {Number: 16, Importance: 1}, {Number: 17, Importance: 3},
	}},
	{Code: "3.3", Name: "Системы уравнений", Skills: []SkillRef{
		{Number: 18, Importance: 2}, {Number: 19, Importance: 4},
	}},
	{Code: "3.4", Name: "Линейные и квадратные неравенства", Skills: []SkillRef{
		{Number: 20, Importance: 1}, {Number: 21, Importance: 2},
	}},
	{Code: "4.1", Name: "Числовые последовательности и прогрессии", Skills: []SkillRef{
		{Number: 22, Importance: 2}, {Number: 23, Importance: 3},
	}},
	{Code: "5.1", Name: "Функции и их графики", Skills: []SkillRef{
		{Number: 24, Importance: 1}, {Number: 25, Importance: 2}, {Number: 26, Importance: 4},
	}},
	{Code: "6.1", Name: "Координатная прямая и плоскость", Skills: []SkillRef{
		{Number: 27, Importance: 2},
	}},
	{Code: "7.1", Name: "Треугольники", Skills: []SkillRef{
		{Number: 28, Importance: 0}, {Number: 29, Importance: 1}, {Number: 30, Importance: 3},
	}},
	{Code: "7.2", Name: "Четырёхугольники", Skills: []SkillRef{
		{Number: 31, Importance: 1}, {Number: 32, Importance: 2},
	}},
	{Code: "7.3", Name: "Окружность и круг", Skills: []SkillRef{
		{Number: 33, Importance: 1}, {Number: 34, Importance: 3},
	}},
	{Code: "7.4", Name: "Площади фигур", Skills: []SkillRef{
		{Number: 35, Importance: 0}, {Number: 36, Importance: 2},
	}},
	{Code: "8.1", Name: "Статистика и теория вероятностей", Skills: []SkillRef{
		{Number: 37, Importance: 1}, {Number: 38, Importance: 2},
	}},
}

// ogeFipiTaskTopics maps exam task numbers (1-25) to the topics a student
// needs before drilling that task.
var ogeFipiTaskTopics = map[int][]string{
	1:  {"1.1", "1.2", "1.3"},
	2:  {"1.1", "1.2", "1.3"},
	3:  {"1.1", "1.2", "1.3"},
	4:  {"1.1", "1.2", "1.3"},
	5:  {"1.1", "1.2", "1.3"},
	6:  {"1.1", "1.2"},
	7:  {"1.3", "6.1"},
	8:  {"2.2"},
	9:  {"3.1", "3.2"},
	10: {"8.1"},
	11: {"5.1"},
	12: {"2.1"},
	13: {"3.4"},
	14: {"4.1"},
	15: {"7.1"},
	16: {"7.3"},
	17: {"7.2"},
	18: {"7.4"},
	19: {"7.1", "7.2", "7.3"},
	20: {"2.1", "3.2"},
	21: {"3.1", "3.3"},
	22: {"5.1", "3.2"},
	23: {"7.1", "7.4"},
	24: {"7.1", "7.2"},
	25: {"7.2", "7.3"},
}
