package catalog

// Курс "2" — ЕГЭ базового уровня. Коды тем несут суффикс E, чтобы не
// пересекаться с кодами ОГЭ.

var egeBasicTopics = []TopicEntry{
	{Code: "1.1E", Name: "Вычисления и преобразования", Skills: []SkillRef{
		{Number: 101, Importance: 0}, {Number: 102, Importance: 2},
	}},
	{Code: "1.2E", Name: "Дроби и проценты", Skills: []SkillRef{
		{Number: 103, Importance: 1}, {Number: 104, Importance: 3},
	}},
	{Code: "2.1E", Name: "Преобразования выражений", Skills: []SkillRef{
		{Number: 105, Importance: 0}, {Number: 106, Importance: 2},
	}},
	{Code: "3.1E", Name: "Уравнения", Skills: []SkillRef{
		{Number: 107, Importance: 0}, {Number: 108, Importance: 2},
	}},
	{Code: "3.2E", Name: "Неравенства", Skills: []SkillRef{
		{Number: 109, Importance: 1}, {Number: 110, Importance: 3},
	}},
	{Code: "4.1E", Name: "Прикладные задачи", Skills: []SkillRef{
		{Number: 111, Importance: 1}, {Number: 112, Importance: 2},
	}},
	{Code: "5.1E", Name: "Функции и графики", Skills: []SkillRef{
		{Number: 113, Importance: 1}, {Number: 114, Importance: 4},
	}},
	{Code: "6.1E", Name: "Начала математического анализа", Skills: []SkillRef{
		{Number: 115, Importance: 2},
	}},
	{Code: "7.1E", Name: "Планиметрия", Skills: []SkillRef{
		{Number: 116, Importance: 1}, {Number: 117, Importance: 2},
	}},
	{Code: "7.2E", Name: "Стереометрия", Skills: []SkillRef{
		{Number: 118, Importance: 1}, {Number: 119, Importance: 3},
	}},
	{Code: "8.1E", Name: "Вероятность и статистика", Skills: []SkillRef{
		{Number: 120, Importance: 1}, {Number: 121, Importance: 2},
	}},
	{Code: "9.1E", Name: "Текстовые задачи", Skills: []SkillRef{
		{Number: 122, Importance: 0}, {Number: 123, Importance: 2},
	}},
}

var egeBasicFipiTaskTopics = map[int][]string{
	1:  {"1.1E"},
	2:  {"1.1E", "1.2E"},
	3:  {"1.2E"},
	4:  {"2.1E"},
	5:  {"1.2E", "9.1E"},
	6:  {"9.1E"},
	7:  {"3.1E"},
	8:  {"5.1E"},
	9:  {"4.1E"},
	10: {"8.1E"},
	11: {"5.1E", "6.1E"},
	12: {"4.1E"},
	13: {"7.2E"},
	14: {"6.1E"},
	15: {"7.1E"},
	16: {"7.2E"},
	17: {"3.2E"},
	18: {"3.1E", "3.2E"},
	19: {"1.1E"},
	20: {"9.1E", "3.1E"},
	21: {"9.1E", "1.1E"},
}
