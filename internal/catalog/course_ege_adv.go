package catalog

// Курс "3" — ЕГЭ профильного уровня. Коды тем несут суффикс P.

var egeAdvancedTopics = []TopicEntry{
	{Code: "1.1P", Name: "Планиметрия", Skills: []SkillRef{
		{Number: 201, Importance: 0}, {Number: 202, Importance: 2},
	}},
	{Code: "1.2P", Name: "Векторы и координаты", Skills: []SkillRef{
		{Number: 203, Importance: 1}, {Number: 204, Importance: 3},
	}},
	{Code: "1.3P", Name: "Стереометрия", Skills: []SkillRef{
		{Number: 205, Importance: 1}, {Number: 206, Importance: 2},
	}},
	{Code: "2.1P", Name: "Вероятность и статистика", Skills: []SkillRef{
		{Number: 207, Importance: 0}, {Number: 208, Importance: 2},
	}},
	{Code: "3.1P", Name: "Уравнения и их системы", Skills: []SkillRef{
		{Number: 209, Importance: 0}, {Number: 210, Importance: 1}, {Number: 211, Importance: 3},
	}},
	{Code: "3.2P", Name: "Неравенства", Skills: []SkillRef{
		{Number: 212, Importance: 1}, {Number: 213, Importance: 2},
	}},
	{Code: "4.1P", Name: "Преобразования выражений", Skills: []SkillRef{
		{Number: 214, Importance: 0}, {Number: 215, Importance: 2},
	}},
	{Code: "5.1P", Name: "Производная и исследование функций", Skills: []SkillRef{
		{Number: 216, Importance: 1}, {Number: 217, Importance: 2}, {Number: 218, Importance: 4},
	}},
	{Code: "6.1P", Name: "Прикладные и текстовые задачи", Skills: []SkillRef{
		{Number: 219, Importance: 1}, {Number: 220, Importance: 3},
	}},
	{Code: "7.1P", Name: "Задачи с параметром", Skills: []SkillRef{
		{Number: 221, Importance: 2}, {Number: 222, Importance: 4},
	}},
	{Code: "8.1P", Name: "Числа и их свойства", Skills: []SkillRef{
		{Number: 223, Importance: 2}, {Number: 224, Importance: 3},
	}},
}

var egeAdvancedFipiTaskTopics = map[int][]string{
	1:  {"1.1P"},
	2:  {"1.2P"},
	3:  {"1.3P"},
	4:  {"2.1P"},
	5:  {"2.1P"},
	6:  {"3.1P"},
	7:  {"5.1P"},
	8:  {"1.3P"},
	9:  {"4.1P"},
	10: {"6.1P"},
	11: {"5.1P"},
	12: {"5.1P", "4.1P"},
	13: {"3.1P"},
	14: {"1.3P"},
	15: {"3.2P"},
	16: {"6.1P"},
	17: {"1.1P"},
	18: {"7.1P"},
	19: {"8.1P"},
}
