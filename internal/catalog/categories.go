package catalog

// NewLessonsCategory is the reserved pseudo-category that collects records
// flagged as new, independent of their real category.
const NewLessonsCategory = "Новые уроки"

// staticCategories is the fixed category menu. It is hand-authored, not
// derived from provider data: the menu order and icons are editorial.
var staticCategories = []StaticCategory{
	{Title: NewLessonsCategory, IconKey: "iconNew"},
	{Title: "Нейросети", IconKey: "iconAI"},
	{Title: "Инструменты Figma", IconKey: "iconFigma"},
	{Title: "Процесс дизайна", IconKey: "iconProcess"},
	{Title: "Дизайн-системы", IconKey: "iconDesignSystem"},
	{Title: "Фриланс, работа, soft skills", IconKey: "iconJob"},
	{Title: "Tilda", IconKey: "iconTilda"},
	{Title: "UX, исследования", IconKey: "iconUX"},
	{Title: "Челленджи", IconKey: "iconChallenge"},
	{Title: "Записи эфиров", IconKey: "iconRecs"},
	{Title: "Курс по Spline", IconKey: "iconSpline"},
}

// StaticCategories returns a copy of the category menu.
func StaticCategories() []StaticCategory {
	out := make([]StaticCategory, len(staticCategories))
	copy(out, staticCategories)
	return out
}

// categoryIcons returns the default icon per category title.
func categoryIcons() map[string]string {
	icons := make(map[string]string, len(staticCategories))
	for _, c := range staticCategories {
		icons[c.Title] = c.IconKey
	}
	return icons
}
