// Package i18n translates the user-facing strings of a generated plan.
package i18n

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// Polish is the Polish language.
	Polish Language = "pl"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = English

// translations maps language codes to translation keys and their values.
var translations = map[Language]map[string]string{ //nolint:gochecknoglobals // static table
	English: {
		"day.mon": "Monday",
		"day.tue": "Tuesday",
		"day.wed": "Wednesday",
		"day.thu": "Thursday",
		"day.fri": "Friday",
		"day.sat": "Saturday",
		"day.sun": "Sunday",

		"progression.beginner.1": "Week 1: Learn the technique. Use light weights.",
		"progression.beginner.2": "Week 2: Add 2.5 kg to the main lifts.",
		"progression.beginner.3": "Week 3: Focus on full range of motion.",
		"progression.beginner.4": "Week 4: Lighter week, 75% of normal volume.",

		"progression.trained.1": "Week 1: Adaptation. RIR 3-4, leave reps in reserve.",
		"progression.trained.2": "Week 2: Add 2.5% load or one more rep.",
		"progression.trained.3": "Week 3: Peak intensity (RIR 1-2).",
		"progression.trained.4": "Week 4: Deload, 50% of volume, focus on technique.",

		"export.title":       "Weekly plan",
		"export.split":       "Split",
		"export.exercise":    "Exercise",
		"export.sets":        "Sets",
		"export.reps":        "Reps",
		"export.rest":        "Rest",
		"export.weight":      "Weight",
		"export.progression": "Progression",
		"export.warnings":    "Warnings",
		"export.underfilled": "%s (%s) has %d of %d exercises, the catalog has no more eligible candidates.",
	},
	Polish: {
		"day.mon": "Poniedziałek",
		"day.tue": "Wtorek",
		"day.wed": "Środa",
		"day.thu": "Czwartek",
		"day.fri": "Piątek",
		"day.sat": "Sobota",
		"day.sun": "Niedziela",

		"progression.beginner.1": "Tydzień 1: Naucz się techniki. Używaj lekkich ciężarów.",
		"progression.beginner.2": "Tydzień 2: Zwiększ ciężar o 2.5kg w głównych ćwiczeniach.",
		"progression.beginner.3": "Tydzień 3: Skup się na pełnym zakresie ruchu.",
		"progression.beginner.4": "Tydzień 4: Lżejszy tydzień - 75% normalnej objętości.",

		"progression.trained.1": "Tydzień 1: Adaptacja. RIR 3-4 (zostaw zapas).",
		"progression.trained.2": "Tydzień 2: Zwiększ ciężar o 2.5% lub +1 powtórzenie.",
		"progression.trained.3": "Tydzień 3: Maksymalna intensywność (RIR 1-2).",
		"progression.trained.4": "Tydzień 4: Deload - 50% objętości, skup się na technice.",

		"export.title":       "Plan tygodniowy",
		"export.split":       "Split",
		"export.exercise":    "Ćwiczenie",
		"export.sets":        "Serie",
		"export.reps":        "Powtórzenia",
		"export.rest":        "Przerwa",
		"export.weight":      "Ciężar",
		"export.progression": "Progresja",
		"export.warnings":    "Ostrzeżenia",
		"export.underfilled": "%s (%s) ma %d z %d ćwiczeń, w katalogu brak kolejnych pasujących ćwiczeń.",
	},
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, Polish}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}

	if lang != DefaultLanguage {
		if translation, ok := translations[DefaultLanguage][key]; ok {
			return translation
		}
	}

	return key
}
