package planner

import (
	"strconv"

	"github.com/myrjola/weekplan/internal/i18n"
)

const progressionWeeks = 4

// ProgressionNote is guidance for one week of the four-week cycle.
type ProgressionNote struct {
	Week int    `json:"week"`
	Note string `json:"note"`
}

// ProgressionNotes returns the four-week progression guidance for the experience tier in lang.
func ProgressionNotes(experience Experience, lang i18n.Language) []ProgressionNote {
	tier := "trained"
	if experience == ExperienceBeginner {
		tier = "beginner"
	}
	notes := make([]ProgressionNote, 0, progressionWeeks)
	for week := 1; week <= progressionWeeks; week++ {
		notes = append(notes, ProgressionNote{
			Week: week,
			Note: i18n.Translate(lang, "progression."+tier+"."+strconv.Itoa(week)),
		})
	}
	return notes
}
