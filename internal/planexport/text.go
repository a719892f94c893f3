package planexport

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/myrjola/weekplan/internal/i18n"
	"github.com/myrjola/weekplan/internal/planner"
)

// WriteText writes plan as aligned plain text for terminals.
func WriteText(w io.Writer, plan planner.Plan, lang i18n.Language) error {
	t := func(key string) string { return i18n.Translate(lang, key) }
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // column padding

	fmt.Fprintf(tw, "%s\n%s: %s\n", t("export.title"), t("export.split"), plan.Split)
	for _, day := range plan.Week {
		fmt.Fprintf(tw, "\n%s: %s\n", day.DayLabel, day.Block)
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", t("export.exercise"), t("export.sets"), t("export.reps"),
			t("export.rest"), t("export.weight"))
		for _, ex := range day.Exercises {
			fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%s\n", ex.Name, ex.Sets, ex.Reps, ex.Rest, ex.SuggestedWeight)
		}
	}
	if len(plan.Progression) > 0 {
		fmt.Fprintf(tw, "\n%s\n", t("export.progression"))
		for _, note := range plan.Progression {
			fmt.Fprintf(tw, "  %d. %s\n", note.Week, note.Note)
		}
	}
	if len(plan.Warnings) > 0 {
		fmt.Fprintf(tw, "\n%s\n", t("export.warnings"))
		for _, w := range plan.Warnings {
			fmt.Fprintf(tw, "  "+t("export.underfilled")+"\n", i18n.Translate(lang, "day."+string(w.Day)), w.Block,
				w.Got, w.Want)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush plan text: %w", err)
	}
	return nil
}
