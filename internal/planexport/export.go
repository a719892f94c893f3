// Package planexport renders generated plans as Markdown and HTML.
package planexport

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/myrjola/weekplan/internal/i18n"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//nolint:gochecknoglobals // goldmark.Markdown is safe for concurrent use
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders plan as a Markdown document with one table per training day.
func Markdown(plan planner.Plan, lang i18n.Language) string {
	t := func(key string) string { return i18n.Translate(lang, key) }
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("export.title"))
	fmt.Fprintf(&b, "**%s:** %s\n", t("export.split"), escape(plan.Split))

	for _, day := range plan.Week {
		heading := day.DayLabel
		if heading == "" {
			heading = string(day.Day)
		}
		fmt.Fprintf(&b, "\n## %s: %s\n\n", escape(heading), escape(day.Block))
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", t("export.exercise"), t("export.sets"), t("export.reps"),
			t("export.rest"), t("export.weight"))
		b.WriteString("| --- | ---: | --- | --- | ---: |\n")
		for _, ex := range day.Exercises {
			weight := ""
			if ex.SuggestedWeight != "" {
				weight = ex.SuggestedWeight + " kg"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				escape(ex.Name), strconv.Itoa(ex.Sets), escape(ex.Reps), escape(ex.Rest), weight)
		}
	}

	if len(plan.Progression) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", t("export.progression"))
		for _, note := range plan.Progression {
			fmt.Fprintf(&b, "%d. %s\n", note.Week, escape(note.Note))
		}
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", t("export.warnings"))
		for _, w := range plan.Warnings {
			label := i18n.Translate(lang, "day."+string(w.Day))
			fmt.Fprintf(&b, "- %s\n", escape(fmt.Sprintf(t("export.underfilled"), label, w.Block, w.Got, w.Want)))
		}
	}
	return b.String()
}

// HTML renders plan as an HTML fragment converted from its Markdown form.
func HTML(plan planner.Plan, lang i18n.Language) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(plan, lang)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

//nolint:gochecknoglobals // read-only replacer
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`<`, `&lt;`,
	`>`, `&gt;`,
	"\n", " ",
)

// escape makes catalog text safe inside a Markdown table cell or heading. Angle brackets become entities so
// that catalog text never turns into markup.
func escape(s string) string {
	return escaper.Replace(s)
}
