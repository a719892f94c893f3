package catalog

import (
	"slices"
	"strings"
)

// NormalizeOptions controls the canonical form produced by Normalize.
type NormalizeOptions struct {
	// Language is the preferred language for display names and descriptions.
	Language string
}

// Normalize converts a raw record into a canonical Exercise. It never fails; malformed fields fall back to
// defaults.
func Normalize(rec Record, opts NormalizeOptions) Exercise {
	switch r := rec.(type) {
	case RowRecord:
		return normalizeRow(r, opts)
	case *RowRecord:
		if r != nil {
			return normalizeRow(*r, opts)
		}
	case DocumentRecord:
		return normalizeDocument(r, opts)
	case *DocumentRecord:
		if r != nil {
			return normalizeDocument(*r, opts)
		}
	}
	return finish(Exercise{}, opts) //nolint:exhaustruct // defaults applied by finish
}

func normalizeRow(r RowRecord, opts NormalizeOptions) Exercise {
	names := map[string]string{"en": r.NameEN, "pl": r.NamePL}
	return finish(Exercise{
		Code:             strings.TrimSpace(r.Code),
		Name:             strings.TrimSpace(r.Name),
		LocalizedNames:   names,
		PrimaryMuscle:    r.PrimaryMuscle,
		SecondaryMuscles: splitList(r.SecondaryMuscles),
		Pattern:          Pattern(r.Pattern),
		Mechanics:        Mechanics(r.Mechanics),
		Equipment:        splitList(r.Equipment),
		Location:         splitList(r.Location),
		Difficulty:       parseDifficulty(r.Difficulty),
		MinutesEstimate:  r.MinutesEstimate,
		ExcludedInjuries: splitList(r.ExcludedInjuries),
		Description:      r.Description,
		VideoURL:         r.VideoURL,
	}, opts)
}

func normalizeDocument(d DocumentRecord, opts NormalizeOptions) Exercise {
	names := make(map[string]string, len(d.Name.ByLanguage)+2) //nolint:mnd // name_en and name_pl
	for lang, name := range d.Name.ByLanguage {
		names[lang] = name
	}
	if d.NameEN != "" {
		names["en"] = d.NameEN
	}
	if d.NamePL != "" {
		names["pl"] = d.NamePL
	}

	primary := d.PrimaryMuscle
	if strings.TrimSpace(primary) == "" {
		primary = d.MuscleGroup
	}
	minutes := float64(d.MinutesEstimate)
	if minutes <= 0 {
		minutes = float64(d.MinutesEst)
	}
	description := d.Description
	if strings.TrimSpace(description) == "" {
		description = pickLanguage(map[string]string{"en": d.InstructionsEN, "pl": d.InstructionsPL}, opts.Language)
	}

	return finish(Exercise{
		Code:             strings.TrimSpace(d.Code),
		Name:             d.Name.Plain,
		LocalizedNames:   names,
		PrimaryMuscle:    primary,
		SecondaryMuscles: d.SecondaryMuscles,
		Pattern:          Pattern(d.Pattern),
		Mechanics:        Mechanics(d.Mechanics),
		Equipment:        d.Equipment,
		Location:         d.Location,
		Difficulty:       int(d.Difficulty),
		MinutesEstimate:  minutes,
		ExcludedInjuries: slices.Concat(d.ExcludedInjuries, d.Safety.ExcludedInjuries),
		Description:      description,
		VideoURL:         d.VideoURL,
	}, opts)
}

// finish applies the defaults and cleanup shared by every record shape.
func finish(ex Exercise, opts NormalizeOptions) Exercise {
	ex.LocalizedNames = cleanNames(ex.LocalizedNames)
	// A name in the requested language wins over the generic one.
	if localized := ex.LocalizedNames[strings.ToLower(opts.Language)]; localized != "" {
		ex.Name = localized
	}
	if ex.Name == "" {
		ex.Name = pickLanguage(ex.LocalizedNames, opts.Language)
	}
	if ex.Name == "" {
		ex.Name = ex.Code
	}
	ex.PrimaryMuscle = strings.ToLower(strings.TrimSpace(ex.PrimaryMuscle))
	ex.SecondaryMuscles = tags(ex.SecondaryMuscles)
	ex.Equipment = tags(ex.Equipment)
	ex.Location = tags(ex.Location)
	ex.ExcludedInjuries = slices.DeleteFunc(tags(ex.ExcludedInjuries), func(s string) bool { return s == "none" })
	if len(ex.ExcludedInjuries) == 0 {
		ex.ExcludedInjuries = nil
	}

	ex.Pattern = Pattern(strings.ToLower(strings.TrimSpace(string(ex.Pattern))))
	if ex.Pattern == "" {
		ex.Pattern = PatternAccessory
	}
	switch Mechanics(strings.ToLower(strings.TrimSpace(string(ex.Mechanics)))) {
	case MechanicsCompound:
		ex.Mechanics = MechanicsCompound
	case MechanicsIsolation:
		ex.Mechanics = MechanicsIsolation
	default:
		// Unknown mechanics stay empty. Scoring treats them as neither, volume falls back to the pattern.
		ex.Mechanics = ""
	}

	if ex.Difficulty == 0 {
		ex.Difficulty = DefaultDifficulty
	}
	ex.Difficulty = min(max(ex.Difficulty, MinDifficulty), MaxDifficulty)
	if ex.MinutesEstimate <= 0 {
		ex.MinutesEstimate = DefaultMinutesEstimate
	}
	ex.Description = strings.TrimSpace(ex.Description)
	ex.VideoURL = strings.TrimSpace(ex.VideoURL)
	return ex
}

// pickLanguage prefers lang, then English, then the first language in sorted order.
func pickLanguage(byLang map[string]string, lang string) string {
	for _, l := range []string{strings.ToLower(lang), "en"} {
		if v := strings.TrimSpace(byLang[l]); v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(byLang))
	for k := range byLang {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(byLang[k]); v != "" {
			return v
		}
	}
	return ""
}

func cleanNames(names map[string]string) map[string]string {
	var out map[string]string
	for lang, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(names))
		}
		out[strings.ToLower(strings.TrimSpace(lang))] = name
	}
	return out
}

// tags lowercases, trims and deduplicates while keeping the first-seen order. Empty input yields nil.
func tags(in []string) []string {
	var out []string
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
