package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a raw catalog entry in one of the known source shapes. The union is sealed; only this package
// provides implementations.
type Record interface {
	isRecord()
}

// RowRecord is an exercise as stored in a flat SQL row. List fields are comma-joined strings and difficulty is
// stored as text.
type RowRecord struct {
	Code             string
	Name             string
	NameEN           string
	NamePL           string
	PrimaryMuscle    string
	SecondaryMuscles string
	Pattern          string
	Mechanics        string
	Equipment        string
	Location         string
	Difficulty       string
	MinutesEstimate  float64
	ExcludedInjuries string
	Description      string
	VideoURL         string
}

func (RowRecord) isRecord() {}

// DocumentRecord is an exercise as found in JSON catalog files. Several historical schema versions coexist in
// those files, so every field uses a lenient type that accepts the variants seen in practice.
type DocumentRecord struct {
	Code             string        `json:"code"`
	Name             LocalizedText `json:"name"`
	NameEN           string        `json:"name_en"`
	NamePL           string        `json:"name_pl"`
	PrimaryMuscle    string        `json:"primary_muscle"`
	MuscleGroup      string        `json:"muscle_group"`
	SecondaryMuscles StringList    `json:"secondary_muscles"`
	Pattern          string        `json:"pattern"`
	Mechanics        string        `json:"mechanics"`
	Equipment        StringList    `json:"equipment"`
	Location         StringList    `json:"location"`
	Difficulty       Difficulty    `json:"difficulty"`
	MinutesEst       Minutes       `json:"minutes_est"`
	MinutesEstimate  Minutes       `json:"minutes_estimate"`
	ExcludedInjuries StringList    `json:"excluded_injuries"`
	Safety           struct {
		ExcludedInjuries StringList `json:"excluded_injuries"`
	} `json:"safety"`
	Description    string `json:"description"`
	InstructionsEN string `json:"instructions_en"`
	InstructionsPL string `json:"instructions_pl"`
	VideoURL       string `json:"video_url"`
}

func (DocumentRecord) isRecord() {}

// UnmarshalJSON decodes field by field so that one malformed field does not discard the whole record.
func (d *DocumentRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode exercise object: %w", err)
	}
	str := func(key string, dst *string) {
		if raw, ok := fields[key]; ok {
			*dst = lenientString(raw)
		}
	}
	lenient := func(key string, dst json.Unmarshaler) {
		if raw, ok := fields[key]; ok {
			_ = dst.UnmarshalJSON(raw) // lenient types never fail
		}
	}

	*d = DocumentRecord{} //nolint:exhaustruct // zero value is filled below
	str("code", &d.Code)
	lenient("name", &d.Name)
	str("name_en", &d.NameEN)
	str("name_pl", &d.NamePL)
	str("primary_muscle", &d.PrimaryMuscle)
	str("muscle_group", &d.MuscleGroup)
	lenient("secondary_muscles", &d.SecondaryMuscles)
	str("pattern", &d.Pattern)
	str("mechanics", &d.Mechanics)
	lenient("equipment", &d.Equipment)
	lenient("location", &d.Location)
	lenient("difficulty", &d.Difficulty)
	lenient("minutes_est", &d.MinutesEst)
	lenient("minutes_estimate", &d.MinutesEstimate)
	lenient("excluded_injuries", &d.ExcludedInjuries)
	if raw, ok := fields["safety"]; ok {
		var safety map[string]json.RawMessage
		if json.Unmarshal(raw, &safety) == nil {
			if inj, found := safety["excluded_injuries"]; found {
				_ = d.Safety.ExcludedInjuries.UnmarshalJSON(inj)
			}
		}
	}
	str("description", &d.Description)
	str("instructions_en", &d.InstructionsEN)
	str("instructions_pl", &d.InstructionsPL)
	str("video_url", &d.VideoURL)
	return nil
}

// lenientString accepts JSON strings and numbers. Anything else becomes empty.
func lenientString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// StringList is a list of tags given either as a JSON array or as a comma-joined string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var s string
	if json.Unmarshal(data, &s) == nil {
		*l = splitList(s)
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	for _, item := range items {
		if v := strings.TrimSpace(lenientString(item)); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

// LocalizedText is a name given either as a plain string or as an object keyed by language code.
type LocalizedText struct {
	Plain      string
	ByLanguage map[string]string
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	*t = LocalizedText{} //nolint:exhaustruct // zero value means absent
	var s string
	if json.Unmarshal(data, &s) == nil {
		t.Plain = strings.TrimSpace(s)
		return nil
	}
	var m map[string]json.RawMessage
	if json.Unmarshal(data, &m) != nil {
		return nil
	}
	for lang, raw := range m {
		if v := strings.TrimSpace(lenientString(raw)); v != "" {
			if t.ByLanguage == nil {
				t.ByLanguage = make(map[string]string, len(m))
			}
			t.ByLanguage[strings.ToLower(lang)] = v
		}
	}
	return nil
}

// Difficulty is a difficulty rating given as an integer, a numeric string or a descriptive word. Zero means
// the value was absent or unrecognised.
type Difficulty int

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	*d = Difficulty(parseDifficulty(lenientString(data)))
	return nil
}

// Minutes is a duration estimate given as a number or a numeric string. Zero means absent.
type Minutes float64

func (m *Minutes) UnmarshalJSON(data []byte) error {
	*m = 0
	v, err := strconv.ParseFloat(strings.TrimSpace(lenientString(data)), 64)
	if err == nil && v > 0 && !math.IsInf(v, 0) {
		*m = Minutes(v)
	}
	return nil
}

// parseDifficulty returns the clamped difficulty or zero when s is not understood.
func parseDifficulty(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return 0
	case "beginner", "easy":
		return 1
	case "intermediate", "medium":
		return 2 //nolint:mnd // word scale
	case "advanced", "hard":
		return 3 //nolint:mnd // word scale
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return min(max(int(math.Round(f)), MinDifficulty), MaxDifficulty)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// DecodeDocuments decodes a JSON array of exercise documents. Elements that are not objects are skipped and
// counted. Only a top level that is not an array is an error.
func DecodeDocuments(data []byte) ([]DocumentRecord, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &items); err != nil {
		return nil, 0, fmt.Errorf("decode exercise documents: %w", err)
	}
	records := make([]DocumentRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			skipped++
			continue
		}
		var rec DocumentRecord
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
