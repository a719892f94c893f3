package catalog

import (
	"slices"
	"strings"
)

// Alternatives maps an exercise code to the codes considered interchangeable with it. Two codes are
// alternatives when they share at least one group; membership is not transitive across groups. The index is
// immutable after construction and safe for concurrent reads.
type Alternatives struct {
	byCode map[string][]string
}

// NewAlternatives builds the index from groups of mutually interchangeable codes.
func NewAlternatives(groups [][]string) *Alternatives {
	sets := make(map[string]map[string]struct{})
	for _, group := range groups {
		codes := make([]string, 0, len(group))
		for _, code := range group {
			if code = strings.TrimSpace(code); code != "" && !slices.Contains(codes, code) {
				codes = append(codes, code)
			}
		}
		for _, code := range codes {
			for _, other := range codes {
				if other == code {
					continue
				}
				if sets[code] == nil {
					sets[code] = make(map[string]struct{})
				}
				sets[code][other] = struct{}{}
			}
		}
	}

	byCode := make(map[string][]string, len(sets))
	for code, set := range sets {
		alts := make([]string, 0, len(set))
		for other := range set {
			alts = append(alts, other)
		}
		slices.Sort(alts)
		byCode[code] = alts
	}
	return &Alternatives{byCode: byCode}
}

// Of returns the sorted alternatives of code. Unknown codes have none.
func (a *Alternatives) Of(code string) []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.byCode[code])
}

// Len returns the number of codes that have at least one alternative.
func (a *Alternatives) Len() int {
	if a == nil {
		return 0
	}
	return len(a.byCode)
}
