package planner

import (
	"strings"

	"github.com/myrjola/weekplan/internal/catalog"
)

// Eligible returns the exercises the profile allows, keeping catalog order. An exercise is eligible when
//   - none of its excluded injuries is declared by the user,
//   - its location list is empty or contains the user's location, and
//   - it needs no equipment, accepts bodyweight, or needs something the user owns.
//
// Equipment names on both sides go through the normalizer first.
func Eligible(exercises []catalog.Exercise, p Profile, equipment *catalog.EquipmentNormalizer) []catalog.Exercise {
	injuries := make(map[string]struct{}, len(p.Injuries))
	for _, inj := range p.Injuries {
		if inj = strings.ToLower(strings.TrimSpace(inj)); inj != "" && inj != "none" {
			injuries[inj] = struct{}{}
		}
	}
	owned := equipment.Set(p.Equipment)
	owned[catalog.EquipmentBodyweight] = struct{}{}
	owned[catalog.EquipmentNone] = struct{}{}
	location := strings.ToLower(strings.TrimSpace(p.Location))

	var eligible []catalog.Exercise
	for _, ex := range exercises {
		if excludedByInjury(ex, injuries) || !availableAt(ex, location) || !equipped(ex, owned, equipment) {
			continue
		}
		eligible = append(eligible, ex)
	}
	return eligible
}

func excludedByInjury(ex catalog.Exercise, injuries map[string]struct{}) bool {
	for _, inj := range ex.ExcludedInjuries {
		if _, ok := injuries[inj]; ok {
			return true
		}
	}
	return false
}

func availableAt(ex catalog.Exercise, location string) bool {
	if len(ex.Location) == 0 {
		return true
	}
	for _, l := range ex.Location {
		if l == location {
			return true
		}
	}
	return false
}

// equipped treats the required list as alternatives: owning any one of them is enough. Since the owned set
// always holds bodyweight and none, exercises accepting those are always equipped.
func equipped(ex catalog.Exercise, owned map[string]struct{}, equipment *catalog.EquipmentNormalizer) bool {
	if len(ex.Equipment) == 0 {
		return true
	}
	for _, req := range ex.Equipment {
		if _, ok := owned[equipment.Normalize(req)]; ok {
			return true
		}
	}
	return false
}
