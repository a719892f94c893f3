package ptr_test

import (
	"testing"

	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/ptr"
)

func TestRef(t *testing.T) {
	age := 55
	p := ptr.Ref(age)
	age++
	if *p == age {
		t.Errorf("Ref() followed the original variable: got %d", *p)
	}

	day := ptr.Ref(planner.Friday)
	if *day != planner.Friday {
		t.Errorf("Ref(Friday) = %q", *day)
	}
}
