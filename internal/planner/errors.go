package planner

import "errors"

// ErrNoEligibleExercises is returned when no catalog exercise satisfies the profile's constraints.
var ErrNoEligibleExercises = errors.New("no exercises match the profile constraints")

// ErrorKind classifies plan generation failures for callers rendering user-facing messages.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNoEligible  ErrorKind = "no_eligible"
	KindInternal    ErrorKind = "internal"
	kindUnspecified ErrorKind = ""
)

// Kind returns the kind of err. A nil error has no kind.
func Kind(err error) ErrorKind {
	if err == nil {
		return kindUnspecified
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, ErrNoEligibleExercises):
		return KindNoEligible
	default:
		return KindInternal
	}
}
