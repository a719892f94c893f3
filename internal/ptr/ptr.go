// Package ptr builds pointers to literals, e.g. the optional age of a profile.
package ptr

// Ref returns a pointer to a copy of v.
func Ref[T any](v T) *T {
	return &v
}
