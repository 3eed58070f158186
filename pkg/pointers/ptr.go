// Package pointers has the one generic helper Go still lacks.
package pointers

// Ptr returns a pointer to v, mainly for optional literal fields.
func Ptr[T any](v T) *T {
	return &v
}
