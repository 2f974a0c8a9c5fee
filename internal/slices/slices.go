// Package slices holds generic slice helpers missing from the standard library.
package slices

// Map returns the result of applying fn to each element of slice, in order.
func Map[T, U any](slice []T, fn func(T) U) []U {
	result := make([]U, len(slice))
	for i, v := range slice {
		result[i] = fn(v)
	}
	return result
}
