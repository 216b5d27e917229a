// Package collection provides generic, functional-style helpers for slices.
//
// Usage:
//
//	emails := collection.Map(users, func(u models.User) string { return u.Email })
//	open := collection.Filter(orders, func(o models.Order) bool { return o.Status == "pending" })
//	byStatus := collection.GroupBy(orders, func(o models.Order) string { return o.Status })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// GroupBy partitions s into a map keyed by the string returned by fn.
func GroupBy[T any](s []T, fn func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// KeyBy turns s into a map using the key produced by fn.
// If two elements produce the same key, the last one wins.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Reduce folds s into a single value using fn, starting with initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// Sum sums numeric values extracted by fn.
func Sum[T any](s []T, fn func(T) float64) float64 {
	return Reduce(s, 0.0, func(acc float64, v T) float64 { return acc + fn(v) })
}
