// Package mergesort orders recorded measurements before they are shown again
// in a results table.
package mergesort

import "cmp"

// Sort returns a sorted copy of s. Equal keys keep their original order.
func Sort[T cmp.Ordered](s []T) []T {
	return SortFunc(s, cmp.Compare[T])
}

// SortFunc returns a copy of s sorted by compare, which returns a negative
// number when a < b, zero when equal and positive when a > b. The sort is
// stable and does not modify s.
func SortFunc[T any](s []T, compare func(a, b T) int) []T {
	out := make([]T, len(s))
	copy(out, s)
	if len(out) < 2 {
		return out
	}
	buf := make([]T, len(out))
	split(out, buf, compare)
	return out
}

func split[T any](s, buf []T, compare func(a, b T) int) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	split(s[:mid], buf[:mid], compare)
	split(s[mid:], buf[mid:], compare)
	merge(s, mid, buf, compare)
}

// merge combines the sorted halves s[:mid] and s[mid:] in place, using buf
// as scratch space. The left half wins ties.
func merge[T any](s []T, mid int, buf []T, compare func(a, b T) int) {
	copy(buf, s)
	left, right := buf[:mid], buf[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if compare(right[j], left[i]) < 0 {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	for i < len(left) {
		s[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		s[k] = right[j]
		j++
		k++
	}
}
