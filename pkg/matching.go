package coincidence

import "sort"

// The matching primitives rely on the ascending-shot invariant checked by
// HitTable.Validate. Absence of a shot is a normal outcome, not an error.

// shotPresent reports whether shot appears in the shots column. O(log n).
func shotPresent(shots []int, shot int) bool {
	i := sort.SearchInts(shots, shot)
	return i < len(shots) && shots[i] == shot
}

// shotRange returns the half-open index range [lo, hi) of the records whose
// shot equals the given value, empty when absent. O(log n).
func shotRange(shots []int, shot int) (int, int) {
	lo := sort.SearchInts(shots, shot)
	hi := sort.SearchInts(shots, shot+1)
	return lo, hi
}
