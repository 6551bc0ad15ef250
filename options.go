package rangesum

type treeOption func(*Tree) error

// Unchecked disables range validation on Update and Query.
//
// By default both operations verify that 1 <= i <= j <= Len() and
// return an error when the range is invalid. With this option the
// check is skipped and the contract becomes caller responsibility:
// passing an invalid range leads to a silently wrong result or an
// out-of-bounds panic depending on the direction of the violation.
//
// Only worth it on hot paths where the caller already guarantees its
// ranges.
func Unchecked() treeOption {
	return func(t *Tree) error {
		t.unchecked = true
		return nil
	}
}
