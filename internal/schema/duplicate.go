package schema

// findDuplicate scans values in order and returns the first value whose
// second occurrence is encountered. The scan order makes the result
// deterministic, which keeps error messages reproducible.
func findDuplicate[T comparable](values []T) (T, bool) {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	var zero T
	return zero, false
}
