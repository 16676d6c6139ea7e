package calc

// Diff returns the elements of a that are not present in b, keeping the order
// and duplicates of a. Diff(next, prev) yields appended ids, Diff(prev, next)
// yields removed ids.
func Diff(a, b []string) []string {
	out := []string{}
	if len(a) == 0 {
		return out
	}

	seen := make(map[string]struct{}, len(b))
	for _, id := range b {
		seen[id] = struct{}{}
	}

	for _, id := range a {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
