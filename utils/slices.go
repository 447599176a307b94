package utils

// Intersection returns the elements of a that also appear in b, preserving
// a's order. Used for shared-interest extraction.
func Intersection(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	shared := []string{}
	for _, s := range a {
		if _, ok := set[s]; ok {
			shared = append(shared, s)
		}
	}
	return shared
}
