package rpm

import "sort"

// SortManifest orders a manifest in reverse lexicographic order by Path, matching
// the original's strcmp(b, a) comparator (SPEC_FULL.md §4.2). The sort is stable so
// two records sharing a path (the same path listed on two manifest lines, say) keep
// their relative expansion order.
func SortManifest(m FileManifest) {
	sort.SliceStable(m, func(i, j int) bool { return m[i].Path > m[j].Path })
}
