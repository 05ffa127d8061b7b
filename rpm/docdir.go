package rpm

import "strings"

const docDirLimit = 1024

// defaultDocDirs are the three prefixes the registry is seeded with at the start of
// every manifest expansion (SPEC_FULL.md §3).
var defaultDocDirs = []string{"/usr/doc", "/usr/man", "/usr/info"}

// DocDirRegistry is the ordered set of path prefixes under which files are
// automatically flagged as documentation (SPEC_FULL.md §3, §4.3). Reset() restores
// the default three entries; Add appends an entry discovered via a %docdir
// directive.
type DocDirRegistry struct {
	prefixes []string
}

// NewDocDirRegistry returns a registry already seeded with the default prefixes.
func NewDocDirRegistry() *DocDirRegistry {
	r := &DocDirRegistry{}
	r.Reset()
	return r
}

// Reset restores the registry to exactly the three default prefixes, as the original
// does at the start of each manifest processing pass.
func (r *DocDirRegistry) Reset() {
	r.prefixes = append([]string(nil), defaultDocDirs...)
}

// Add appends prefix to the registry. It returns a *LimitError once the registry
// would exceed its historical 1024-entry ceiling.
func (r *DocDirRegistry) Add(prefix string) error {
	if len(r.prefixes) >= docDirLimit {
		return &LimitError{What: "doc-directory prefixes", Limit: docDirLimit}
	}
	r.prefixes = append(r.prefixes, prefix)
	return nil
}

// IsDoc reports whether path has any registered prefix as a leading substring
// (SPEC_FULL.md §4.3's doc-prefix test).
func (r *DocDirRegistry) IsDoc(path string) bool {
	for _, p := range r.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
