package rpm

import (
	"os/user"
	"strconv"
)

// identityCacheLimit is the historical 1024-entry ceiling (SPEC_FULL.md §3); the
// backing store is a growable map (§11 redesign), but the ceiling and its fatal
// behavior at capacity are preserved.
const identityCacheLimit = 1024

// IdentityCache resolves numeric uids or gids to names, caching every lookup for the
// life of the BuildContext that owns it (SPEC_FULL.md §4.4). It is append-only: a
// failed lookup caches the empty string rather than retrying.
type IdentityCache struct {
	what   string // "users" or "groups", used in LimitError messages
	lookup func(id int) (string, error)
	cache  map[int]string
}

func newUserCache() *IdentityCache {
	return &IdentityCache{
		what: "users",
		lookup: func(id int) (string, error) {
			u, err := user.LookupId(strconv.Itoa(id))
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		cache: make(map[int]string),
	}
}

func newGroupCache() *IdentityCache {
	return &IdentityCache{
		what: "groups",
		lookup: func(id int) (string, error) {
			g, err := user.LookupGroupId(strconv.Itoa(id))
			if err != nil {
				return "", err
			}
			return g.Name, nil
		},
		cache: make(map[int]string),
	}
}

// Resolve returns the cached name for id, querying the host account database and
// caching the result (even on failure, as the empty string) on a miss. It returns a
// *LimitError if the cache is already at its 1024-entry ceiling.
func (c *IdentityCache) Resolve(id int) (string, error) {
	if name, ok := c.cache[id]; ok {
		return name, nil
	}
	if len(c.cache) >= identityCacheLimit {
		return "", &LimitError{What: c.what, Limit: identityCacheLimit}
	}
	name, err := c.lookup(id)
	if err != nil {
		name = ""
	}
	c.cache[id] = name
	return name, nil
}
