package gate

import "strings"

// Allowlist restricts admin access to a fixed set of client identities.
// An empty list allows everyone; that default is deliberate and documented,
// not a silent fallback.
type Allowlist struct {
	ips map[string]struct{}
}

// ParseAllowlist builds an allowlist from a comma-separated string, the form
// the configuration provides. Whitespace around entries is ignored.
func ParseAllowlist(raw string) *Allowlist {
	al := &Allowlist{ips: make(map[string]struct{})}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			al.ips[entry] = struct{}{}
		}
	}
	return al
}

// Empty reports whether no entries are configured.
func (al *Allowlist) Empty() bool {
	return len(al.ips) == 0
}

// IsAllowed reports whether the identity may proceed. With a non-empty list,
// membership is required; the "unknown" bucket is only allowed if listed
// explicitly.
func (al *Allowlist) IsAllowed(identity string) bool {
	if al.Empty() {
		return true
	}
	_, ok := al.ips[identity]
	return ok
}
