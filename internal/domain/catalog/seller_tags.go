package catalog

import "strings"

const (
	// ManagedTagPrefix marks seller tags owned by the sync engine. Tags with
	// this prefix are replaced wholesale on every sync; tags without it are
	// preserved.
	ManagedTagPrefix = "BS"

	// MaxSellerTags is the upstream platform's hard cap on tags per listing.
	MaxSellerTags = 10
)

// ApplyManagedTag computes the tag set that results from applying a managed
// tag to the current set: every previously applied managed tag is removed,
// the new tag is appended, and the set is truncated to MaxSellerTags. The
// returned slice is always a fresh copy.
func ApplyManagedTag(current []string, tag string) []string {
	next := make([]string, 0, len(current)+1)
	for _, t := range current {
		if strings.HasPrefix(t, ManagedTagPrefix) {
			continue
		}
		next = append(next, t)
	}
	if tag != "" {
		next = append(next, tag)
	}
	if len(next) > MaxSellerTags {
		next = next[:MaxSellerTags]
	}
	return next
}

// TagsEqual reports whether two tag lists are identical, order included. Tag
// order is platform-visible, so a reordering counts as a change.
func TagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
