package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

// identityField is one field compared during content matching. The snapshot
// value is the first of keys that is present and non-null.
type identityField[T any] struct {
	keys []string
	live func(T) string
	// required fields must be non-empty in the snapshot.
	required bool
	// bothSides fields are only compared when the live record has a value too.
	bothSides bool
}

// kind describes how one collection is matched and reported.
type kind[T any] struct {
	singular string
	plural   string
	id       func(T) uuid.UUID
	fields   []identityField[T]
	describe func(jsonx.Object) string
}

type outcome struct {
	matched   []uuid.UUID
	unmatched []string
}

func (k kind[T]) matches(snap jsonx.Object, item T) bool {
	for _, f := range k.fields {
		want := snapshotValue(snap, f.keys)
		if want == "" {
			if f.required {
				return false
			}
			continue
		}
		got := jsonx.Normalize(f.live(item))
		if f.bothSides && got == "" {
			continue
		}
		if want != got {
			return false
		}
	}
	return true
}

func (k kind[T]) match(dataset []T, candidates []string, snaps []jsonx.Object) outcome {
	warn := len(candidates) > 0

	live := make(map[uuid.UUID]struct{}, len(dataset))
	for _, item := range dataset {
		live[k.id(item)] = struct{}{}
	}

	matched := newOrderedSet[uuid.UUID]()
	unmatched := newOrderedSet[string]()
	resolved := map[string]struct{}{}

	for _, c := range candidates {
		if id, ok := parseID(c); ok {
			if _, exists := live[id]; exists {
				matched.add(id)
				resolved[c] = struct{}{}
			}
		}
	}

	for _, snap := range snaps {
		sid, _ := snap.String("id")
		if id, ok := parseID(sid); ok {
			if matched.has(id) {
				continue
			}
			if _, exists := live[id]; exists {
				matched.add(id)
				resolved[sid] = struct{}{}
				continue
			}
		}

		found := false
		for _, item := range dataset {
			id := k.id(item)
			if !matched.has(id) && k.matches(snap, item) {
				matched.add(id)
				found = true
				break
			}
		}
		if found {
			if sid != "" {
				resolved[sid] = struct{}{}
			}
			continue
		}

		if warn && sid != "" && contains(candidates, sid) {
			unmatched.add(k.describe(snap))
		}
	}

	if warn {
		for _, c := range candidates {
			if _, ok := resolved[c]; ok {
				continue
			}
			if snap, ok := findSnapshot(snaps, c); ok {
				unmatched.add(k.describe(snap))
			} else {
				unmatched.add(c)
			}
		}
	}

	out := outcome{matched: matched.items, unmatched: []string{}}
	for _, u := range unmatched.items {
		if u != "" {
			out.unmatched = append(out.unmatched, u)
		}
	}
	if out.matched == nil {
		out.matched = []uuid.UUID{}
	}
	return out
}

// summarize renders one warning for a collection, or "" when all matched.
func (k kind[T]) summarize(unmatched []string) string {
	switch n := len(unmatched); {
	case n == 0:
		return ""
	case n == 1:
		return fmt.Sprintf("%s %q could not be matched to your current data.", capitalize(k.singular), unmatched[0])
	case n <= 3:
		return fmt.Sprintf("%d %s from the JSON file could not be matched (%s).", n, k.plural, strings.Join(unmatched, ", "))
	default:
		return fmt.Sprintf("%d %s from the JSON file could not be matched (%s, and %d more).",
			n, k.plural, strings.Join(unmatched[:3], ", "), n-3)
	}
}

func snapshotValue(snap jsonx.Object, keys []string) string {
	for _, key := range keys {
		if v, ok := snap[key]; ok && v != nil {
			return jsonx.Normalize(v)
		}
	}
	return ""
}

func findSnapshot(snaps []jsonx.Object, id string) (jsonx.Object, bool) {
	for _, snap := range snaps {
		if sid, ok := snap.String("id"); ok && sid == id {
			return snap, true
		}
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type orderedSet[K comparable] struct {
	index map[K]struct{}
	items []K
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{index: map[K]struct{}{}}
}

func (s *orderedSet[K]) add(k K) {
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, k)
}

func (s *orderedSet[K]) has(k K) bool {
	_, ok := s.index[k]
	return ok
}
