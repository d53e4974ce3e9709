// Package variation resolves partial attribute selections against the set of
// purchasable variations of a product: which options remain reachable, and
// which exact variation (if any) a completed selection identifies.
package variation

import "strings"

// Slug is a normalized attribute key. Attribute names arrive from the
// catalog in mixed case; normalizing once at load time keeps the matching
// paths free of repeated case-folding.
type Slug string

// NormalizeSlug builds a Slug from a raw attribute name.
func NormalizeSlug(raw string) Slug {
	return Slug(strings.ToLower(strings.TrimSpace(raw)))
}

// Variation is one purchasable configuration of a product.
type Variation struct {
	ID         int64
	Price      int64
	Attributes map[Slug]string
}

// Selection is the in-progress attribute choice for a widget instance.
// An empty string (or absent key) means the attribute is not yet chosen.
type Selection map[Slug]string

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// IsComplete reports whether every given slug has a non-empty choice.
func (s Selection) IsComplete(slugs []Slug) bool {
	for _, slug := range slugs {
		if s[slug] == "" {
			return false
		}
	}
	return true
}

// Matches reports whether the variation agrees with every set (non-empty)
// attribute in the selection. Unset attributes impose no constraint.
func (v Variation) Matches(sel Selection) bool {
	for slug, want := range sel {
		if want == "" {
			continue
		}
		got, ok := v.Attributes[slug]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// AllowedOptions returns the deduplicated options available for slug, given
// the other attributes' current selections. The slug's own constraint is
// removed before filtering so an already-chosen option does not hide its
// siblings.
func AllowedOptions(slug Slug, sel Selection, variations []Variation) []string {
	other := sel.Clone()
	delete(other, slug)

	seen := make(map[string]struct{})
	var options []string
	for _, v := range variations {
		if !v.Matches(other) {
			continue
		}
		opt := v.Attributes[slug]
		if opt == "" {
			continue
		}
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		options = append(options, opt)
	}
	return options
}

// FindExactMatch returns the first variation agreeing with the selection on
// every slug, or nil. A selection missing any slug never matches.
func FindExactMatch(sel Selection, slugs []Slug, variations []Variation) *Variation {
	if len(slugs) == 0 {
		return nil
	}
	if !sel.IsComplete(slugs) {
		return nil
	}
	for i := range variations {
		if variations[i].Matches(sel) {
			return &variations[i]
		}
	}
	return nil
}

// HasAnyMatch reports whether at least one variation agrees with the
// currently set attributes. False with a partially set selection means the
// combination is a dead end, as opposed to merely incomplete.
func HasAnyMatch(sel Selection, variations []Variation) bool {
	for _, v := range variations {
		if v.Matches(sel) {
			return true
		}
	}
	return false
}
