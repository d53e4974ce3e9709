package variation

// AttributeMeta describes one attribute dimension of a product: its display
// label and the options observed across the in-stock variations.
type AttributeMeta struct {
	Slug    Slug
	Label   string
	Options []string
}

// Meta is the per-product attribute index, built once when the product
// payload loads and immutable for the lifetime of a widget instance.
type Meta struct {
	order []Slug
	attrs map[Slug]AttributeMeta
}

// MetaSource is a declared attribute from the catalog payload.
type MetaSource struct {
	Slug  string
	Label string
}

// BuildMeta assembles attribute metadata from the declared attributes plus
// any slug that appears only inside variation data. Options come from the
// variations themselves, so only combinations that are actually purchasable
// are ever offered.
func BuildMeta(declared []MetaSource, variations []Variation) *Meta {
	m := &Meta{attrs: make(map[Slug]AttributeMeta)}

	for _, src := range declared {
		slug := NormalizeSlug(src.Slug)
		if slug == "" {
			continue
		}
		if _, ok := m.attrs[slug]; ok {
			continue
		}
		label := src.Label
		if label == "" {
			label = string(slug)
		}
		m.order = append(m.order, slug)
		m.attrs[slug] = AttributeMeta{Slug: slug, Label: label}
	}

	for _, v := range variations {
		for slug := range v.Attributes {
			if _, ok := m.attrs[slug]; ok {
				continue
			}
			m.order = append(m.order, slug)
			m.attrs[slug] = AttributeMeta{Slug: slug, Label: string(slug)}
		}
	}

	for _, slug := range m.order {
		attr := m.attrs[slug]
		attr.Options = AllowedOptions(slug, Selection{}, variations)
		m.attrs[slug] = attr
	}

	return m
}

// Slugs returns the attribute slugs in declaration order.
func (m *Meta) Slugs() []Slug {
	if m == nil {
		return nil
	}
	out := make([]Slug, len(m.order))
	copy(out, m.order)
	return out
}

// Lookup returns the metadata for a slug.
func (m *Meta) Lookup(slug Slug) (AttributeMeta, bool) {
	if m == nil {
		return AttributeMeta{}, false
	}
	attr, ok := m.attrs[slug]
	return attr, ok
}

// Len reports how many attributes the product defines.
func (m *Meta) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// EmptySelection returns a selection with every attribute unset.
func (m *Meta) EmptySelection() Selection {
	sel := make(Selection, m.Len())
	for _, slug := range m.Slugs() {
		sel[slug] = ""
	}
	return sel
}
