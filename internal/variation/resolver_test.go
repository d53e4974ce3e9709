package variation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/variation"
)

func sampleVariations() []variation.Variation {
	return []variation.Variation{
		{ID: 1, Price: 500, Attributes: map[variation.Slug]string{"color": "red", "size": "M"}},
		{ID: 2, Price: 550, Attributes: map[variation.Slug]string{"color": "red", "size": "L"}},
		{ID: 3, Price: 600, Attributes: map[variation.Slug]string{"color": "blue", "size": "L"}},
	}
}

func TestAllowedOptions(t *testing.T) {
	t.Parallel()
	variations := sampleVariations()

	t.Run("unconstrained", func(t *testing.T) {
		opts := variation.AllowedOptions("size", variation.Selection{}, variations)
		require.ElementsMatch(t, []string{"M", "L"}, opts)
	})

	t.Run("conditioned on other attribute", func(t *testing.T) {
		sel := variation.Selection{"color": "red"}
		require.ElementsMatch(t, []string{"M", "L"}, variation.AllowedOptions("size", sel, variations))

		sel = variation.Selection{"color": "blue"}
		require.Equal(t, []string{"L"}, variation.AllowedOptions("size", sel, variations))
	})

	t.Run("own constraint is excluded", func(t *testing.T) {
		// Selecting size M must not hide the sibling sizes.
		sel := variation.Selection{"color": "red", "size": "M"}
		require.ElementsMatch(t, []string{"M", "L"}, variation.AllowedOptions("size", sel, variations))
	})

	t.Run("offered options stay reachable", func(t *testing.T) {
		slugs := []variation.Slug{"color", "size"}
		for _, slug := range slugs {
			for _, opt := range variation.AllowedOptions(slug, variation.Selection{}, variations) {
				sel := variation.Selection{slug: opt}
				for _, other := range slugs {
					if other == slug {
						continue
					}
					require.NotEmpty(t, variation.AllowedOptions(other, sel, variations),
						"option %q for %q leaves %q without choices", opt, slug, other)
				}
			}
		}
	})
}

func TestFindExactMatch(t *testing.T) {
	t.Parallel()
	variations := sampleVariations()
	slugs := []variation.Slug{"color", "size"}

	t.Run("complete agreeing selection", func(t *testing.T) {
		match := variation.FindExactMatch(variation.Selection{"color": "red", "size": "M"}, slugs, variations)
		require.NotNil(t, match)
		require.EqualValues(t, 1, match.ID)
		require.EqualValues(t, 500, match.Price)
	})

	t.Run("partial selection never matches", func(t *testing.T) {
		require.Nil(t, variation.FindExactMatch(variation.Selection{"color": "red"}, slugs, variations))
		require.Nil(t, variation.FindExactMatch(variation.Selection{"color": "red", "size": ""}, slugs, variations))
	})

	t.Run("complete but disagreeing selection", func(t *testing.T) {
		require.Nil(t, variation.FindExactMatch(variation.Selection{"color": "blue", "size": "M"}, slugs, variations))
	})

	t.Run("empty variation set", func(t *testing.T) {
		require.Nil(t, variation.FindExactMatch(variation.Selection{"color": "red", "size": "M"}, slugs, nil))
	})

	t.Run("no attributes defined", func(t *testing.T) {
		require.Nil(t, variation.FindExactMatch(variation.Selection{}, nil, variations))
	})

	t.Run("option values compare exactly", func(t *testing.T) {
		require.Nil(t, variation.FindExactMatch(variation.Selection{"color": "Red", "size": "M"}, slugs, variations))
	})
}

func TestHasAnyMatch(t *testing.T) {
	t.Parallel()
	variations := sampleVariations()

	require.True(t, variation.HasAnyMatch(variation.Selection{}, variations))
	require.True(t, variation.HasAnyMatch(variation.Selection{"color": "red"}, variations))
	require.True(t, variation.HasAnyMatch(variation.Selection{"color": "blue", "size": "L"}, variations))
	require.False(t, variation.HasAnyMatch(variation.Selection{"color": "blue", "size": "M"}, variations))
	require.False(t, variation.HasAnyMatch(variation.Selection{}, nil))
}

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()
	require.Equal(t, variation.Slug("pa_color"), variation.NormalizeSlug("  PA_Color "))
	require.Equal(t, variation.Slug(""), variation.NormalizeSlug("   "))
}

func TestBuildMeta(t *testing.T) {
	t.Parallel()

	t.Run("declared plus variation-only slugs", func(t *testing.T) {
		variations := sampleVariations()
		meta := variation.BuildMeta([]variation.MetaSource{{Slug: "Color", Label: "Colour"}}, variations)
		require.Equal(t, []variation.Slug{"color", "size"}, meta.Slugs())

		attr, ok := meta.Lookup("color")
		require.True(t, ok)
		require.Equal(t, "Colour", attr.Label)
		require.ElementsMatch(t, []string{"red", "blue"}, attr.Options)

		attr, ok = meta.Lookup("size")
		require.True(t, ok)
		require.Equal(t, "size", attr.Label)
		require.ElementsMatch(t, []string{"M", "L"}, attr.Options)
	})

	t.Run("no variations yields empty meta", func(t *testing.T) {
		meta := variation.BuildMeta(nil, nil)
		require.Zero(t, meta.Len())
		require.Empty(t, meta.EmptySelection())
	})

	t.Run("empty selection covers every slug", func(t *testing.T) {
		meta := variation.BuildMeta(nil, sampleVariations())
		sel := meta.EmptySelection()
		require.Len(t, sel, 2)
		require.False(t, sel.IsComplete(meta.Slugs()))
	})
}
