package widget_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/catalog"
	"github.com/ronginpran/checkout-api/internal/pricing"
	"github.com/ronginpran/checkout-api/internal/widget"
)

func variablePayload() catalog.ProductPayload {
	return catalog.ProductPayload{
		Product: catalog.ProductView{ID: 10, Name: "Panjabi", Price: 900, Type: catalog.ProductTypeVariable},
		Attributes: []catalog.AttributeView{
			{Slug: "color", Label: "Color", Options: []string{"red", "blue"}},
			{Slug: "size", Label: "Size", Options: []string{"M", "L"}},
		},
		Variations: []catalog.VariationView{
			{ID: 101, Price: 500, Attributes: []catalog.AttributePair{{Name: "Color", Option: "red"}, {Name: "Size", Option: "M"}}},
			{ID: 102, Price: 550, Attributes: []catalog.AttributePair{{Name: "Color", Option: "red"}, {Name: "Size", Option: "L"}}},
			{ID: 103, Price: 600, Attributes: []catalog.AttributePair{{Name: "Color", Option: "blue"}, {Name: "Size", Option: "L"}}},
		},
	}
}

func defaultOptions() widget.Options {
	return widget.Options{
		Charges:        pricing.Charges{Dhaka: 70, Outside: 130},
		EnableQuantity: true,
	}
}

func TestInstanceSelectionFlow(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.Equal(t, widget.AvailabilityChoosing, inst.Availability())
	require.False(t, inst.CanSubmit())

	require.True(t, inst.SelectAttribute("color", "red"))
	require.Equal(t, widget.AvailabilityChoosing, inst.Availability())
	require.ElementsMatch(t, []string{"M", "L"}, inst.OptionsFor("size"))

	require.True(t, inst.SelectAttribute("size", "M"))
	require.Equal(t, widget.AvailabilityMatched, inst.Availability())
	require.True(t, inst.CanSubmit())

	matched := inst.MatchedVariation()
	require.NotNil(t, matched)
	require.Equal(t, int64(101), matched.ID)
	require.Equal(t, int64(500), int64(inst.UnitPrice()))
}

func TestInstanceClearsInvalidatedSelections(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.True(t, inst.SelectAttribute("color", "red"))
	require.True(t, inst.SelectAttribute("size", "M"))

	// Blue only exists in L, so switching color must clear size rather
	// than rewrite it to L behind the shopper's back.
	require.True(t, inst.SelectAttribute("color", "blue"))
	sel := inst.Selection()
	require.Equal(t, "blue", sel["color"])
	require.Empty(t, sel["size"])
	require.Equal(t, widget.AvailabilityChoosing, inst.Availability())
	require.Equal(t, []string{"L"}, inst.OptionsFor("size"))
}

func TestInstanceKeepsCompatibleSelections(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.True(t, inst.SelectAttribute("color", "blue"))
	require.True(t, inst.SelectAttribute("size", "L"))
	require.True(t, inst.SelectAttribute("color", "red"))

	// red/L exists, so the size choice survives the color switch.
	sel := inst.Selection()
	require.Equal(t, "L", sel["size"])
	require.Equal(t, widget.AvailabilityMatched, inst.Availability())
}

func TestInstanceIgnoresUnknownInput(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.False(t, inst.SelectAttribute("material", "silk"))
	require.False(t, inst.SelectAttribute("color", "green"))
	require.Equal(t, widget.AvailabilityChoosing, inst.Availability())
}

func TestInstanceClearAttribute(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.True(t, inst.SelectAttribute("color", "red"))
	require.True(t, inst.SelectAttribute("color", ""))
	require.Empty(t, inst.Selection()["color"])
}

func TestInstanceTotals(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.True(t, inst.SelectAttribute("color", "red"))
	require.True(t, inst.SelectAttribute("size", "M"))
	inst.SetQuantity(2)

	require.Equal(t, int64(1070), int64(inst.Total()))
	require.Equal(t, "৳ 1,070", inst.DisplayTotal())

	inst.SelectZone("outside")
	require.Equal(t, int64(1130), int64(inst.Total()))
}

func TestInstanceQuantityRules(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	inst.SetQuantity(99)
	require.Equal(t, pricing.MaxQuantity, inst.Quantity())
	inst.SetQuantity(-3)
	require.Equal(t, pricing.MinQuantity, inst.Quantity())

	pinned := widget.NewInstance(variablePayload(), widget.Options{
		Charges: pricing.Charges{Dhaka: 70, Outside: 130},
	})
	pinned.SetQuantity(5)
	require.Equal(t, 1, pinned.Quantity())
}

func TestInstanceSubmitLifecycle(t *testing.T) {
	t.Parallel()
	inst := widget.NewInstance(variablePayload(), defaultOptions())

	require.False(t, inst.BeginSubmit(), "incomplete selection cannot submit")

	require.True(t, inst.SelectAttribute("color", "red"))
	require.True(t, inst.SelectAttribute("size", "M"))
	inst.SetQuantity(3)
	inst.SelectZone("outside")

	require.True(t, inst.BeginSubmit())
	require.False(t, inst.BeginSubmit(), "second tap while in flight is a no-op")

	inst.EndSubmit()
	require.True(t, inst.BeginSubmit(), "retry allowed after failure")

	inst.Reset()
	require.Equal(t, 1, inst.Quantity())
	require.Equal(t, pricing.ZoneOutside, inst.Zone(), "delivery zone survives a reset")
	require.Empty(t, inst.Selection()["color"])
	require.False(t, inst.CanSubmit())
}

func TestInstanceVariableWithoutVariationsActsSimple(t *testing.T) {
	t.Parallel()
	payload := variablePayload()
	payload.Variations = nil
	inst := widget.NewInstance(payload, defaultOptions())

	require.Equal(t, widget.AvailabilitySimple, inst.Availability())
	require.True(t, inst.CanSubmit())
	require.Equal(t, int64(900), int64(inst.UnitPrice()), "base product price applies")
}

func TestInstancesAreIndependent(t *testing.T) {
	t.Parallel()
	a := widget.NewInstance(variablePayload(), defaultOptions())
	b := widget.NewInstance(variablePayload(), defaultOptions())
	require.NotEqual(t, a.ID(), b.ID())

	require.True(t, a.SelectAttribute("color", "blue"))
	a.SetQuantity(5)
	require.Empty(t, b.Selection()["color"])
	require.Equal(t, 1, b.Quantity())
}

func TestFallbackInstance(t *testing.T) {
	t.Parallel()
	inst := widget.NewFallbackInstance(42, 0, defaultOptions())

	require.Equal(t, widget.AvailabilitySimple, inst.Availability())
	require.True(t, inst.CanSubmit())
	require.Equal(t, pricing.FallbackBasePrice, inst.UnitPrice())
	require.Equal(t, int64(pricing.FallbackBasePrice+70), int64(inst.Total()))

	priced := widget.NewFallbackInstance(42, 350, defaultOptions())
	require.Equal(t, int64(350), int64(priced.UnitPrice()))
}
