package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/pricing"
)

func TestClampQuantity(t *testing.T) {
	t.Parallel()
	cases := map[int]int{
		-5: 1,
		0:  1,
		1:  1,
		7:  7,
		20: 20,
		25: 20,
	}
	for in, want := range cases {
		require.Equal(t, want, pricing.ClampQuantity(in), "input %d", in)
	}
}

func TestResolveBasePrice(t *testing.T) {
	t.Parallel()
	require.EqualValues(t, 500, pricing.ResolveBasePrice(500, 450))
	require.EqualValues(t, 450, pricing.ResolveBasePrice(0, 450))
	require.EqualValues(t, pricing.FallbackBasePrice, pricing.ResolveBasePrice(0, 0))
}

func TestDisplayTotal(t *testing.T) {
	t.Parallel()

	t.Run("two units plus dhaka charge", func(t *testing.T) {
		require.EqualValues(t, 1070, pricing.DisplayTotal(500, 2, 70))
	})

	t.Run("clamps quantity before multiplying", func(t *testing.T) {
		require.EqualValues(t, 570, pricing.DisplayTotal(500, 0, 70))
		require.EqualValues(t, 500*20+130, pricing.DisplayTotal(500, 99, 130))
	})

	t.Run("monotonic in quantity", func(t *testing.T) {
		prev := pricing.DisplayTotal(500, 1, 70)
		for qty := 2; qty <= 25; qty++ {
			total := pricing.DisplayTotal(500, qty, 70)
			require.GreaterOrEqual(t, total, prev)
			prev = total
		}
	})
}

func TestParseZoneAndCharges(t *testing.T) {
	t.Parallel()
	charges := pricing.Charges{Dhaka: 70, Outside: 130}

	require.Equal(t, pricing.ZoneOutside, pricing.ParseZone("outside"))
	require.Equal(t, pricing.ZoneDhaka, pricing.ParseZone("dhaka"))
	require.Equal(t, pricing.ZoneDhaka, pricing.ParseZone(" DHAKA "))
	require.Equal(t, pricing.ZoneDhaka, pricing.ParseZone("mars"))
	require.Equal(t, pricing.ZoneDhaka, pricing.ParseZone(""))

	require.EqualValues(t, 130, charges.For(pricing.ZoneOutside))
	require.EqualValues(t, 70, charges.For(pricing.ZoneDhaka))
	require.EqualValues(t, 70, charges.For(pricing.ParseZone("unknown")))
}

func TestFormatDisplay(t *testing.T) {
	t.Parallel()
	cases := map[int64]string{
		0:       "৳ 0",
		70:      "৳ 70",
		999:     "৳ 999",
		1070:    "৳ 1,070",
		25500:   "৳ 25,500",
		1234567: "৳ 1,234,567",
	}
	for amount, want := range cases {
		require.Equal(t, want, pricing.FormatDisplay(amount), "amount %d", amount)
	}
}
