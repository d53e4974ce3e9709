package pricing

import "strings"

// Money represents a monetary value in whole taka.
type Money = int64

const (
	// FallbackBasePrice is used when neither a variation price nor a
	// product price is available.
	FallbackBasePrice Money = 1200

	// MinQuantity and MaxQuantity bound a single order line.
	MinQuantity = 1
	MaxQuantity = 20

	currencyGlyph = "৳"
)

// Zone is a coarse delivery-cost category.
type Zone string

const (
	ZoneDhaka   Zone = "dhaka"
	ZoneOutside Zone = "outside"
)

// ParseZone maps a raw zone value to a known Zone. Unrecognized values fall
// back to Dhaka rather than erroring.
func ParseZone(raw string) Zone {
	switch Zone(strings.ToLower(strings.TrimSpace(raw))) {
	case ZoneOutside:
		return ZoneOutside
	default:
		return ZoneDhaka
	}
}

// Charges is the two-entry delivery charge table.
type Charges struct {
	Dhaka   Money
	Outside Money
}

// For returns the charge for a zone, defaulting to the Dhaka entry.
func (c Charges) For(zone Zone) Money {
	if zone == ZoneOutside {
		return c.Outside
	}
	return c.Dhaka
}

// ClampQuantity bounds a quantity to [MinQuantity, MaxQuantity]. Zero and
// negative values (the coercion result for non-numeric input) become 1.
func ClampQuantity(qty int) int {
	if qty < MinQuantity {
		return MinQuantity
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}

// ResolveBasePrice picks the unit price: matched variation first, then the
// product price, then the fixed fallback.
func ResolveBasePrice(variationPrice, productPrice Money) Money {
	if variationPrice > 0 {
		return variationPrice
	}
	if productPrice > 0 {
		return productPrice
	}
	return FallbackBasePrice
}

// DisplayTotal computes base*qty + zone charge with the quantity clamped.
func DisplayTotal(base Money, qty int, zoneCharge Money) Money {
	return base*Money(ClampQuantity(qty)) + zoneCharge
}

// FormatDisplay renders an amount with the currency glyph and thousands
// grouping, e.g. 1070 -> "৳ 1,070".
func FormatDisplay(amount Money) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := []byte{}
	if amount == 0 {
		digits = append(digits, '0')
	}
	for amount > 0 {
		digits = append(digits, byte('0'+amount%10))
		amount /= 10
	}

	var b strings.Builder
	b.WriteString(currencyGlyph)
	b.WriteByte(' ')
	if neg {
		b.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte(',')
		}
	}
	return b.String()
}
