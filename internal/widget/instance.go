// Package widget models one embedded checkout widget: the render-time
// configuration it boots from and the per-instance selection state machine.
// Several instances can live on the same page, each with independent state.
package widget

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ronginpran/checkout-api/internal/catalog"
	"github.com/ronginpran/checkout-api/internal/pricing"
	"github.com/ronginpran/checkout-api/internal/variation"
)

// Availability describes what the current selection identifies.
type Availability string

const (
	// AvailabilitySimple means the product has no attribute dimensions.
	AvailabilitySimple Availability = "simple"
	// AvailabilityChoosing means the selection is incomplete but at least
	// one variation still agrees with it.
	AvailabilityChoosing Availability = "choosing"
	// AvailabilityMatched means the selection identifies exactly one
	// purchasable variation.
	AvailabilityMatched Availability = "matched"
	// AvailabilityDeadEnd means no variation agrees with the current
	// constraints.
	AvailabilityDeadEnd Availability = "dead_end"
)

// Options are the deployment toggles an instance honors.
type Options struct {
	Charges        pricing.Charges
	EnableQuantity bool
}

// Instance is the state of one widget on one page. All methods are safe for
// concurrent use.
type Instance struct {
	mu sync.Mutex

	id         string
	productID  int64
	basePrice  pricing.Money
	meta       *variation.Meta
	variations []variation.Variation

	sel        variation.Selection
	quantity   int
	zone       pricing.Zone
	submitting bool

	opts Options
}

// NewInstance builds an instance from a loaded product payload. A variable
// product without a single sellable variation degrades to the
// simple-product path so the widget stays usable at the base price.
func NewInstance(payload catalog.ProductPayload, opts Options) *Instance {
	variations := catalog.ToVariations(payload.Variations)
	var meta *variation.Meta
	if len(variations) == 0 {
		meta = variation.BuildMeta(nil, nil)
		variations = nil
	} else {
		declared := make([]variation.MetaSource, 0, len(payload.Attributes))
		for _, attr := range payload.Attributes {
			declared = append(declared, variation.MetaSource{Slug: attr.Slug, Label: attr.Label})
		}
		meta = variation.BuildMeta(declared, variations)
	}

	inst := &Instance{
		id:         uuid.NewString(),
		productID:  payload.Product.ID,
		basePrice:  payload.Product.Price,
		meta:       meta,
		variations: variations,
		opts:       opts,
	}
	inst.bootLocked()
	return inst
}

// NewFallbackInstance builds a simple-product instance for when the product
// payload could not be loaded. The widget stays usable with the price known
// at render time.
func NewFallbackInstance(productID int64, price pricing.Money, opts Options) *Instance {
	inst := &Instance{
		id:        uuid.NewString(),
		productID: productID,
		basePrice: price,
		meta:      variation.BuildMeta(nil, nil),
		opts:      opts,
	}
	inst.bootLocked()
	return inst
}

func (i *Instance) bootLocked() {
	i.zone = pricing.ZoneDhaka
	i.resetLocked()
}

// resetLocked returns selection, quantity, and the in-flight flag to their
// boot state. The zone survives: a repeat customer keeps their area.
func (i *Instance) resetLocked() {
	i.sel = i.meta.EmptySelection()
	i.quantity = pricing.MinQuantity
	i.submitting = false
}

// ID identifies this instance; several widgets for the same product on one
// page each get their own.
func (i *Instance) ID() string {
	return i.id
}

// ProductID returns the product this instance sells.
func (i *Instance) ProductID() int64 {
	return i.productID
}

// SelectAttribute records an option choice. An empty option clears the
// attribute. Choosing an option that invalidates other selected attributes
// clears those attributes instead of silently rewriting them, so the shopper
// always sees what changed. Unknown slugs and options not offered for the
// slug are ignored.
func (i *Instance) SelectAttribute(rawSlug, option string) bool {
	slug := variation.NormalizeSlug(rawSlug)
	attr, ok := i.meta.Lookup(slug)
	if !ok {
		return false
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if option == "" {
		i.sel[slug] = ""
		return true
	}
	if !contains(attr.Options, option) {
		return false
	}

	i.sel[slug] = option
	for _, other := range i.meta.Slugs() {
		if other == slug {
			continue
		}
		chosen := i.sel[other]
		if chosen == "" {
			continue
		}
		if !contains(variation.AllowedOptions(other, i.sel, i.variations), chosen) {
			i.sel[other] = ""
		}
	}
	return true
}

// OptionsFor returns the options currently reachable for a slug given the
// other attributes' selections.
func (i *Instance) OptionsFor(rawSlug string) []string {
	slug := variation.NormalizeSlug(rawSlug)
	i.mu.Lock()
	defer i.mu.Unlock()
	return variation.AllowedOptions(slug, i.sel, i.variations)
}

// Selection returns a snapshot of the current choices.
func (i *Instance) Selection() variation.Selection {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.sel.Clone()
}

// Availability classifies the current selection.
func (i *Instance) Availability() Availability {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.availabilityLocked()
}

func (i *Instance) availabilityLocked() Availability {
	if i.meta.Len() == 0 {
		return AvailabilitySimple
	}
	if variation.FindExactMatch(i.sel, i.meta.Slugs(), i.variations) != nil {
		return AvailabilityMatched
	}
	if variation.HasAnyMatch(i.sel, i.variations) {
		return AvailabilityChoosing
	}
	return AvailabilityDeadEnd
}

// MatchedVariation returns the variation the current selection identifies,
// or nil.
func (i *Instance) MatchedVariation() *variation.Variation {
	i.mu.Lock()
	defer i.mu.Unlock()
	return variation.FindExactMatch(i.sel, i.meta.Slugs(), i.variations)
}

// SetQuantity records the desired quantity, clamped to the allowed range.
// It pins to one when the quantity selector is disabled.
func (i *Instance) SetQuantity(qty int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.opts.EnableQuantity {
		i.quantity = pricing.MinQuantity
		return
	}
	i.quantity = pricing.ClampQuantity(qty)
}

// Quantity returns the current quantity.
func (i *Instance) Quantity() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.quantity
}

// SelectZone records the delivery zone.
func (i *Instance) SelectZone(raw string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.zone = pricing.ParseZone(raw)
}

// Zone returns the current delivery zone.
func (i *Instance) Zone() pricing.Zone {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.zone
}

// UnitPrice resolves the current unit price: matched variation first, then
// the product price, then the fixed fallback.
func (i *Instance) UnitPrice() pricing.Money {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.unitPriceLocked()
}

func (i *Instance) unitPriceLocked() pricing.Money {
	var variationPrice pricing.Money
	if v := variation.FindExactMatch(i.sel, i.meta.Slugs(), i.variations); v != nil {
		variationPrice = v.Price
	}
	return pricing.ResolveBasePrice(variationPrice, i.basePrice)
}

// Total computes the amount the shopper sees: unit price times quantity plus
// the zone's delivery charge.
func (i *Instance) Total() pricing.Money {
	i.mu.Lock()
	defer i.mu.Unlock()
	return pricing.DisplayTotal(i.unitPriceLocked(), i.quantity, i.opts.Charges.For(i.zone))
}

// DisplayTotal renders the total with the currency glyph and grouping.
func (i *Instance) DisplayTotal() string {
	return pricing.FormatDisplay(i.Total())
}

// CanSubmit reports whether a submission is currently allowed: a simple
// product, or a selection that identifies a variation.
func (i *Instance) CanSubmit() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch i.availabilityLocked() {
	case AvailabilitySimple, AvailabilityMatched:
		return !i.submitting
	default:
		return false
	}
}

// BeginSubmit marks a submission in flight. It reports false when one is
// already running or the selection is not submittable, making a double tap
// a no-op.
func (i *Instance) BeginSubmit() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.submitting {
		return false
	}
	switch i.availabilityLocked() {
	case AvailabilitySimple, AvailabilityMatched:
	default:
		return false
	}
	i.submitting = true
	return true
}

// EndSubmit clears the in-flight flag after a failed submission so the
// shopper can retry.
func (i *Instance) EndSubmit() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.submitting = false
}

// Reset returns the instance to its boot state after a successful order.
func (i *Instance) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.resetLocked()
}

func contains(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}
