package catalog

// Product is the purchasable item a widget instance sells.
type Product struct {
	ID           int64
	Name         string
	Price        int64
	RegularPrice int64
	Type         string
	InStock      bool
	Purchasable  bool
}

// ProductTypeVariable marks products whose price and stock live on variations.
const ProductTypeVariable = "variable"

// IsVariable reports whether the product defines variations.
func (p Product) IsVariable() bool {
	return p.Type == ProductTypeVariable
}

// AttributePair is one attribute-name/option binding on a variation.
type AttributePair struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// VariationRecord is a stored variation row.
type VariationRecord struct {
	ID          int64
	ProductID   int64
	Price       int64
	InStock     bool
	Purchasable bool
	Attributes  []AttributePair
}

// Sellable reports whether the variation may appear in widget payloads or
// be placed on an order.
func (v VariationRecord) Sellable() bool {
	return v.InStock && v.Purchasable
}

// AttributeRecord is a declared product attribute.
type AttributeRecord struct {
	Slug             string
	Label            string
	Options          []string
	UsedForVariation bool
}
