// Package order implements cash-on-delivery order creation for the checkout
// widget: contact validation, variation and stock checks, delivery charge
// resolution, and persistence of the order with its line, fee, and meta rows.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ronginpran/checkout-api/internal/catalog"
	"github.com/ronginpran/checkout-api/internal/charge"
	"github.com/ronginpran/checkout-api/internal/common"
	"github.com/ronginpran/checkout-api/internal/contact"
	"github.com/ronginpran/checkout-api/internal/lock"
	"github.com/ronginpran/checkout-api/internal/obs"
	"github.com/ronginpran/checkout-api/internal/pricing"
	"github.com/ronginpran/checkout-api/internal/widget"
)

// DeliveryFeeLabel is the fee line name shown on the order, kept in Bengali
// to match the storefront.
const DeliveryFeeLabel = "ডেলিভারি চার্জ"

// DefaultSource tags orders placed through the embedded widget.
const DefaultSource = "widget"

// CatalogReader is the catalog surface order creation depends on.
type CatalogReader interface {
	GetProductByID(ctx context.Context, id int64) (catalog.Product, error)
	GetVariationByID(ctx context.Context, id int64) (catalog.VariationRecord, error)
}

// Store persists orders.
type Store interface {
	CreateOrder(ctx context.Context, o NewOrder) (Created, error)
}

// NewOrder is a fully validated order ready to persist.
type NewOrder struct {
	Contact contact.Details

	ProductID   int64
	ProductName string
	VariationID int64
	Quantity    int
	UnitPrice   pricing.Money

	DeliveryZone   pricing.Zone
	DeliveryCharge pricing.Money
	Total          pricing.Money

	Source string
}

// Created identifies a persisted order.
type Created struct {
	ID     int64
	Number string
}

// Input carries the raw submission fields after form decoding.
type Input struct {
	Contact contact.Details

	ProductID   int64
	VariationID int64
	Quantity    int
	Zone        string

	ChargePayload string
	ChargeHash    string

	Source string
}

// Result is the order creation response payload.
type Result struct {
	OrderID         int64  `json:"order_id"`
	OrderNumber     string `json:"order_number"`
	SuccessRedirect bool   `json:"success_redirect"`
	ThankYouURL     string `json:"thankyou_url,omitempty"`
	WhatsAppLink    string `json:"whatsapp_link,omitempty"`
}

// Service creates COD orders.
type Service struct {
	Catalog CatalogReader
	Store   Store
	Signer  charge.Signer
	Guard   lock.SubmitGuard
	Log     zerolog.Logger

	DefaultCharges  pricing.Charges
	EnableQuantity  bool
	SuccessRedirect bool
	StoreBaseURL    string
	WhatsAppNumber  string
}

// Create validates the submission and persists the order. Charge payload
// verification never fails the order: a rejected payload is counted and the
// configured defaults apply instead.
func (s *Service) Create(ctx context.Context, in Input) (Result, error) {
	in.Contact = in.Contact.Normalize()
	if msgs := in.Contact.Validate(); len(msgs) > 0 {
		return Result{}, common.ValidationError("Please correct the highlighted fields", msgs)
	}

	if in.ProductID <= 0 {
		return Result{}, common.ValidationError("Invalid product", []string{"product_id must be a positive integer"})
	}

	product, err := s.Catalog.GetProductByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNoRows) {
			return Result{}, common.NotFound("Product not found")
		}
		return Result{}, err
	}

	// A variation is only validated when one was submitted. A variable
	// product without sellable variations sells at its base price, so a
	// missing variation_id never blocks the order.
	var (
		variationPrice pricing.Money
		variationID    int64
	)
	if in.VariationID > 0 {
		rec, err := s.Catalog.GetVariationByID(ctx, in.VariationID)
		if err != nil {
			if errors.Is(err, catalog.ErrNoRows) {
				return Result{}, common.NotFound("Variation not found")
			}
			return Result{}, err
		}
		if rec.ProductID != product.ID {
			return Result{}, common.NewAppError("BAD_REQUEST", "Variation does not belong to this product", 400, nil)
		}
		if !rec.Sellable() {
			return Result{}, common.Unavailable("This option is out of stock")
		}
		variationPrice = rec.Price
		variationID = rec.ID
	} else if !product.InStock || !product.Purchasable {
		return Result{}, common.Unavailable("This product is out of stock")
	}

	zone := pricing.ParseZone(in.Zone)
	charges, trusted := s.Signer.ResolveCharges(in.ChargePayload, in.ChargeHash, product.ID, s.DefaultCharges)
	if !trusted {
		obs.IncChargeRejected()
		s.Log.Warn().
			Int64("product_id", product.ID).
			Msg("charge payload rejected, using configured defaults")
	}

	qty := 1
	if s.EnableQuantity {
		qty = pricing.ClampQuantity(in.Quantity)
	}

	unit := pricing.ResolveBasePrice(variationPrice, product.Price)
	deliveryCharge := charges.For(zone)
	total := unit*pricing.Money(qty) + deliveryCharge

	source := in.Source
	if source == "" {
		source = DefaultSource
	}

	release, acquired := s.Guard.Acquire(ctx, in.Contact.Phone)
	if !acquired {
		return Result{}, common.NewAppError("DUPLICATE_SUBMIT", "An order is already being placed, please wait", 409, nil)
	}
	defer release()

	created, err := s.Store.CreateOrder(ctx, NewOrder{
		Contact:        in.Contact,
		ProductID:      product.ID,
		ProductName:    product.Name,
		VariationID:    variationID,
		Quantity:       qty,
		UnitPrice:      unit,
		DeliveryZone:   zone,
		DeliveryCharge: deliveryCharge,
		Total:          total,
		Source:         source,
	})
	if err != nil {
		return Result{}, fmt.Errorf("persist order: %w", err)
	}

	s.Log.Info().
		Int64("order_id", created.ID).
		Int64("product_id", product.ID).
		Str("zone", string(zone)).
		Int("quantity", qty).
		Int64("total", total).
		Msg("order created")

	return Result{
		OrderID:         created.ID,
		OrderNumber:     created.Number,
		SuccessRedirect: s.SuccessRedirect,
		ThankYouURL:     s.thankYouURL(created),
		WhatsAppLink:    s.whatsAppLink(created),
	}, nil
}

// thankYouURL is only populated when the redirect is enabled; otherwise the
// widget shows its inline confirmation.
func (s *Service) thankYouURL(created Created) string {
	if !s.SuccessRedirect || s.StoreBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/thank-you/%d", s.StoreBaseURL, created.ID)
}

func (s *Service) whatsAppLink(created Created) string {
	base := widget.WhatsAppLink(s.WhatsAppNumber)
	if base == "" {
		return ""
	}
	return base + "?text=" + url.QueryEscape("Order: "+created.Number)
}
