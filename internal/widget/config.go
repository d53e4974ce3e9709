package widget

import (
	"fmt"
	"regexp"

	"github.com/ronginpran/checkout-api/internal/charge"
	"github.com/ronginpran/checkout-api/internal/pricing"
	"github.com/ronginpran/checkout-api/internal/security"
)

// RenderConfig is the per-product boot configuration the embed script asks
// for before drawing a widget. The charge table is signed so that the same
// values echoed back at order time can be trusted.
type RenderConfig struct {
	ProductID int64 `json:"product_id"`

	Charges struct {
		Dhaka   int64 `json:"dhaka"`
		Outside int64 `json:"outside"`
	} `json:"charges"`
	ChargePayload string `json:"charge_payload"`
	ChargeHash    string `json:"charge_hash"`

	Nonce string `json:"nonce"`

	EnableQuantity  bool   `json:"enable_quantity"`
	SuccessRedirect bool   `json:"success_redirect"`
	WhatsAppLink    string `json:"whatsapp_link,omitempty"`
	FallbackPrice   int64  `json:"fallback_price"`
}

// ConfigService assembles render configurations.
type ConfigService struct {
	Signer charge.Signer
	Nonce  security.Nonce

	Charges         pricing.Charges
	EnableQuantity  bool
	SuccessRedirect bool
	WhatsAppNumber  string
}

// Render builds the boot configuration for a product. Positive override
// values replace the configured charges for this render only; the signed
// payload always covers the effective values.
func (s *ConfigService) Render(productID int64, override pricing.Charges) RenderConfig {
	charges := s.Charges
	if override.Dhaka > 0 {
		charges.Dhaka = override.Dhaka
	}
	if override.Outside > 0 {
		charges.Outside = override.Outside
	}
	encoded, hash := s.Signer.Issue(charge.Payload{ProductID: productID, Charges: charges})

	cfg := RenderConfig{
		ProductID:       productID,
		ChargePayload:   encoded,
		ChargeHash:      hash,
		Nonce:           s.Nonce.Issue(security.ActionWidget),
		EnableQuantity:  s.EnableQuantity,
		SuccessRedirect: s.SuccessRedirect,
		WhatsAppLink:    WhatsAppLink(s.WhatsAppNumber),
		FallbackPrice:   pricing.FallbackBasePrice,
	}
	cfg.Charges.Dhaka = charges.Dhaka
	cfg.Charges.Outside = charges.Outside
	return cfg
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppLink builds a wa.me link from a configured number. Local numbers
// get the country prefix; an empty number yields no link.
func WhatsAppLink(number string) string {
	digits := nonDigits.ReplaceAllString(number, "")
	if digits == "" {
		return ""
	}
	if digits[0] == '0' {
		digits = "880" + digits[1:]
	}
	return fmt.Sprintf("https://wa.me/%s", digits)
}
