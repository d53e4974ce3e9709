package order

import (
	"net/http"

	"github.com/ronginpran/checkout-api/internal/common"
	"github.com/ronginpran/checkout-api/internal/contact"
	"github.com/ronginpran/checkout-api/internal/obs"
	"github.com/ronginpran/checkout-api/internal/pricing"
	"github.com/ronginpran/checkout-api/internal/security"
)

// Handler exposes the widget order endpoint.
type Handler struct {
	Svc   *Service
	Nonce security.Nonce
}

// Create handles POST /api/v1/widget/orders. The request is form-encoded.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		common.WriteError(w, common.NewAppError("BAD_REQUEST", "Malformed form body", http.StatusBadRequest, err))
		return
	}
	if !h.Nonce.Verify(common.FormValue(r, "nonce"), security.ActionWidget) {
		obs.IncNonceFailure()
		common.WriteError(w, common.Unauthorized("Invalid request"))
		return
	}

	in := Input{
		Contact: contact.Details{
			FirstName: common.FormValue(r, "first_name"),
			Phone:     common.FormValue(r, "phone"),
			Address:   common.FormValue(r, "address"),
			Email:     common.FormValue(r, "email"),
		},
		ProductID:     common.ParseInt64Default(common.FormValue(r, "product_id"), 0),
		VariationID:   common.ParseInt64Default(common.FormValue(r, "variation_id"), 0),
		Quantity:      common.AtoiDefault(common.FormValue(r, "quantity"), 1),
		Zone:          common.FormValue(r, "delivery_zone"),
		ChargePayload: common.FormValue(r, "charge_payload"),
		ChargeHash:    common.FormValue(r, "charge_hash"),
		Source:        common.FormValue(r, "source"),
	}

	zone := string(pricing.ParseZone(in.Zone))
	result, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		obs.IncOrderCreated("error", zone)
		common.WriteError(w, err)
		return
	}
	obs.IncOrderCreated("ok", zone)
	common.JSONData(w, http.StatusCreated, result)
}
