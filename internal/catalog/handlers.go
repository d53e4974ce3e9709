package catalog

import (
	"net/http"

	"github.com/ronginpran/checkout-api/internal/common"
	"github.com/ronginpran/checkout-api/internal/obs"
	"github.com/ronginpran/checkout-api/internal/security"
)

// Handler exposes the widget product endpoint.
type Handler struct {
	Svc   *Service
	Nonce security.Nonce
}

// GetProduct handles POST /api/v1/widget/product. The request is
// form-encoded with product_id and nonce fields.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		common.WriteError(w, common.NewAppError("BAD_REQUEST", "Malformed form body", http.StatusBadRequest, err))
		return
	}
	if !h.Nonce.Verify(common.FormValue(r, "nonce"), security.ActionWidget) {
		obs.IncNonceFailure()
		common.WriteError(w, common.Unauthorized("Invalid request"))
		return
	}

	productID := common.ParseInt64Default(common.FormValue(r, "product_id"), 0)
	if productID <= 0 {
		common.WriteError(w, common.ValidationError("Invalid product", []string{"product_id must be a positive integer"}))
		return
	}

	payload, err := h.Svc.GetProduct(r.Context(), productID)
	if err != nil {
		obs.IncProductLoad("error")
		common.WriteError(w, err)
		return
	}
	obs.IncProductLoad("ok")
	common.JSONData(w, http.StatusOK, payload)
}
