package widget

import (
	"net/http"
	"strings"

	"github.com/ronginpran/checkout-api/internal/common"
	"github.com/ronginpran/checkout-api/internal/pricing"
)

// Handler exposes the widget configuration endpoint.
type Handler struct {
	Svc *ConfigService
}

// Config handles GET /api/v1/widget/config?product_id=N. It issues the
// nonce and signed charge payload the embed script needs, so it takes no
// nonce itself. Optional dhaka and outside parameters override the
// configured charges for this embed when positive.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID := common.ParseInt64Default(strings.TrimSpace(q.Get("product_id")), 0)
	if productID <= 0 {
		common.WriteError(w, common.ValidationError("Invalid product", []string{"product_id must be a positive integer"}))
		return
	}
	override := pricing.Charges{
		Dhaka:   common.ParseInt64Default(strings.TrimSpace(q.Get("dhaka")), 0),
		Outside: common.ParseInt64Default(strings.TrimSpace(q.Get("outside")), 0),
	}
	common.JSONData(w, http.StatusOK, h.Svc.Render(productID, override))
}
