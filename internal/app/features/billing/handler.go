// internal/app/features/billing/handler.go
package billing

import (
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeBilling renders the billing placeholder page. There is no payment
// integration; the page exists so admin navigation has somewhere to land.
func (h *Handler) ServeBilling(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Billing", "/dashboard"),
	}
	templates.Render(w, r, "billing", data)
}
