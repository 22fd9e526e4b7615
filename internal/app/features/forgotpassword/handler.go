// internal/app/features/forgotpassword/handler.go
package forgotpassword

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

// ServeForgotPassword renders the recovery instructions page. There is no
// self-service reset flow; users are directed to their workspace owner.
func (h *Handler) ServeForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
	}
	templates.Render(w, r, "forgot_password", data)
}
