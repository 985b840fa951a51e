package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := a.dashboardSvc.Overview(r.Context())
	if err != nil {
		a.respondServerError(w, "Server error while building dashboard", err)
		return
	}
	respondData(w, http.StatusOK, overview, "")
}

func (a *API) handleListPaymentOutbox(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	records, err := a.outbox.ListUnresolved(r.Context(), limit)
	if err != nil {
		a.respondServerError(w, "Server error while listing payment outbox", err)
		return
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"id":                 rec.ID,
			"orderId":            rec.OrderID,
			"gateway_order_id":   rec.GatewayOrderID,
			"gateway_payment_id": rec.GatewayPaymentID,
			"reason":             rec.Reason,
			"createdAt":          rec.CreatedAt,
		})
	}
	respondData(w, http.StatusOK, out, "")
}

func (a *API) handleResolvePaymentOutbox(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid outbox record id")
		return
	}
	if err := a.outbox.MarkResolved(r.Context(), id); err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Outbox record resolved")
}
