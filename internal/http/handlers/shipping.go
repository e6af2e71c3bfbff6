package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"service-shipping-go/internal/domain"
)

// SearchLocation handles GET /api/location.
func (h *Handlers) SearchLocation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Gateway.SearchLocation(r.Context(), q.Get("keyword"), q.Get("admLevel"))
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// shippingCostRequest is the pricing request body with the optional
// rateType routing field, which is stripped before forwarding.
type shippingCostRequest struct {
	RateType string `json:"rateType,omitempty"`
	domain.RateRequest
}

// CheckShippingCost handles POST /api/shipping-cost.
func (h *Handlers) CheckShippingCost(w http.ResponseWriter, r *http.Request) {
	var req shippingCostRequest
	if ok := decodeJSON(h.Logger, w, r, &req); !ok {
		return
	}
	res, err := h.Gateway.CheckShippingCost(r.Context(), req.RateRequest, req.RateType)
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// CreateOrder handles POST /api/orders. The payload passes through to
// the provider unchanged.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if ok := decodeJSON(h.Logger, w, r, &payload); !ok {
		return
	}
	res, err := h.Gateway.CreateOrder(r.Context(), payload)
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// OrderDetails handles GET /api/orders/{orderId}.
func (h *Handlers) OrderDetails(w http.ResponseWriter, r *http.Request) {
	res, err := h.Gateway.GetOrderDetails(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// PickupTimeslots handles GET /api/pickup/timeslots.
func (h *Handlers) PickupTimeslots(w http.ResponseWriter, r *http.Request) {
	res, err := h.Gateway.GetPickupTimeslots(r.Context(), r.URL.Query().Get("timezone"))
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// CreatePickup handles POST /api/pickup. The payload passes through to
// the provider unchanged.
func (h *Handlers) CreatePickup(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if ok := decodeJSON(h.Logger, w, r, &payload); !ok {
		return
	}
	res, err := h.Gateway.CreatePickup(r.Context(), payload)
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

type cancelPickupRequest struct {
	PickupCode string `json:"pickupCode"`
}

// CancelPickup handles PATCH /api/pickup/cancel.
func (h *Handlers) CancelPickup(w http.ResponseWriter, r *http.Request) {
	var req cancelPickupRequest
	if ok := decodeJSON(h.Logger, w, r, &req); !ok {
		return
	}
	res, err := h.Gateway.CancelPickup(r.Context(), req.PickupCode)
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}

// stringList accepts either a JSON array of strings or a bare string,
// which counts as a one-element list.
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

type printDocumentRequest struct {
	ID   stringList          `json:"id"`
	Type domain.DocumentType `json:"type"`
}

// PrintDocument handles POST /api/label. The structural checks run here,
// before any call leaves the process.
func (h *Handlers) PrintDocument(w http.ResponseWriter, r *http.Request) {
	var req printDocumentRequest
	if ok := decodeJSON(h.Logger, w, r, &req); !ok {
		return
	}
	if req.Type == "" {
		req.Type = domain.DocumentLabel
	}
	if len(req.ID) == 0 {
		writeError(h.Logger, w, r, http.StatusBadRequest, "Order IDs must be provided as a non-empty array")
		return
	}
	if !req.Type.Valid() {
		writeError(h.Logger, w, r, http.StatusBadRequest, `Type must be either "LBL" for label or "RCP" for receipt`)
		return
	}

	res, err := h.Gateway.GetPrintDocument(r.Context(), []string(req.ID), req.Type)
	if err != nil {
		writeGatewayError(h.Logger, w, r, err)
		return
	}
	writeResult(h.Logger, w, r, res)
}
