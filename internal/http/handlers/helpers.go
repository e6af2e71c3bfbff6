package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/gateway/shipper"
	"service-shipping-go/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(l logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		l.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
	}
}

// writeResult forwards a gateway result. The provider's data block goes
// out untouched when available, so fields outside the typed model survive
// the proxy hop; results built without a wire response fall back to the
// typed re-encode.
func writeResult[T any](l logx.Logger, w http.ResponseWriter, r *http.Request, res *shipper.Result[T]) {
	if len(res.Raw) > 0 {
		writeJSON(l, w, r, http.StatusOK, shipper.Result[json.RawMessage]{
			Metadata: res.Metadata,
			Data:     res.Raw,
		})
		return
	}
	writeJSON(l, w, r, http.StatusOK, res)
}

// errResponse is the uniform error body: the status repeated in the
// payload plus a single human-readable message.
type errResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(l logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	l.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(l, w, r, status, errResponse{Status: status, Message: msg})
}

// writeGatewayError maps a normalized gateway error to its HTTP response.
func writeGatewayError(l logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	writeError(l, w, r, apperr.StatusOf(err), apperr.MessageOf(err))
}

const bodyLimit = 1 << 20

func decodeJSON[T any](l logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		writeError(l, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(l, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}
