package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"service-shipping-go/internal/domain"
	"service-shipping-go/internal/gateway/shipper"
	"service-shipping-go/internal/http/handlers"
	"service-shipping-go/internal/http/router"
	"service-shipping-go/internal/logx"

	"github.com/stretchr/testify/require"
)

// stubGateway answers every operation with an empty success envelope.
type stubGateway struct {
	lastOrderID string
}

func (s *stubGateway) SearchLocation(context.Context, string, string) (*shipper.Result[[]domain.Location], error) {
	return &shipper.Result[[]domain.Location]{Data: []domain.Location{}}, nil
}

func (s *stubGateway) CheckShippingCost(context.Context, domain.RateRequest, string) (*shipper.Result[shipper.PricingData], error) {
	return &shipper.Result[shipper.PricingData]{}, nil
}

func (s *stubGateway) CreateOrder(context.Context, any) (*shipper.Result[domain.Order], error) {
	return &shipper.Result[domain.Order]{}, nil
}

func (s *stubGateway) GetOrderDetails(_ context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error) {
	s.lastOrderID = orderID
	return &shipper.Result[domain.TrackingRecord]{Data: domain.TrackingRecord{OrderID: orderID}}, nil
}

func (s *stubGateway) GetPickupTimeslots(context.Context, string) (*shipper.Result[shipper.TimeslotData], error) {
	return &shipper.Result[shipper.TimeslotData]{}, nil
}

func (s *stubGateway) CreatePickup(context.Context, json.RawMessage) (*shipper.Result[json.RawMessage], error) {
	return &shipper.Result[json.RawMessage]{}, nil
}

func (s *stubGateway) CancelPickup(context.Context, string) (*shipper.Result[json.RawMessage], error) {
	return &shipper.Result[json.RawMessage]{}, nil
}

func (s *stubGateway) GetPrintDocument(context.Context, []string, domain.DocumentType) (*shipper.Result[shipper.DocumentData], error) {
	return &shipper.Result[shipper.DocumentData]{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubGateway) {
	t.Helper()
	gw := &stubGateway{}
	h := handlers.New(gw, logx.Nop())
	return router.New(h, logx.Nop()), gw
}

func TestRouter_RoutesMounted(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/ping", "", http.StatusOK},
		{http.MethodHead, "/healthcheck", "", http.StatusNoContent},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/location?keyword=x", "", http.StatusOK},
		{http.MethodPost, "/api/shipping-cost", "{}", http.StatusOK},
		{http.MethodPost, "/api/orders", "{}", http.StatusOK},
		{http.MethodGet, "/api/orders/ORD-1", "", http.StatusOK},
		{http.MethodGet, "/api/pickup/timeslots", "", http.StatusOK},
		{http.MethodPost, "/api/pickup", "{}", http.StatusOK},
		{http.MethodPatch, "/api/pickup/cancel", `{"pickupCode":"X"}`, http.StatusOK},
		{http.MethodPost, "/api/label", `{"id":["A"],"type":"LBL"}`, http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, tc.want, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_OrderIDParam(t *testing.T) {
	r, gw := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders/ORD-42", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ORD-42", gw.lastOrderID)
}
