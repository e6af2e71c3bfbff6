package shipper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/domain"
)

// DefaultRateType is the pricing endpoint used when no rate type is given.
const DefaultRateType = "regular"

// DefaultTimezone is the timeslot timezone used when none is given.
const DefaultTimezone = "Asia/Jakarta"

// PricingData is the data block of a domestic pricing response.
type PricingData struct {
	Pricings []domain.RateQuote `json:"pricings"`
}

// TimeslotData is the data block of a pickup timeslot response.
type TimeslotData struct {
	Timeslots []Timeslot `json:"time_slots"`
}

// Timeslot is a single pickup window.
type Timeslot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DocumentData is the data block of a print-document response.
type DocumentData struct {
	URL string `json:"url"`
}

// SearchLocation resolves a free-text keyword to location candidates.
// admLevel optionally narrows the search to one administrative level.
func (c *Client) SearchLocation(ctx context.Context, keyword, admLevel string) (*Result[[]domain.Location], error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, apperr.NewValidation("keyword is required")
	}
	q := url.Values{"keyword": {keyword}}
	if admLevel != "" {
		q.Set("adm_level", admLevel)
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/location", q, nil)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[[]domain.Location](c, req)
}

// CheckShippingCost quotes couriers for a route and package. rateType
// selects the pricing endpoint; empty means DefaultRateType.
func (c *Client) CheckShippingCost(ctx context.Context, data domain.RateRequest, rateType string) (*Result[PricingData], error) {
	if rateType == "" {
		rateType = DefaultRateType
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/v3/pricing/domestic/"+rateType, nil, data)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[PricingData](c, req)
}

// CreateOrder submits an order payload and returns the created order.
// payload may be a domain.OrderPayload or a raw body forwarded by the router.
func (c *Client) CreateOrder(ctx context.Context, payload any) (*Result[domain.Order], error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/v3/order", nil, payload)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[domain.Order](c, req)
}

// GetOrderDetails fetches an order with its tracking snapshot.
func (c *Client) GetOrderDetails(ctx context.Context, orderID string) (*Result[domain.TrackingRecord], error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.NewValidation("order id is required")
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/order/"+url.PathEscape(orderID), nil, nil)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[domain.TrackingRecord](c, req)
}

// GetPickupTimeslots lists available pickup windows for a timezone.
func (c *Client) GetPickupTimeslots(ctx context.Context, timezone string) (*Result[TimeslotData], error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	q := url.Values{"time_zone": {timezone}}
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/pickup/timeslot", q, nil)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[TimeslotData](c, req)
}

// CreatePickup schedules a pickup. The payload passes through unchanged.
func (c *Client) CreatePickup(ctx context.Context, data json.RawMessage) (*Result[json.RawMessage], error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/v3/pickup/timeslot", nil, data)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[json.RawMessage](c, req)
}

// CancelPickup cancels a scheduled pickup by its code.
func (c *Client) CancelPickup(ctx context.Context, pickupCode string) (*Result[json.RawMessage], error) {
	if strings.TrimSpace(pickupCode) == "" {
		return nil, apperr.NewValidation("pickup code is required")
	}
	body := map[string]string{"pickup_code": pickupCode}
	req, err := c.newRequest(ctx, http.MethodPatch, "/v3/pickup/cancel", nil, body)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[json.RawMessage](c, req)
}

// GetPrintDocument requests a label or receipt document URL for the given
// orders. Validation happens before any network call.
func (c *Client) GetPrintDocument(ctx context.Context, orderIDs []string, docType domain.DocumentType) (*Result[DocumentData], error) {
	if len(orderIDs) == 0 {
		return nil, apperr.NewValidation("order ids must be a non-empty list")
	}
	if !docType.Valid() {
		return nil, apperr.NewValidation("document type must be %q or %q", domain.DocumentLabel, domain.DocumentReceipt)
	}
	body := map[string]any{"id": orderIDs, "type": docType}
	req, err := c.newRequest(ctx, http.MethodPost, "/v3/order/label", nil, body)
	if err != nil {
		return nil, &apperr.Transport{Message: err.Error()}
	}
	return call[DocumentData](c, req)
}
