package handlers

import (
	"context"
	"encoding/json"

	"service-shipping-go/internal/domain"
	"service-shipping-go/internal/gateway/shipper"
)

// Gateway is the provider gateway surface the HTTP handlers delegate to.
type Gateway interface {
	SearchLocation(ctx context.Context, keyword, admLevel string) (*shipper.Result[[]domain.Location], error)
	CheckShippingCost(ctx context.Context, data domain.RateRequest, rateType string) (*shipper.Result[shipper.PricingData], error)
	CreateOrder(ctx context.Context, payload any) (*shipper.Result[domain.Order], error)
	GetOrderDetails(ctx context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error)
	GetPickupTimeslots(ctx context.Context, timezone string) (*shipper.Result[shipper.TimeslotData], error)
	CreatePickup(ctx context.Context, data json.RawMessage) (*shipper.Result[json.RawMessage], error)
	CancelPickup(ctx context.Context, pickupCode string) (*shipper.Result[json.RawMessage], error)
	GetPrintDocument(ctx context.Context, orderIDs []string, docType domain.DocumentType) (*shipper.Result[shipper.DocumentData], error)
}
