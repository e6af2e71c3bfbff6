package workflow

import (
	"context"

	"service-shipping-go/internal/domain"
	"service-shipping-go/internal/gateway/shipper"
)

// Gateway is the slice of the provider gateway the workflow needs.
type Gateway interface {
	SearchLocation(ctx context.Context, keyword, admLevel string) (*shipper.Result[[]domain.Location], error)
	CheckShippingCost(ctx context.Context, data domain.RateRequest, rateType string) (*shipper.Result[shipper.PricingData], error)
	CreateOrder(ctx context.Context, payload any) (*shipper.Result[domain.Order], error)
	GetOrderDetails(ctx context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error)
}
