package domain

// ShipperStatus is a provider status with its human-readable description.
type ShipperStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TrackingEvent is one entry in an order's tracking history.
type TrackingEvent struct {
	ShipperStatus ShipperStatus `json:"shipper_status"`
	CreatedDate   string        `json:"created_date,omitempty"`
}

// TrackingSnapshot is the order's current status block.
type TrackingSnapshot struct {
	ShipperStatus ShipperStatus `json:"shipper_status"`
}

// TrackingRecord is the order detail + tracking view fetched on demand.
// It is never stored beyond the current view.
type TrackingRecord struct {
	OrderID         string            `json:"order_id"`
	Tracking        *TrackingSnapshot `json:"tracking,omitempty"`
	Trackings       []TrackingEvent   `json:"trackings,omitempty"`
	LastUpdatedDate string            `json:"last_updated_date,omitempty"`
}
