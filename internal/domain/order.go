package domain

// Contact is the consigner/consignee block of an order payload.
type Contact struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// CourierOptions carries the courier flags sent on order creation.
type CourierOptions struct {
	COD          bool `json:"cod"`
	UseInsurance bool `json:"use_insurance"`
}

// OrderPoint is one end of the route: the free-text address plus the
// resolved area id of the location's current administrative level.
type OrderPoint struct {
	Address string `json:"address"`
	AreaID  int64  `json:"area_id"`
}

// OrderPackage is the package block of an order payload. Price is the
// total over the filtered item list, not the raw form input.
type OrderPackage struct {
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	PackageType int     `json:"package_type"`
	Price       float64 `json:"price"`
	Items       []Item  `json:"items"`
}

// OrderPayload is the normalized order-creation request body.
type OrderPayload struct {
	Coverage    string         `json:"coverage"`
	PaymentType string         `json:"payment_type"`
	Consigner   Contact        `json:"consigner"`
	Consignee   Contact        `json:"consignee"`
	Courier     CourierOptions `json:"courier"`
	ServiceType int            `json:"service_type"`
	Origin      OrderPoint     `json:"origin"`
	Destination OrderPoint     `json:"destination"`
	Package     OrderPackage   `json:"package"`
}

// Order is a created order as echoed back by the provider.
type Order struct {
	OrderID     string     `json:"order_id"`
	Consignee   Contact    `json:"consignee"`
	Destination OrderPoint `json:"destination"`
	AWB         string     `json:"awb_number,omitempty"`
}
