package domain

import "strconv"

// RatePoint is one end of the route in a rate request. The provider's
// pricing endpoint expects coordinates as strings.
type RatePoint struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// NewRatePoint formats a resolved coordinate pair for a rate request.
func NewRatePoint(g GeoCoord) RatePoint {
	return RatePoint{
		Lat: strconv.FormatFloat(g.Lat, 'f', -1, 64),
		Lng: strconv.FormatFloat(g.Lng, 'f', -1, 64),
	}
}

// RateRequest is the domestic pricing request body.
type RateRequest struct {
	Origin      RatePoint `json:"origin"`
	Destination RatePoint `json:"destination"`
	COD         bool      `json:"cod"`
	ForOrder    bool      `json:"for_order"`
	ItemValue   float64   `json:"item_value"`
	Weight      float64   `json:"weight"`
	Length      float64   `json:"length"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Limit       int       `json:"limit"`
	SortBy      []string  `json:"sort_by"`
}
