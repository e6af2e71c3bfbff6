package domain

// Logistic identifies a courier company in a rate quote.
type Logistic struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// RateService identifies the priced service tier within a logistic.
type RateService struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// RateQuote is one priced courier offering for a route and package.
// Quotes are ephemeral: fetched fresh per request, never cached.
// ID is the provider's identifier for the pricing entry itself.
type RateQuote struct {
	ID           int64       `json:"id,omitempty"`
	Logistic     Logistic    `json:"logistic"`
	Rate         RateService `json:"rate"`
	FinalPrice   float64     `json:"final_price"`
	MinDay       int         `json:"min_day"`
	MaxDay       int         `json:"max_day"`
	InsuranceFee float64     `json:"insurance_fee,omitempty"`
}

// Same reports whether two quotes refer to the same courier offering.
// The pricing entry id wins when present; rate ids are unique per
// logistic; names are the fallback for fixtures that omit ids.
func (q RateQuote) Same(other RateQuote) bool {
	if q.ID != 0 || other.ID != 0 {
		return q.ID == other.ID
	}
	if q.Rate.ID != 0 || other.Rate.ID != 0 {
		return q.Rate.ID == other.Rate.ID && q.Logistic.ID == other.Logistic.ID
	}
	return q.Logistic.Name == other.Logistic.Name && q.Rate.Name == other.Rate.Name
}
