package workflow

import (
	"strconv"
	"strings"

	"service-shipping-go/internal/domain"
)

// Fixed order payload fields. The proxy only creates postpaid domestic
// parcel orders without COD or insurance.
const (
	coverageDomestic   = "domestic"
	paymentTypePostpay = "postpay"
	serviceTypeRegular = 1
	packageTypeParcel  = 2
)

// Rate request shaping: cap the quote list and sort by final price.
const rateLimit = 30

var rateSortBy = []string{"final_price"}

// num coerces a form value to a number. Anything unparseable counts as
// zero, matching the coercion the form applied.
func num(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func intNum(s string) int {
	return int(num(s))
}

// parseItems coerces the raw item forms into domain items.
func parseItems(items []ItemForm) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Item{
			Name:  strings.TrimSpace(it.Name),
			Price: num(it.Price),
			Qty:   intNum(it.Qty),
		})
	}
	return out
}

// buildRateRequest assembles the pricing request from resolved
// coordinates, the declared item value and the package dimensions.
// The declared value counts every entered item; the usability filter
// applies only when the order payload is built at submission.
func buildRateRequest(s State, origin, destination domain.GeoCoord) domain.RateRequest {
	var itemValue float64
	for _, it := range parseItems(s.Package.Items) {
		itemValue += it.Price * float64(it.Qty)
	}

	return domain.RateRequest{
		Origin:      domain.NewRatePoint(origin),
		Destination: domain.NewRatePoint(destination),
		COD:         false,
		ForOrder:    false,
		ItemValue:   itemValue,
		Weight:      num(s.Package.Weight),
		Length:      num(s.Package.Length),
		Width:       num(s.Package.Width),
		Height:      num(s.Package.Height),
		Limit:       rateLimit,
		SortBy:      rateSortBy,
	}
}

// buildOrderPayload assembles the normalized order-creation payload.
// Items are filtered (non-empty name, positive price and qty) and the
// package price is recomputed over the filtered list only.
func buildOrderPayload(s State, originAreaID, destinationAreaID int64) domain.OrderPayload {
	items := domain.FilterItems(parseItems(s.Package.Items))
	var price float64
	for _, it := range items {
		price += it.Price * float64(it.Qty)
	}

	return domain.OrderPayload{
		Coverage:    coverageDomestic,
		PaymentType: paymentTypePostpay,
		Consigner: domain.Contact{
			Name:        s.Sender.Form.Name,
			PhoneNumber: s.Sender.Form.Phone,
		},
		Consignee: domain.Contact{
			Name:        s.Receiver.Form.Name,
			PhoneNumber: s.Receiver.Form.Phone,
		},
		Courier: domain.CourierOptions{
			COD:          false,
			UseInsurance: false,
		},
		ServiceType: serviceTypeRegular,
		Origin: domain.OrderPoint{
			Address: s.Sender.Form.Address,
			AreaID:  originAreaID,
		},
		Destination: domain.OrderPoint{
			Address: s.Receiver.Form.Address,
			AreaID:  destinationAreaID,
		},
		Package: domain.OrderPackage{
			Length:      num(s.Package.Length),
			Width:       num(s.Package.Width),
			Height:      num(s.Package.Height),
			Weight:      num(s.Package.Weight),
			PackageType: packageTypeParcel,
			Price:       price,
			Items:       items,
		},
	}
}
