package domain

// Item is a single product inside a package.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Usable reports whether the item may appear in an order payload.
func (i Item) Usable() bool {
	return i.Name != "" && i.Price > 0 && i.Qty > 0
}

// FilterItems drops items that fail the order-payload filter
// (empty name, non-positive price or quantity).
func FilterItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Usable() {
			out = append(out, it)
		}
	}
	return out
}

// TotalValue sums price×qty over the items passing the filter.
// Items failing the filter contribute nothing.
func TotalValue(items []Item) float64 {
	var total float64
	for _, it := range FilterItems(items) {
		total += it.Price * float64(it.Qty)
	}
	return total
}
