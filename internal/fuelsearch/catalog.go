package fuelsearch

// Product is a fuel product the searcher knows how to query.
type Product struct {
	ID    string
	Label string
}

// DefaultProductID is Diesel A, the product used when a caller does not
// pick one.
const DefaultProductID = "4"

// Catalog lists the supported fuel products in display order.
var Catalog = []Product{
	{ID: "4", Label: "Diesel A"},
	{ID: "5", Label: "Diesel A Premium"},
	{ID: "1", Label: "Gasolina 95"},
	{ID: "3", Label: "Gasolina 98"},
}

// ProductIDs returns the catalog ids in display order.
func ProductIDs() []string {
	ids := make([]string, len(Catalog))
	for i, p := range Catalog {
		ids[i] = p.ID
	}
	return ids
}

// ProductLabel returns the display label for id.
func ProductLabel(id string) (string, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p.Label, true
		}
	}
	return "", false
}
