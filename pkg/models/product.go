package models

// Product is a supplier listing. Field names follow the persisted document
// layout of the `products` collection.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int64    `json:"price"`
	Category     string   `json:"category"`
	SupplierID   string   `json:"supplierId"`
	SupplierName string   `json:"supplierName"`
	ImageURL     string   `json:"imageUrl"`
	Tags         []string `json:"tags"`
	CreatedAt    int64    `json:"createdAt"`
	IsPromoted   bool     `json:"isPromoted,omitempty"`
}

// Clone returns a deep copy so readers cannot alias the owned collections.
func (p Product) Clone() Product {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}
