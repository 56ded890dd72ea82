package models

// ProductSummary is one product row of the history summary.
type ProductSummary struct {
	Product  string  `json:"produto"`
	Quantity int     `json:"quantidade"`
	Total    float64 `json:"total"`
}

// OrderSummary counts orders and revenue per product, plus the grand total.
type OrderSummary struct {
	Products []ProductSummary `json:"produtos"`
	Quantity int              `json:"quantidade"`
	Total    float64          `json:"total"`
}

// Summarize builds the summary from per-product order counts. Rows follow
// the order of products and skip products without orders. Orders whose
// product is not listed (or is null) still count toward the grand total.
// A product missing from prices is worth zero.
func Summarize(products []string, counts map[string]int, prices map[string]float64) OrderSummary {
	summary := OrderSummary{Products: []ProductSummary{}}

	for name, n := range counts {
		summary.Quantity += n
		summary.Total += float64(n) * prices[name]
	}

	for _, name := range products {
		n := counts[name]
		if n == 0 {
			continue
		}
		summary.Products = append(summary.Products, ProductSummary{
			Product:  name,
			Quantity: n,
			Total:    float64(n) * prices[name],
		})
	}

	return summary
}
