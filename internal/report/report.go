package report

import "go-catat-jualan/internal/model"

// Report is the full dashboard payload for one range.
type Report struct {
	Range          Range            `json:"range"`
	Bucket         Bucket           `json:"bucket"`
	Series         []Point          `json:"series"`
	Totals         Totals           `json:"totals"`
	Comparison     Comparison       `json:"comparison"`
	TopProducts    []ProductSales   `json:"topProducts"`
	PaymentMethods map[string]int64 `json:"paymentMethods"`
}

// Build computes every section of the report from one transaction list.
func Build(txs []model.Transaction, names ProductNames, rng Range, b Bucket) Report {
	cmp := Compare(txs, rng)
	return Report{
		Range:          rng,
		Bucket:         b,
		Series:         Aggregate(txs, rng, b),
		Totals:         cmp.Current,
		Comparison:     cmp,
		TopProducts:    TopProducts(txs, names, rng, TopProductsLimit),
		PaymentMethods: SalesByPaymentMethod(txs, rng),
	}
}
