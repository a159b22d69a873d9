package report

import (
	"math"
	"sort"

	"go-catat-jualan/internal/model"
)

type Point struct {
	Key      string `json:"key"`
	Sales    int64  `json:"sales"`
	Expenses int64  `json:"expenses"`
	Profit   int64  `json:"profit"`
}

type Totals struct {
	Sales    int64 `json:"sales"`
	Expenses int64 `json:"expenses"`
	Profit   int64 `json:"profit"`
}

func (t *Totals) add(tx *model.Transaction) {
	if tx.Type == model.TxSale {
		t.Sales += tx.Amount
	} else {
		t.Expenses += tx.Amount
	}
	t.Profit = t.Sales - t.Expenses
}

// Aggregate buckets in-range transactions. Every bucket touched by the range
// is present, in ascending order, even when it has no transactions.
func Aggregate(txs []model.Transaction, rng Range, b Bucket) []Point {
	var keys []string
	byKey := make(map[string]*Totals)
	for _, d := range rng.Days() {
		k := BucketKey(d, b)
		if _, ok := byKey[k]; !ok {
			byKey[k] = &Totals{}
			keys = append(keys, k)
		}
	}

	for i := range txs {
		if !rng.Contains(txs[i].Date) {
			continue
		}
		if t, ok := byKey[BucketKey(txs[i].Date, b)]; ok {
			t.add(&txs[i])
		}
	}

	out := make([]Point, 0, len(keys))
	for _, k := range keys {
		t := byKey[k]
		out = append(out, Point{Key: k, Sales: t.Sales, Expenses: t.Expenses, Profit: t.Profit})
	}
	return out
}

// Sum totals the in-range transactions.
func Sum(txs []model.Transaction, rng Range) Totals {
	var t Totals
	for i := range txs {
		if rng.Contains(txs[i].Date) {
			t.add(&txs[i])
		}
	}
	return t
}

// PercentChange is 0 when both are 0, 100 when only prev is 0, otherwise the
// change rounded half up.
func PercentChange(curr, prev int64) int64 {
	if prev == 0 {
		if curr == 0 {
			return 0
		}
		return 100
	}
	return int64(math.Floor(float64(curr-prev)/float64(prev)*100 + 0.5))
}

type Comparison struct {
	Current  Totals `json:"current"`
	Previous Totals `json:"previous"`
	Change   Totals `json:"changePct"`
}

// Compare sums rng and the equally long period before it.
func Compare(txs []model.Transaction, rng Range) Comparison {
	curr := Sum(txs, rng)
	prev := Sum(txs, rng.Previous())
	return Comparison{
		Current:  curr,
		Previous: prev,
		Change: Totals{
			Sales:    PercentChange(curr.Sales, prev.Sales),
			Expenses: PercentChange(curr.Expenses, prev.Expenses),
			Profit:   PercentChange(curr.Profit, prev.Profit),
		},
	}
}

// TopProductsLimit caps the product ranking.
const TopProductsLimit = 6

// OtherProduct names sales that can't be tied to a product.
const OtherProduct = "Lainnya"

type ProductSales struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// TopProducts ranks in-range sales by summed quantity; a missing quantity counts 1.
// Ties keep first-seen order.
func TopProducts(txs []model.Transaction, names ProductNames, rng Range, limit int) []ProductSales {
	var order []string
	byName := make(map[string]int64)
	for i := range txs {
		tx := &txs[i]
		if tx.Type != model.TxSale || !rng.Contains(tx.Date) {
			continue
		}
		name := names.Resolve(tx)
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		qty := int64(1)
		if tx.Quantity != nil {
			qty = *tx.Quantity
		}
		byName[name] += qty
	}

	out := make([]ProductSales, 0, len(order))
	for _, n := range order {
		out = append(out, ProductSales{Name: n, Value: byName[n]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SalesByPaymentMethod splits in-range sales; unknown or missing methods go to "lainnya".
func SalesByPaymentMethod(txs []model.Transaction, rng Range) map[string]int64 {
	out := map[string]int64{
		model.PaymentCash:     0,
		model.PaymentEWallet:  0,
		model.PaymentTransfer: 0,
		model.PaymentOther:    0,
	}
	for i := range txs {
		tx := &txs[i]
		if tx.Type != model.TxSale || !rng.Contains(tx.Date) {
			continue
		}
		pm := model.NormalizePaymentMethod(tx.PaymentMethod)
		if pm == "" {
			pm = model.PaymentOther
		}
		out[pm] += tx.Amount
	}
	return out
}
