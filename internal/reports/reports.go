// Package reports computes the admin overview aggregates from the current
// marketplace state.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/enums"
)

// ProductSales is one row of the popular-products ranking.
type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitsSold int    `json:"unitsSold"`
}

// Overview is the admin dashboard summary.
type Overview struct {
	// TotalRevenue sums totalPrice over orders that are past PENDING and
	// not CANCELLED, in integer FCFA.
	TotalRevenue int64 `json:"totalRevenue"`
	TotalOrders  int   `json:"totalOrders"`
	// AvgSatisfaction is the mean supplier rating rounded to one decimal,
	// rendered as a string ("4.6"). Empty supplier list yields "0.0".
	AvgSatisfaction string `json:"avgSatisfaction"`
	// AvgOrderValue is the mean totalPrice across revenue-bearing orders,
	// rounded to one decimal.
	AvgOrderValue string         `json:"avgOrderValue"`
	TopProducts   []ProductSales `json:"topProducts"`
}

// Builder reads the shared state to produce overview reports.
type Builder struct {
	store *state.Store
}

// NewBuilder wraps the state store.
func NewBuilder(store *state.Store) *Builder {
	return &Builder{store: store}
}

// Overview computes the dashboard aggregates from a consistent read of each
// collection.
func (b *Builder) Overview() Overview {
	orders := b.store.Orders()
	suppliers := b.store.Suppliers()
	products := b.store.Products()

	var totalRevenue int64
	revenueOrders := 0
	for _, o := range orders {
		if o.Status == enums.OrderStatusCancelled || o.Status == enums.OrderStatusPending {
			continue
		}
		totalRevenue += o.TotalPrice
		revenueOrders++
	}

	avgSatisfaction := decimal.Zero
	if len(suppliers) > 0 {
		sum := decimal.Zero
		for _, s := range suppliers {
			sum = sum.Add(decimal.NewFromFloat(s.Rating))
		}
		avgSatisfaction = sum.Div(decimal.NewFromInt(int64(len(suppliers))))
	}

	avgOrderValue := decimal.Zero
	if revenueOrders > 0 {
		avgOrderValue = decimal.NewFromInt(totalRevenue).Div(decimal.NewFromInt(int64(revenueOrders)))
	}

	unitsByProduct := make(map[string]int, len(products))
	for _, o := range orders {
		unitsByProduct[o.ProductID] += o.Quantity
	}
	ranking := make([]ProductSales, 0, len(products))
	for _, p := range products {
		ranking = append(ranking, ProductSales{
			ProductID: p.ID,
			Name:      p.Name,
			UnitsSold: unitsByProduct[p.ID],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].UnitsSold > ranking[j].UnitsSold })
	if len(ranking) > 5 {
		ranking = ranking[:5]
	}

	return Overview{
		TotalRevenue:    totalRevenue,
		TotalOrders:     len(orders),
		AvgSatisfaction: avgSatisfaction.StringFixed(1),
		AvgOrderValue:   avgOrderValue.StringFixed(1),
		TopProducts:     ranking,
	}
}
