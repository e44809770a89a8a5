package reports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

func TestOverviewRevenueCountsConfirmedOrdersOnly(t *testing.T) {
	store := state.New()
	store.ReplaceOrders([]models.Order{
		{ID: "o1", Status: enums.OrderStatusPending, TotalPrice: 1000},
		{ID: "o2", Status: enums.OrderStatusConfirmed, TotalPrice: 2000},
		{ID: "o3", Status: enums.OrderStatusShipped, TotalPrice: 3000},
		{ID: "o4", Status: enums.OrderStatusDelivered, TotalPrice: 4000},
		{ID: "o5", Status: enums.OrderStatusCancelled, TotalPrice: 5000},
	})

	overview := NewBuilder(store).Overview()
	require.Equal(t, int64(9000), overview.TotalRevenue)
	require.Equal(t, 5, overview.TotalOrders)
	require.Equal(t, "3000.0", overview.AvgOrderValue)
}

func TestOverviewAvgSatisfactionOneDecimal(t *testing.T) {
	store := state.New()
	store.ReplaceSuppliers([]models.Supplier{
		{ID: "s1", Rating: 4.8},
		{ID: "s2", Rating: 4.5},
		{ID: "s3", Rating: 4.0},
	})

	overview := NewBuilder(store).Overview()
	require.Equal(t, "4.4", overview.AvgSatisfaction)
}

func TestOverviewEmptyState(t *testing.T) {
	overview := NewBuilder(state.New()).Overview()
	require.Zero(t, overview.TotalRevenue)
	require.Zero(t, overview.TotalOrders)
	require.Equal(t, "0.0", overview.AvgSatisfaction)
	require.Equal(t, "0.0", overview.AvgOrderValue)
	require.Empty(t, overview.TopProducts)
}

func TestOverviewTopProductsCapAtFive(t *testing.T) {
	store := state.New()
	products := make([]models.Product, 0, 7)
	orders := make([]models.Order, 0, 7)
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("p%d", i)
		products = append(products, models.Product{ID: id, Name: id, CreatedAt: int64(i)})
		orders = append(orders, models.Order{
			ID:        fmt.Sprintf("o%d", i),
			ProductID: id,
			Quantity:  i + 1,
			Status:    enums.OrderStatusDelivered,
			Date:      int64(i),
		})
	}
	store.ReplaceProducts(products)
	store.ReplaceOrders(orders)

	overview := NewBuilder(store).Overview()
	require.Len(t, overview.TopProducts, 5)
	require.Equal(t, "p6", overview.TopProducts[0].ProductID)
	require.Equal(t, 7, overview.TopProducts[0].UnitsSold)
	require.Equal(t, 3, overview.TopProducts[4].UnitsSold)
}
