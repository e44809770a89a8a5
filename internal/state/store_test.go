package state

import (
	"testing"

	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

func TestReplaceProductsSortsNewestFirst(t *testing.T) {
	store := New()
	store.ReplaceProducts([]models.Product{
		{ID: "old", CreatedAt: 100},
		{ID: "new", CreatedAt: 300},
		{ID: "mid", CreatedAt: 200},
	})

	products := store.Products()
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != "new" || products[1].ID != "mid" || products[2].ID != "old" {
		t.Fatalf("unexpected order: %s %s %s", products[0].ID, products[1].ID, products[2].ID)
	}
}

func TestReplaceOrdersSortsNewestFirst(t *testing.T) {
	store := New()
	store.ReplaceOrders([]models.Order{
		{ID: "a", Date: 10},
		{ID: "b", Date: 30},
	})

	orders := store.Orders()
	if orders[0].ID != "b" {
		t.Fatalf("expected newest order first, got %s", orders[0].ID)
	}
}

func TestInsertProductLocalPrepends(t *testing.T) {
	store := New()
	store.ReplaceProducts([]models.Product{{ID: "existing", CreatedAt: 100}})
	store.InsertProductLocal(models.Product{ID: "fresh", CreatedAt: 50})

	products := store.Products()
	if products[0].ID != "fresh" {
		t.Fatalf("local insert must land first, got %s", products[0].ID)
	}
}

func TestRemoveProductLocal(t *testing.T) {
	store := New()
	store.ReplaceProducts([]models.Product{{ID: "p1"}, {ID: "p2"}})
	store.RemoveProductLocal("p1")

	products := store.Products()
	if len(products) != 1 || products[0].ID != "p2" {
		t.Fatalf("unexpected products after removal: %+v", products)
	}
}

func TestSetProductPromotionLocal(t *testing.T) {
	store := New()
	store.ReplaceProducts([]models.Product{{ID: "p1"}})

	store.SetProductPromotionLocal("p1", true)
	if p, _ := store.ProductByID("p1"); !p.IsPromoted {
		t.Fatal("expected promotion set")
	}
	store.SetProductPromotionLocal("p1", false)
	if p, _ := store.ProductByID("p1"); p.IsPromoted {
		t.Fatal("expected promotion cleared")
	}
	store.SetProductPromotionLocal("missing", true)
}

func TestSetOrderStatusLocal(t *testing.T) {
	store := New()
	store.ReplaceOrders([]models.Order{{ID: "o1", Status: enums.OrderStatusPending}})
	store.SetOrderStatusLocal("o1", enums.OrderStatusConfirmed)

	o, ok := store.OrderByID("o1")
	if !ok || o.Status != enums.OrderStatusConfirmed {
		t.Fatalf("unexpected order state: %+v", o)
	}
}

func TestReadersReturnCopies(t *testing.T) {
	store := New()
	store.ReplaceProducts([]models.Product{{ID: "p1", Tags: []string{"a"}}})

	products := store.Products()
	products[0].Tags[0] = "mutated"
	products[0].Name = "mutated"

	fresh, _ := store.ProductByID("p1")
	if fresh.Tags[0] != "a" || fresh.Name != "" {
		t.Fatal("reader mutation leaked into the store")
	}
}

func TestSnapshotReplacesLocalFallback(t *testing.T) {
	store := New()
	store.InsertProductLocal(models.Product{ID: "local-1"})

	store.ReplaceProducts([]models.Product{{ID: "remote-1", CreatedAt: 1}})
	products := store.Products()
	if len(products) != 1 || products[0].ID != "remote-1" {
		t.Fatalf("snapshot must win over local state, got %+v", products)
	}
}

func TestLoadingFlag(t *testing.T) {
	store := New()
	if !store.Loading() {
		t.Fatal("fresh store must report loading")
	}
	store.SetLoading(false)
	if store.Loading() {
		t.Fatal("loading flag must clear")
	}
}
