package seed

import "testing"

func TestDatasetsReturnCopies(t *testing.T) {
	first := Products()
	first[0].Name = "mutated"
	first[0].Tags[0] = "mutated"

	second := Products()
	if second[0].Name == "mutated" {
		t.Fatal("product dataset must not share struct memory between calls")
	}
	if second[0].Tags[0] == "mutated" {
		t.Fatal("product tags must be deep-copied")
	}

	orders := Orders()
	if len(orders) != 3 {
		t.Fatalf("expected 3 fallback orders, got %d", len(orders))
	}
}

func TestSupplierCredentials(t *testing.T) {
	for _, s := range Suppliers() {
		if s.Password != "123456" {
			t.Fatalf("demo supplier %s must carry the shared demo password", s.ID)
		}
	}
}

func TestProductAttribution(t *testing.T) {
	byID := map[string]bool{}
	for _, s := range Suppliers() {
		byID[s.ID] = true
	}
	for _, p := range Products() {
		if !byID[p.SupplierID] {
			t.Fatalf("product %s references unknown supplier %s", p.ID, p.SupplierID)
		}
	}
}
