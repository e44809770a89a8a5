package enums

import "testing"

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pendingToConfirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pendingToShipped", OrderStatusPending, OrderStatusShipped, true},
		{"confirmedToShipped", OrderStatusConfirmed, OrderStatusShipped, true},
		{"shippedToDelivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shippedToConfirmed", OrderStatusShipped, OrderStatusConfirmed, false},
		{"confirmedToPending", OrderStatusConfirmed, OrderStatusPending, false},
		{"pendingToCancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"shippedToCancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"deliveredToCancelled", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelledToConfirmed", OrderStatusCancelled, OrderStatusConfirmed, false},
		{"sameStatus", OrderStatusPending, OrderStatusPending, false},
		{"unknownTarget", OrderStatusPending, OrderStatus("LOST"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("SHIPPED")
	if err != nil {
		t.Fatalf("parse shipped: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("expected SHIPPED, got %s", status)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("statuses are case-sensitive, lowercase must fail")
	}
}
