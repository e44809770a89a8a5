package models

import "github.com/assoumso/au-djassa/pkg/enums"

// PaymentDetails is created atomically with its parent order and never
// mutated afterwards. Provider and transaction id are present only for
// mobile-money payments.
type PaymentDetails struct {
	Method        enums.PaymentMethod       `json:"method"`
	Provider      enums.MobileMoneyProvider `json:"provider,omitempty"`
	PhoneNumber   string                    `json:"phoneNumber,omitempty"`
	TransactionID string                    `json:"transactionId,omitempty"`
}

// Order is a buyer purchase. Product name and supplier id are denormalized at
// creation time; totalPrice already includes shipping and service fees.
type Order struct {
	ID              string            `json:"id"`
	ProductID       string            `json:"productId"`
	ProductName     string            `json:"productName"`
	Quantity        int               `json:"quantity"`
	TotalPrice      int64             `json:"totalPrice"`
	ShippingFees    int64             `json:"shippingFees,omitempty"`
	ServiceFees     int64             `json:"serviceFees,omitempty"`
	SupplierID      string            `json:"supplierId"`
	CustomerName    string            `json:"customerName"`
	CustomerContact string            `json:"customerContact"`
	Status          enums.OrderStatus `json:"status"`
	Date            int64             `json:"date"`
	ShippingAddress string            `json:"shippingAddress"`
	PaymentDetails  *PaymentDetails   `json:"paymentDetails,omitempty"`
}

// Clone returns a deep copy so readers cannot alias the owned collections.
func (o Order) Clone() Order {
	out := o
	if o.PaymentDetails != nil {
		details := *o.PaymentDetails
		out.PaymentDetails = &details
	}
	return out
}
