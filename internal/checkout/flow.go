// Package checkout drives the per-order purchase flow: buyer details, payment
// selection, a single confirmation step, then a success screen that dismisses
// itself after a fixed delay.
package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/models"
)

// Integer FCFA amounts added to every order.
const (
	ShippingFees int64 = 300
	ServiceFees  int64 = 200
)

// Placeholders stored when buyer details come back blank.
const (
	anonymousCustomer = "Anonyme"
	contactUnknown    = "Non spécifié"
	addressUnknown    = "Non spécifiée"
)

// OrderCreator persists a confirmed order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
}

// ClientInfo is the buyer detail form.
type ClientInfo struct {
	Name     string
	Location string
	Contact  string
}

// Flow is the state machine for one purchase. Safe for concurrent use; the
// dismiss timer fires on its own goroutine.
type Flow struct {
	mu sync.Mutex

	product  models.Product
	quantity int

	step     enums.CheckoutStep
	info     ClientInfo
	method   enums.PaymentMethod
	provider enums.MobileMoneyProvider

	order      *models.Order
	errMessage string
	closed     bool

	creator      OrderCreator
	dismissDelay time.Duration
	now          func() time.Time
	txnNumber    func() int
	timer        *time.Timer
}

// Option configures optional flow behavior.
type Option func(*Flow)

// WithDismissDelay overrides how long the success screen stays up.
func WithDismissDelay(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.dismissDelay = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		if now != nil {
			f.now = now
		}
	}
}

// WithTransactionNumber overrides the pseudo-random transaction number source.
func WithTransactionNumber(fn func() int) Option {
	return func(f *Flow) {
		if fn != nil {
			f.txnNumber = fn
		}
	}
}

// NewFlow opens a checkout for the product. Mobile money is the preselected
// payment method.
func NewFlow(product models.Product, quantity int, creator OrderCreator, opts ...Option) *Flow {
	if quantity < 1 {
		quantity = 1
	}
	f := &Flow{
		product:      product,
		quantity:     quantity,
		step:         enums.CheckoutStepDetails,
		method:       enums.PaymentMethodMobileMoney,
		creator:      creator,
		dismissDelay: 6 * time.Second,
		now:          time.Now,
		txnNumber:    func() int { return rand.Intn(1000000) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Step returns the current checkout step.
func (f *Flow) Step() enums.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Closed reports whether the success screen has dismissed.
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// ErrorMessage returns the inline message shown on the payment step, if any.
func (f *Flow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMessage
}

// Order returns the confirmed order once the flow reached success.
func (f *Flow) Order() (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.order == nil {
		return models.Order{}, false
	}
	return f.order.Clone(), true
}

// Totals breaks down the amount due.
type Totals struct {
	ProductTotal int64 `json:"productTotal"`
	ShippingFees int64 `json:"shippingFees"`
	ServiceFees  int64 `json:"serviceFees"`
	Total        int64 `json:"total"`
}

// Totals returns the current price breakdown.
func (f *Flow) Totals() Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	productTotal := f.product.Price * int64(f.quantity)
	return Totals{
		ProductTotal: productTotal,
		ShippingFees: ShippingFees,
		ServiceFees:  ServiceFees,
		Total:        productTotal + ShippingFees + ServiceFees,
	}
}

// SetDetails records the buyer form and advances to payment. All three fields
// must be non-empty after trimming.
func (f *Flow) SetDetails(name, location, contact string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != enums.CheckoutStepDetails {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot set details in step %s", f.step))
	}

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	contact = strings.TrimSpace(contact)
	if name == "" || location == "" || contact == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name, location and contact are required")
	}

	f.info = ClientInfo{Name: name, Location: location, Contact: contact}
	f.errMessage = ""
	f.step = enums.CheckoutStepPayment
	return nil
}

// SelectPayment records the payment choice. Mobile money requires a provider;
// cash on delivery ignores it.
func (f *Flow) SelectPayment(method enums.PaymentMethod, provider enums.MobileMoneyProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != enums.CheckoutStepPayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot select payment in step %s", f.step))
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", method))
	}
	if method == enums.PaymentMethodMobileMoney && !provider.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "mobile money requires a provider")
	}

	f.method = method
	if method == enums.PaymentMethodMobileMoney {
		f.provider = provider
	} else {
		f.provider = ""
	}
	f.errMessage = ""
	return nil
}

// Confirm builds and persists the order. A persistence failure returns the
// flow to the payment step with an inline message; success is terminal and
// the screen dismisses itself after the configured delay.
func (f *Flow) Confirm(ctx context.Context) (models.Order, error) {
	f.mu.Lock()
	if f.step != enums.CheckoutStepPayment {
		step := f.step
		f.mu.Unlock()
		return models.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot confirm in step %s", step))
	}

	f.step = enums.CheckoutStepProcessing
	f.errMessage = ""
	order := f.buildOrder()
	creator := f.creator
	f.mu.Unlock()

	persisted, err := creator.CreateOrder(ctx, order)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.errMessage = err.Error()
		f.step = enums.CheckoutStepPayment
		return models.Order{}, err
	}

	f.order = &persisted
	f.step = enums.CheckoutStepSuccess
	f.timer = time.AfterFunc(f.dismissDelay, f.dismiss)
	return persisted.Clone(), nil
}

func (f *Flow) dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == enums.CheckoutStepSuccess {
		f.closed = true
	}
}

// Abandon stops the dismiss timer and closes the flow.
func (f *Flow) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.closed = true
}

// buildOrder assembles the order document. Callers hold f.mu.
func (f *Flow) buildOrder() models.Order {
	now := f.now().UnixMilli()
	productTotal := f.product.Price * int64(f.quantity)

	var payment *models.PaymentDetails
	if f.method == enums.PaymentMethodMobileMoney {
		payment = &models.PaymentDetails{
			Method:        enums.PaymentMethodMobileMoney,
			Provider:      f.provider,
			TransactionID: fmt.Sprintf("TXN-%d", f.txnNumber()),
		}
	} else {
		payment = &models.PaymentDetails{Method: enums.PaymentMethodCashOnDelivery}
	}

	name := f.info.Name
	if name == "" {
		name = anonymousCustomer
	}
	contact := f.info.Contact
	if contact == "" {
		contact = contactUnknown
	}
	address := f.info.Location
	if address == "" {
		address = addressUnknown
	}

	return models.Order{
		ID:              fmt.Sprintf("ord-%d", now),
		ProductID:       f.product.ID,
		ProductName:     f.product.Name,
		Quantity:        f.quantity,
		TotalPrice:      productTotal + ShippingFees + ServiceFees,
		ShippingFees:    ShippingFees,
		ServiceFees:     ServiceFees,
		SupplierID:      f.product.SupplierID,
		CustomerName:    name,
		CustomerContact: contact,
		Status:          enums.OrderStatusPending,
		Date:            now,
		ShippingAddress: address,
		PaymentDetails:  payment,
	}
}
