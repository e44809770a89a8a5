package enums

import "fmt"

// CheckoutStep names a stage of the buyer checkout flow.
type CheckoutStep string

const (
	CheckoutStepDetails    CheckoutStep = "details"
	CheckoutStepPayment    CheckoutStep = "payment"
	CheckoutStepProcessing CheckoutStep = "processing"
	CheckoutStepSuccess    CheckoutStep = "success"
)

var validCheckoutSteps = []CheckoutStep{
	CheckoutStepDetails,
	CheckoutStepPayment,
	CheckoutStepProcessing,
	CheckoutStepSuccess,
}

// String implements fmt.Stringer.
func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range validCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range validCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
