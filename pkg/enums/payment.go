package enums

import "fmt"

// PaymentMethod describes how a buyer intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodMobileMoney    PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodMobileMoney,
	PaymentMethodCashOnDelivery,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// MobileMoneyProvider identifies the wallet operator for mobile-money payments.
type MobileMoneyProvider string

const (
	MobileMoneyProviderOrange MobileMoneyProvider = "ORANGE"
	MobileMoneyProviderMTN    MobileMoneyProvider = "MTN"
	MobileMoneyProviderWave   MobileMoneyProvider = "WAVE"
)

var validMobileMoneyProviders = []MobileMoneyProvider{
	MobileMoneyProviderOrange,
	MobileMoneyProviderMTN,
	MobileMoneyProviderWave,
}

// String implements fmt.Stringer.
func (m MobileMoneyProvider) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MobileMoneyProvider.
func (m MobileMoneyProvider) IsValid() bool {
	for _, candidate := range validMobileMoneyProviders {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMobileMoneyProvider converts raw input into a MobileMoneyProvider.
func ParseMobileMoneyProvider(value string) (MobileMoneyProvider, error) {
	for _, candidate := range validMobileMoneyProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mobile money provider %q", value)
}
