package enums

import "fmt"

// ViewState names the screen a session is currently on.
type ViewState string

const (
	ViewLanding              ViewState = "LANDING"
	ViewMarketplace          ViewState = "MARKETPLACE"
	ViewSupplierDashboard    ViewState = "SUPPLIER_DASHBOARD"
	ViewAdminDashboard       ViewState = "ADMIN_DASHBOARD"
	ViewSupplierRegistration ViewState = "SUPPLIER_REGISTRATION"
	ViewSupplierLogin        ViewState = "SUPPLIER_LOGIN"
)

var validViewStates = []ViewState{
	ViewLanding,
	ViewMarketplace,
	ViewSupplierDashboard,
	ViewAdminDashboard,
	ViewSupplierRegistration,
	ViewSupplierLogin,
}

// String implements fmt.Stringer.
func (v ViewState) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViewState.
func (v ViewState) IsValid() bool {
	for _, candidate := range validViewStates {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViewState converts raw input into a ViewState.
func ParseViewState(value string) (ViewState, error) {
	for _, candidate := range validViewStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view state %q", value)
}
