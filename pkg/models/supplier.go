package models

// Supplier is a registered merchant. The email field doubles as the login
// username, and the password is stored and compared in plaintext — a
// demo-only scheme kept deliberately (see DESIGN.md).
type Supplier struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Verified    bool    `json:"verified"`
	IsAvailable bool    `json:"isAvailable"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	Password    string  `json:"password,omitempty"`
}

// Public strips credentials before the supplier leaves the service boundary.
func (s Supplier) Public() Supplier {
	s.Password = ""
	return s
}
