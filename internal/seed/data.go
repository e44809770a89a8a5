// Package seed holds the static fallback datasets served when the remote
// document store is unreachable or denies permission ("local mode").
package seed

import (
	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

// baseTime anchors the demo timestamps (milliseconds since epoch) so the
// fallback catalog is deterministic across runs.
const baseTime int64 = 1735689600000

const (
	hourMillis = 3_600_000
	dayMillis  = 86_400_000
)

var suppliers = []models.Supplier{
	{
		ID:          "s1",
		Name:        "Global Tech Imports",
		Rating:      4.8,
		Verified:    true,
		IsAvailable: true,
		Category:    "Électronique",
		Description: "Spécialiste des équipements informatiques haute performance.",
		Phone:       "22507070707",
		Email:       "contact@globaltech.com",
		Address:     "Abidjan, Plateau",
		Password:    "123456",
	},
	{
		ID:          "s2",
		Name:        "BioFerme Direct",
		Rating:      4.5,
		Verified:    true,
		IsAvailable: true,
		Category:    "Alimentation",
		Description: "Producteur local de fruits et légumes de saison.",
		Phone:       "22505050505",
		Email:       "bio@ferme.ci",
		Address:     "Bingerville",
		Password:    "123456",
	},
	{
		ID:          "s3",
		Name:        "Textile & Mode Pro",
		Rating:      4.2,
		Verified:    false,
		IsAvailable: false,
		Category:    "Vêtements",
		Description: "Grossiste en textile et accessoires de mode.",
		Phone:       "22501010101",
		Password:    "123456",
	},
	{
		ID:          "s4",
		Name:        "IndusEquip Solutions",
		Rating:      4.9,
		Verified:    true,
		IsAvailable: true,
		Category:    "Industrie",
		Description: "Machines et outillages pour le secteur industriel.",
		Phone:       "22507080910",
		Password:    "123456",
	},
}

var products = []models.Product{
	{
		ID:           "p1",
		Name:         "Ordinateur Portable UltraBook",
		Description:  "Un ordinateur performant pour les professionnels, doté d'un processeur dernière génération et d'un écran 4K.",
		Price:        850000,
		Category:     "Électronique",
		SupplierID:   "s1",
		SupplierName: "Global Tech Imports",
		ImageURL:     "https://picsum.photos/400/300?random=1",
		Tags:         []string{"ordinateur", "tech", "travail"},
		CreatedAt:    baseTime,
		IsPromoted:   true,
	},
	{
		ID:           "p2",
		Name:         "Panier de Légumes Bio",
		Description:  "Sélection de légumes de saison cultivés sans pesticides. Idéal pour une alimentation saine.",
		Price:        25000,
		Category:     "Alimentation",
		SupplierID:   "s2",
		SupplierName: "BioFerme Direct",
		ImageURL:     "https://picsum.photos/400/300?random=2",
		Tags:         []string{"bio", "légumes", "frais"},
		CreatedAt:    baseTime - 100_000,
	},
	{
		ID:           "p3",
		Name:         "Lot de T-shirts Coton",
		Description:  "Lot de 50 t-shirts en coton premium, parfaits pour la personnalisation ou la revente.",
		Price:        165000,
		Category:     "Vêtements",
		SupplierID:   "s3",
		SupplierName: "Textile & Mode Pro",
		ImageURL:     "https://picsum.photos/400/300?random=3",
		Tags:         []string{"coton", "gros", "mode"},
		CreatedAt:    baseTime - 200_000,
	},
}

var orders = []models.Order{
	{
		ID:              "ord-001",
		ProductID:       "p1",
		ProductName:     "Ordinateur Portable UltraBook",
		Quantity:        2,
		TotalPrice:      1700000,
		SupplierID:      "s1",
		CustomerName:    "Alice Martin",
		CustomerContact: "01 23 45 67 89",
		Status:          enums.OrderStatusPending,
		Date:            baseTime - hourMillis,
		ShippingAddress: "12 Rue de la Paix, 75001 Paris",
	},
	{
		ID:              "ord-002",
		ProductID:       "p1",
		ProductName:     "Ordinateur Portable UltraBook",
		Quantity:        1,
		TotalPrice:      850000,
		SupplierID:      "s1",
		CustomerName:    "Entreprise StartUp Tech",
		CustomerContact: "04 56 78 90 12",
		Status:          enums.OrderStatusConfirmed,
		Date:            baseTime - dayMillis,
		ShippingAddress: "45 Avenue du Code, 69000 Lyon",
	},
	{
		ID:              "ord-003",
		ProductID:       "p1",
		ProductName:     "Ordinateur Portable UltraBook",
		Quantity:        5,
		TotalPrice:      4250000,
		SupplierID:      "s1",
		CustomerName:    "Université des Sciences",
		CustomerContact: "05 67 89 01 23",
		Status:          enums.OrderStatusShipped,
		Date:            baseTime - 2*dayMillis,
		ShippingAddress: "Campus Universitaire, 33000 Bordeaux",
	},
}

// Categories lists the catalog categories offered on the registration and
// product forms.
var Categories = []string{"Électronique", "Alimentation", "Vêtements", "Maison", "Industrie", "Service"}

// Suppliers returns a fresh copy of the fallback supplier dataset.
func Suppliers() []models.Supplier {
	out := make([]models.Supplier, len(suppliers))
	copy(out, suppliers)
	return out
}

// Products returns a fresh copy of the fallback product dataset.
func Products() []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Clone())
	}
	return out
}

// Orders returns a fresh copy of the fallback order dataset.
func Orders() []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}
