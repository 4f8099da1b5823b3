package repo

import (
	"github.com/google/uuid"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
)

var seedNamespace = uuid.MustParse("5b0c3f4e-8f5d-4c39-9d5e-6a1f0d2f7c11")

type seedRow struct {
	name         string
	price        string
	unitsInStock int64
	discontinued bool
}

var seedRows = []seedRow{
	{"Chai", "18.00", 39, false},
	{"Chang", "19.00", 17, false},
	{"Aniseed Syrup", "10.00", 13, false},
	{"Chef Anton's Cajun Seasoning", "22.00", 53, false},
	{"Chef Anton's Gumbo Mix", "21.35", 0, true},
	{"Grandma's Boysenberry Spread", "25.00", 120, false},
	{"Uncle Bob's Organic Dried Pears", "30.00", 15, false},
	{"Northwoods Cranberry Sauce", "40.00", 6, false},
	{"Mishi Kobe Niku", "97.00", 29, true},
	{"Ikura", "31.00", 31, false},
	{"Queso Cabrales", "21.00", 22, false},
	{"Queso Manchego La Pastora", "38.00", 86, false},
}

// SeedID returns the stable id of a demo product, so seeding twice yields the same rows.
func SeedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// DemoProducts returns the demo catalogue used to populate an empty store.
func DemoProducts() []*domain.Product {
	products := make([]*domain.Product, 0, len(seedRows))
	for _, row := range seedRows {
		price, err := domain.ParseMoney(row.price)
		if err != nil {
			panic(err)
		}
		id := SeedID(row.name)
		products = append(products, domain.ReconstructProduct(id, id, domain.ProductFields{
			ProductName:  row.name,
			UnitPrice:    price,
			UnitsInStock: row.unitsInStock,
			Discontinued: row.discontinued,
		}))
	}
	return products
}
