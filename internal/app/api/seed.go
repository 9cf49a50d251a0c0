package api

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

type seedProduct struct {
	name, description, price, image string
}

type seedCategory struct {
	name     string
	products []seedProduct
}

var demoCatalog = []seedCategory{
	{name: "Fruits & Vegetables", products: []seedProduct{
		{"Banana Robusta", "Fresh robusta bananas, 1 dozen.", "48.00", "/static/shop/images/banana.jpg"},
		{"Onion", "Red onions, 1 kg.", "35.00", "/static/shop/images/onion.jpg"},
		{"Tomato Hybrid", "Firm hybrid tomatoes, 500 g.", "22.50", "/static/shop/images/tomato.jpg"},
	}},
	{name: "Foodgrains, Oil & Masala", products: []seedProduct{
		{"Basmati Rice", "Aged long grain basmati, 1 kg.", "50.00", "/static/shop/images/rice.jpg"},
		{"Toor Dal", "Unpolished toor dal, 500 g.", "30.00", "/static/shop/images/dal.jpg"},
		{"Sunflower Oil", "Refined sunflower oil, 1 L.", "145.00", "/static/shop/images/oil.jpg"},
	}},
	{name: "Bakery, Cakes & Dairy", products: []seedProduct{
		{"Whole Wheat Bread", "Soft whole wheat loaf, 400 g.", "45.00", "/static/shop/images/bread.jpg"},
		{"Toned Milk", "Pasteurised toned milk, 500 ml.", "27.00", "/static/shop/images/milk.jpg"},
	}},
	{name: "Beverages", products: []seedProduct{
		{"Assam Tea", "Strong CTC leaf tea, 250 g.", "120.00", "/static/shop/images/tea.jpg"},
		{"Filter Coffee", "South Indian filter coffee powder, 200 g.", "160.00", "/static/shop/images/coffee.jpg"},
	}},
}

// SeedCatalog fills an empty catalog with a small demo assortment. It reports
// whether anything was written; a catalog that already has categories is left alone.
func SeedCatalog(ctx context.Context, repo catalogports.Repository) (bool, error) {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return false, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, seed := range demoCatalog {
		category, err := catalogdomain.NewCategory(0, seed.name)
		if err != nil {
			return false, err
		}
		saved, err := repo.SaveCategory(ctx, category)
		if err != nil {
			return false, fmt.Errorf("save category %q: %w", seed.name, err)
		}
		for _, p := range seed.products {
			product, err := catalogdomain.NewProduct(0, p.name, decimal.RequireFromString(p.price), saved.ID)
			if err != nil {
				return false, err
			}
			product.Describe(p.description, p.image)
			if _, err := repo.SaveProduct(ctx, product); err != nil {
				return false, fmt.Errorf("save product %q: %w", p.name, err)
			}
		}
	}
	return true, nil
}
