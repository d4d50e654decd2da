// Package catalog serves the read-only product list the storefront sells.
package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/shopspring/decimal"
)

const (
	All = "All"

	perCategory = 20
)

type SortKey string

const (
	SortPopular    SortKey = "popular"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
)

type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New returns the built-in catalog, with every category padded to twenty
// products.
func New() *Catalog {
	return NewFromProducts(padCategories(seedProducts, Categories[1:], perCategory))
}

func NewFromProducts(products []models.Product) *Catalog {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every product in popularity order.
func (c *Catalog) All() []models.Product {
	return slices.Clone(c.products)
}

// Search returns the products whose title or description contains term,
// case-insensitively, within category. An empty term matches everything,
// and so do the empty category and All.
func (c *Catalog) Search(term, category string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Product
	for _, p := range c.products {
		if category != "" && category != All && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ParseSortKey accepts the sort keys by name. Unknown keys fall back to
// popularity.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return k
	default:
		return SortPopular
	}
}

// Sort returns a sorted copy of items. Ties keep their input order.
func Sort(items []models.Product, key SortKey) []models.Product {
	out := slices.Clone(items)
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return b.Price.Cmp(a.Price) })
	case SortRatingDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
	return out
}

var (
	minPrice  = decimal.NewFromInt(5)
	mrpStep   = decimal.NewFromInt(3)
	priceStep = decimal.NewFromInt(2)
)

// padCategories appends generated variants of each category's products
// until every category has n entries. Variants cycle through the category's
// own products, with small deterministic price, rating and review shifts.
func padCategories(products []models.Product, categories []string, n int) []models.Product {
	byCat := make(map[string][]models.Product)
	for _, p := range products {
		byCat[p.Category] = append(byCat[p.Category], p)
	}

	out := slices.Clone(products)
	for _, cat := range categories {
		base := byCat[cat]
		for i := len(base); i < n; i++ {
			seed, prefix := products[i%len(products)], strings.ToLower(cat)
			if len(base) > 0 {
				seed = base[i%len(base)]
				prefix = seed.ID
			}
			out = append(out, variant(seed, prefix, cat, i))
		}
	}
	return out
}

func variant(seed models.Product, idPrefix, category string, i int) models.Product {
	step := decimal.NewFromInt(int64(i % 5))
	rating := seed.Rating - 0.2 + float64(i%5)*0.07
	rating = math.Round(math.Max(3.6, math.Min(4.9, rating))*100) / 100

	v := seed
	v.ID = fmt.Sprintf("%s-%d", idPrefix, i+1)
	v.Title = fmt.Sprintf("%s %d", seed.Title, i+1)
	v.MRP = seed.MRP.Add(step.Mul(mrpStep)).Round(2)
	v.Price = decimal.Max(minPrice, seed.Price.Add(step.Mul(priceStep)).Round(2))
	v.Rating = rating
	v.Reviews = seed.Reviews + i*7
	v.Category = category
	return v
}
