package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/catalog"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

func (a *App) money(d decimal.Decimal) string {
	return pricing.Format(a.sf.Pricing().Money(d))
}

// Products lists the catalog. Plain words are the search term; category=X
// and sort=KEY narrow and order the list.
func (a *App) Products(ctx context.Context, args []string) error {
	var (
		terms    []string
		category = catalog.All
		sortKey  = catalog.SortPopular
	)
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "category="):
			category = strings.TrimPrefix(arg, "category=")
		case strings.HasPrefix(arg, "sort="):
			sortKey = catalog.ParseSortKey(strings.TrimPrefix(arg, "sort="))
		default:
			terms = append(terms, arg)
		}
	}

	items := catalog.Sort(a.sf.Catalog().Search(strings.Join(terms, " "), matchCategory(category)), sortKey)
	if len(items) == 0 {
		a.println("No products found.")
		return nil
	}

	t := table{headers: []string{"ID", "TITLE", "PRICE", "MRP", "OFF", "RATING"}}
	for _, p := range items {
		t.add(p.ID, p.Title, a.money(p.Price), a.money(p.MRP), fmt.Sprintf("%d%%", p.Discount), fmt.Sprintf("%.1f", p.Rating))
	}
	fmt.Fprint(a.out, t.render(a.st))
	a.println(a.st.muted.Render(fmt.Sprintf("%d products", len(items))))
	return nil
}

// matchCategory maps a typed category onto its canonical spelling.
func matchCategory(s string) string {
	for _, c := range catalog.Categories {
		if strings.EqualFold(c, s) {
			return c
		}
	}
	return s
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	p, ok := a.sf.Catalog().ByID(args[0])
	if !ok {
		return fmt.Errorf("product %q: %w", args[0], common.ErrNotFound)
	}
	saved, err := a.sf.InWishlist(ctx, p.ID)
	if err != nil {
		return err
	}

	a.println(a.st.title.Render(p.Title), a.st.muted.Render("by "+p.Brand))
	a.println(a.money(p.Price), a.st.muted.Render("MRP "+a.money(p.MRP)), a.st.good.Render(fmt.Sprintf("%d%% off", p.Discount)))
	a.println(fmt.Sprintf("★ %.1f · %d ratings · %s", p.Rating, p.Reviews, p.Category))
	a.println(p.Delivery, "·", p.Return)
	a.println(p.Description)
	if saved {
		a.println(a.st.good.Render("♥ In your wishlist"))
	}
	return nil
}

func productArg(args []string, want int, form string) (string, error) {
	if len(args) < want || len(args) > want+1 {
		return "", usage("%s", form)
	}
	return args[0], nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	id, err := productArg(args, 1, "add <id> [qty]")
	if err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return usage("quantity must be a number")
		}
	}
	if err := a.sf.AddToCart(ctx, id, qty); err != nil {
		return err
	}
	a.println("Added to cart.")
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <id>")
	}
	if err := a.sf.RemoveFromCart(ctx, args[0]); err != nil {
		return err
	}
	a.println("Removed from cart.")
	return nil
}

func (a *App) Inc(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("inc <id>")
	}
	if err := a.sf.IncrementCart(ctx, args[0]); err != nil {
		return err
	}
	return a.Cart(ctx)
}

func (a *App) Dec(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("dec <id>")
	}
	if err := a.sf.DecrementCart(ctx, args[0]); err != nil {
		return err
	}
	return a.Cart(ctx)
}

func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("qty <id> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("quantity must be a number")
	}
	if err := a.sf.SetCartQty(ctx, args[0], n); err != nil {
		return err
	}
	return a.Cart(ctx)
}

// Cart prints the lines and the totals with the applied coupon.
func (a *App) Cart(ctx context.Context) error {
	lines, err := a.sf.Cart(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		a.println("Your cart is empty.")
		return nil
	}

	t := table{title: "Cart", headers: []string{"ID", "TITLE", "QTY", "PRICE", "LINE"}}
	for _, l := range lines {
		if !l.Known {
			t.add(l.ProductID, a.st.muted.Render("(unavailable)"), strconv.Itoa(l.Qty), "-", "-")
			continue
		}
		line := l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
		t.add(l.ProductID, l.Product.Title, strconv.Itoa(l.Qty), a.money(l.Product.Price), a.money(line))
	}
	fmt.Fprint(a.out, t.render(a.st))

	totals, err := a.sf.Totals(ctx)
	if err != nil {
		return err
	}
	code, err := a.sf.Coupon(ctx)
	if err != nil {
		return err
	}
	a.printTotals(totals, code)
	return nil
}

func (a *App) printTotals(t models.Totals, code string) {
	a.println("Subtotal:", a.money(t.Subtotal))
	switch {
	case code != "" && t.Percent > 0:
		a.println(fmt.Sprintf("Coupon (%s):", pricing.NormalizeCoupon(code)), "-"+a.money(t.Discount))
	case code != "":
		a.println(fmt.Sprintf("Coupon (%s):", pricing.NormalizeCoupon(code)), a.st.bad.Render("invalid coupon code"))
	}
	a.println(a.st.bold.Render("Total: " + a.money(t.Total)))
}

func (a *App) Wish(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("wish <id>")
	}
	saved, err := a.sf.ToggleWishlist(ctx, args[0])
	if err != nil {
		return err
	}
	if saved {
		a.println("Added to wishlist.")
	} else {
		a.println("Removed from wishlist.")
	}
	return nil
}

func (a *App) Wishlist(ctx context.Context) error {
	products, err := a.sf.Wishlist(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		a.println("Your wishlist is empty.")
		return nil
	}

	t := table{title: "Wishlist", headers: []string{"ID", "TITLE", "PRICE"}}
	for _, p := range products {
		t.add(p.ID, p.Title, a.money(p.Price))
	}
	fmt.Fprint(a.out, t.render(a.st))
	return nil
}

// Coupon applies a code and tells whether it discounts the current cart.
func (a *App) Coupon(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("coupon <code>")
	}
	totals, err := a.sf.ApplyCoupon(ctx, args[0])
	if err != nil {
		return err
	}
	if totals.Percent > 0 {
		a.println(a.st.good.Render(fmt.Sprintf("Coupon %s applied! %d%% off", pricing.NormalizeCoupon(args[0]), totals.Percent)))
		return nil
	}
	a.println(a.st.bad.Render("Invalid coupon code"))
	return nil
}

func (a *App) Uncoupon(ctx context.Context) error {
	if err := a.sf.RemoveCoupon(ctx); err != nil {
		return err
	}
	a.println("Coupon removed.")
	return nil
}

func (a *App) Checkout(ctx context.Context) error {
	order, err := a.sf.Checkout(ctx)
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		a.println("Please sign in to check out.")
		return nil
	case errors.Is(err, common.ErrEmptyCart):
		a.println("Your cart is empty.")
		return nil
	case err != nil:
		return err
	}

	a.println(a.st.good.Render("Order placed!"), "Order", order.ID)
	a.println(a.st.bold.Render("Charged: " + a.money(order.Totals.Total)))
	return nil
}
