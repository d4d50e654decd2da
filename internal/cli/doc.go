// Package cli implements the interactive terminal storefront: a REPL that
// browses the catalog, fills the cart and wishlist, applies coupons and
// checks out on top of a storefront.Storefront.
//
// Usage
//
//	app := cli.NewApp(sf, provider, os.Stdin, os.Stdout)
//	app.Run(ctx)
//
// Commands are typed at the prompt; "help" lists them. Commands that need
// input they were not given on the line (email, password) prompt for it.
package cli
