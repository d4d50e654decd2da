package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Google(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Inc(ctx context.Context, args []string) error
	Dec(ctx context.Context, args []string) error
	Qty(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Wish(ctx context.Context, args []string) error
	Wishlist(ctx context.Context) error
	Coupon(ctx context.Context, args []string) error
	Uncoupon(ctx context.Context) error
	Checkout(ctx context.Context) error
}

const (
	helpGuest = "Available commands: products [term] [category=X] [sort=price-asc|price-desc|rating-desc], show <id>, " +
		"add <id> [qty], remove <id>, inc <id>, dec <id>, qty <id> <n>, cart, wish <id>, wishlist, " +
		"coupon <code>, uncoupon, register, login [email], google [credential], exit"
	helpMember = "Available commands: products [term] [category=X] [sort=...], show <id>, " +
		"add <id> [qty], remove <id>, inc <id>, dec <id>, qty <id> <n>, cart, wish <id>, wishlist, " +
		"coupon <code>, uncoupon, checkout, whoami, logout, exit"
)

// runREPL reads a line from reader, takes the first word as the command and
// dispatches the rest as arguments. It returns on end of input, on "exit"
// or "quit", or when ctx is cancelled. Prompts, help and command errors go
// to w.
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(w, args...) }
	// Cancellation stops the loop between commands, never inside one.
	cmdCtx := context.WithoutCancel(ctx)

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("shop [%s] > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(cmdCtx) {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}
		case "register":
			err = a.Register(cmdCtx, args)
		case "login":
			err = a.Login(cmdCtx, args)
		case "google":
			err = a.Google(cmdCtx, args)
		case "logout":
			err = a.Logout(cmdCtx)
		case "whoami":
			err = a.Whoami(cmdCtx)
		case "p", "products":
			err = a.Products(cmdCtx, args)
		case "show":
			err = a.Show(cmdCtx, args)
		case "add":
			err = a.Add(cmdCtx, args)
		case "remove", "rm":
			err = a.Remove(cmdCtx, args)
		case "inc":
			err = a.Inc(cmdCtx, args)
		case "dec":
			err = a.Dec(cmdCtx, args)
		case "qty":
			err = a.Qty(cmdCtx, args)
		case "cart":
			err = a.Cart(cmdCtx)
		case "wish":
			err = a.Wish(cmdCtx, args)
		case "wishlist":
			err = a.Wishlist(cmdCtx)
		case "coupon":
			err = a.Coupon(cmdCtx, args)
		case "uncoupon":
			err = a.Uncoupon(cmdCtx)
		case "checkout":
			err = a.Checkout(cmdCtx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
