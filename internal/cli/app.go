package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/storefront"
)

type App struct {
	sf       *storefront.Storefront
	provider idp.Provider
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	st       styles
}

// NewApp builds a REPL over sf. provider backs the "google" command.
func NewApp(sf *storefront.Storefront, provider idp.Provider, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		sf:       sf,
		provider: provider,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		st:       newStyles(out),
	}
}

// Run reads commands until "exit" or end of input.
func (a *App) Run(ctx context.Context) {
	a.println(a.st.title.Render("Welcome to the storefront.") + " Type \"help\" for commands.")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok, err := a.sf.Session(ctx)
	return err == nil && ok
}

// status is the prompt line: who is browsing and the badge counters.
func (a *App) status(ctx context.Context) string {
	who := "guest"
	if name, err := a.sf.DisplayName(ctx); err == nil && name != "" {
		who = name
	}
	c, err := a.sf.Counters(ctx)
	if err != nil {
		a.log.Warn(ctx, "counters unavailable", "error", err)
		return who
	}
	return fmt.Sprintf("%s | cart %d | wishlist %d", who, c.Cart, c.Wishlist)
}
