package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// argOrPrompt returns args[i] when present and asks for it otherwise.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Register creates an account and signs it in. The name is optional.
func (a *App) Register(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, 0, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter your name (optional)", a.out)
	if err != nil {
		return err
	}

	s, err := a.sf.Register(ctx, email, string(password), name)
	if err != nil {
		return err
	}
	a.println(a.st.good.Render("Account created."), "Welcome,", s.Name+"!")
	return nil
}

// Login signs in with email and password.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, 0, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.sf.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.println(a.st.good.Render("Signed in."), "Welcome back,", s.Name+"!")
	return nil
}

// Google signs in through the configured identity provider. A credential
// argument is verified as an ID token. Without one, a provider with the
// authorization code flow enabled prints its consent URL and reads back the
// code; other providers are asked with an empty credential.
func (a *App) Google(ctx context.Context, args []string) error {
	var (
		s   models.Session
		err error
	)
	if flow, ok := a.provider.(idp.CodeFlow); ok && len(args) == 0 && flow.CodeFlowEnabled() {
		s, err = a.googleCode(ctx, flow)
	} else {
		var credential string
		if len(args) > 0 {
			credential = args[0]
		}
		s, err = a.sf.LoginWithProvider(ctx, a.provider, credential)
	}
	if err != nil {
		return err
	}

	if s.Email == "" {
		a.println(a.st.good.Render("Signed in with Google."), "No email was shared; your cart stays on this device.")
		return nil
	}
	a.println(a.st.good.Render("Signed in with Google"), "as", s.Email)
	return nil
}

func (a *App) googleCode(ctx context.Context, flow idp.CodeFlow) (models.Session, error) {
	state, err := common.MakeRandHexString(stateBytes)
	if err != nil {
		return models.Session{}, err
	}

	a.println("Open this URL in a browser and approve the sign-in:")
	a.println(flow.AuthCodeURL(state))
	input, err := getSimpleText(a.reader, "Paste the authorization code or the URL you were sent back to", a.out)
	if err != nil {
		return models.Session{}, err
	}

	code, err := authCode(input, state)
	if err != nil {
		return models.Session{}, err
	}
	return a.sf.LoginWithCode(ctx, flow, code)
}

const stateBytes = 16

var errStateMismatch = errors.New("google sign-in: state mismatch, start again")

// authCode takes what the visitor pasted: either a bare code or the redirect
// URL, whose state must match the one sent.
func authCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", usage("paste the authorization code")
	}

	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" {
		return input, nil
	}
	q := u.Query()
	if reason := q.Get("error"); reason != "" {
		return "", fmt.Errorf("google sign-in: %s", reason)
	}
	if !q.Has("code") {
		return input, nil
	}
	if q.Get("state") != state {
		return "", errStateMismatch
	}
	return q.Get("code"), nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sf.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	s, ok, err := a.sf.Session(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Browsing as guest.")
		return nil
	}
	name, err := a.sf.DisplayName(ctx)
	if err != nil {
		return err
	}

	email := s.Email
	if email == "" {
		email = a.st.muted.Render("(no email)")
	}
	a.println(a.st.bold.Render(name), email)
	a.println("Signed in with", providerLabel(s.Provider)+",", "session expires", s.ExpiresAt.Local().Format(time.DateTime))
	return nil
}

func providerLabel(p models.Provider) string {
	if p == models.ProviderGoogle {
		return "Google"
	}
	return "password"
}
