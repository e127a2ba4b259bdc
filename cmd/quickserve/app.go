package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/jrsteele09/quickserve-session/api"
	"github.com/jrsteele09/quickserve-session/api/apitest"
	"github.com/jrsteele09/quickserve-session/forms"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"github.com/jrsteele09/quickserve-session/session"
	"github.com/jrsteele09/quickserve-session/storage"
	"github.com/jrsteele09/quickserve-session/users"
	"github.com/rs/zerolog/log"
)

type app struct {
	store  *session.Store
	client *api.Client
	kv     storage.KeyValue
	out    io.Writer
}

func (a *app) close() {
	a.store.Wait()
	closeStorage(a.kv)
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "signup":
		return a.signup(ctx, args)
	case "logout":
		a.store.Logout()
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "refresh":
		if !a.store.RefreshAccessToken(ctx) {
			return errors.ErrRefreshFailed
		}
		fmt.Fprintln(a.out, "token refreshed")
		return nil
	case "whoami":
		return a.whoami()
	case "verify":
		if err := a.client.VerifyToken(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "token valid")
		return nil
	case "profile":
		return printResult(a.out)(a.client.GetProfile(ctx))
	case "stats":
		return printResult(a.out)(a.client.GetStats(ctx))
	case "bookings":
		return printResult(a.out)(a.client.GetBookings(ctx))
	case "availability":
		return a.availability(ctx, args)
	case "categories":
		return printResult(a.out)(a.client.GetCategories(ctx))
	case "providers":
		return a.providers(ctx, args)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.Login{Email: *email, Password: *password}
	if err := forms.Validate(form); err != nil {
		return err
	}

	return a.report(a.store.Login(ctx, form.Email, form.Password))
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	file := fs.String("file", "", "JSON file holding the signup form")
	customer := fs.Bool("customer", false, "register a customer instead of a service provider")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("signup: -file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	var form any
	if *customer {
		var f forms.CustomerSignup
		err = json.Unmarshal(data, &f)
		form = f
	} else {
		var f forms.ProviderSignup
		err = json.Unmarshal(data, &f)
		form = f.WithDefaults()
	}
	if err != nil {
		return fmt.Errorf("signup: invalid form file: %w", err)
	}
	if err := forms.Validate(form); err != nil {
		return err
	}

	return a.report(a.store.Signup(ctx, form))
}

func (a *app) report(res session.Result) error {
	if !res.Success {
		return errors.New(res.Error)
	}
	st := a.store.State()
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", st.User.Email(), st.User.Role())
	return nil
}

func (a *app) whoami() error {
	st := a.store.State()
	if !st.IsAuthenticated {
		return errors.ErrNotAuthenticated
	}

	view := map[string]any{"user": st.User}
	if exp, ok := a.store.AccessTokenExpiry(); ok {
		view["accessTokenExpiry"] = exp
	}
	return writeJSON(a.out, view)
}

func (a *app) availability(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ContinueOnError)
	available := fs.Bool("available", true, "accept new bookings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.client.UpdateAvailability(ctx, *available); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "availability set to %t\n", *available)
	return nil
}

func (a *app) providers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("providers", flag.ContinueOnError)
	category := fs.String("category", "", "service category, e.g. PLUMBING")
	city := fs.String("city", "", "city name")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := url.Values{}
	if *category != "" {
		params.Set("category", *category)
	}
	if *city != "" {
		params.Set("city", *city)
	}
	params.Set("page", strconv.Itoa(*page))
	params.Set("size", strconv.Itoa(*size))

	return printResult(a.out)(a.client.SearchProviders(ctx, params))
}

// printResult adapts a (value, error) API call into JSON output.
func printResult(out io.Writer) func(any, error) error {
	return func(v any, err error) error {
		if err != nil {
			return err
		}
		return writeJSON(out, v)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// devBackend starts the fake API with one account of each role.
func devBackend() *apitest.Server {
	srv := apitest.Start(apitest.WithLogger(log.Logger))
	srv.AddAccount("provider@quickserve.dev", "password123", "Demo Provider", users.RoleServiceProvider)
	srv.AddAccount("customer@quickserve.dev", "password123", "Demo Customer", users.RoleCustomer)
	srv.AddAccount("admin@quickserve.dev", "password123", "Demo Admin", users.RoleAdmin)
	return srv
}
