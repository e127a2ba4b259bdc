package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/quickserve-session/api/apitest"
	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"github.com/jrsteele09/quickserve-session/users"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, srv *apitest.Server, backend string) config.Config {
	t.Helper()
	c, err := config.NewWithEnvironment(map[string]string{
		"QUICKSERVE_API_URL":  srv.URL(),
		"QUICKSERVE_STORAGE":  backend,
		"QUICKSERVE_DATA_DIR": t.TempDir(),
	})
	require.NoError(t, err)
	return c
}

// exec runs one command in a fresh app, as a separate CLI invocation would.
func exec(t *testing.T, c config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	a, err := newApp(c, &out)
	require.NoError(t, err)
	defer a.close()

	err = a.dispatch(context.Background(), args[0], args[1:])
	return out.String(), err
}

func TestCLI_SessionSurvivesInvocations(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			srv := apitest.NewServer(t)
			srv.AddAccount("ravi@example.com", "password123", "Ravi Kumar", users.RoleServiceProvider)
			c := testConfig(t, srv, backend)

			out, err := exec(t, c, "login", "-email", "ravi@example.com", "-password", "password123")
			require.NoError(t, err)
			require.Contains(t, out, "signed in as ravi@example.com (SERVICE_PROVIDER)")

			out, err = exec(t, c, "whoami")
			require.NoError(t, err)
			require.Contains(t, out, `"email": "ravi@example.com"`)
			require.Contains(t, out, "accessTokenExpiry")

			_, err = exec(t, c, "verify")
			require.NoError(t, err)

			out, err = exec(t, c, "stats")
			require.NoError(t, err)
			require.Contains(t, out, "totalBookings")

			_, err = exec(t, c, "logout")
			require.NoError(t, err)
			require.Equal(t, []string{"ravi@example.com"}, srv.Logouts())

			_, err = exec(t, c, "whoami")
			require.ErrorIs(t, err, errors.ErrNotAuthenticated)
		})
	}
}

func TestCLI_Login(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddAccount("ravi@example.com", "password123", "Ravi Kumar", users.RoleServiceProvider)
	c := testConfig(t, srv, "memory")

	t.Run("invalid form is rejected before any request", func(t *testing.T) {
		_, err := exec(t, c, "login", "-email", "not-an-email", "-password", "x")
		require.Error(t, err)
		require.Equal(t, 0, srv.Calls("/auth/login"))
	})

	t.Run("server message is reported", func(t *testing.T) {
		_, err := exec(t, c, "login", "-email", "ravi@example.com", "-password", "wrong")
		require.EqualError(t, err, apitest.MsgInvalidCredentials)
	})
}

func TestCLI_Signup(t *testing.T) {
	srv := apitest.NewServer(t)
	c := testConfig(t, srv, "memory")

	form := `{
		"fullName": "Meera Nair",
		"email": "meera@example.com",
		"phone": "9876543210",
		"password": "password123",
		"city": "Kochi",
		"state": "Kerala",
		"pincode": "682001"
	}`
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(form), 0o600))

	out, err := exec(t, c, "signup", "-file", path, "-customer")
	require.NoError(t, err)
	require.Contains(t, out, "meera@example.com (CUSTOMER)")

	_, err = exec(t, c, "signup", "-file", path, "-customer")
	require.EqualError(t, err, apitest.MsgEmailRegistered)
}

func TestCLI_PublicCommands(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.AddAccount("ravi@example.com", "password123", "Ravi Kumar", users.RoleServiceProvider)
	c := testConfig(t, srv, "memory")

	out, err := exec(t, c, "categories")
	require.NoError(t, err)
	require.Contains(t, out, "displayName")

	out, err = exec(t, c, "providers", "-size", "5")
	require.NoError(t, err)
	require.Contains(t, out, "totalElements")
}

func TestCLI_UnknownCommand(t *testing.T) {
	srv := apitest.NewServer(t)
	c := testConfig(t, srv, "memory")

	out, err := exec(t, c, "bogus")
	require.Error(t, err)
	require.Contains(t, out, "usage: quickserve")
}

func TestRun_NoCommand(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run(nil, &out))
	require.Contains(t, out.String(), "usage: quickserve")
}
