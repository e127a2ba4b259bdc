package session_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/quickserve-session/api/apifake"
	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/jrsteele09/quickserve-session/session"
	"github.com/jrsteele09/quickserve-session/storage"
	"github.com/jrsteele09/quickserve-session/storage/storagefake"
	"github.com/jrsteele09/quickserve-session/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func reload(t *testing.T, kv storage.KeyValue, options ...session.StoreOption) *session.Store {
	t.Helper()
	options = append([]session.StoreOption{session.WithLogger(zerolog.Nop())}, options...)
	s, err := session.New(apifake.New(), kv, options...)
	require.NoError(t, err)
	return s
}

func TestPersist_RoundTrip(t *testing.T) {
	s, _, kv := loggedIn(t)
	s.UpdateUser(users.User{users.FieldRole: string(users.RoleCustomer)})
	before := s.State()

	restored := reload(t, kv).State()
	require.Equal(t, before.AccessToken, restored.AccessToken)
	require.Equal(t, before.RefreshToken, restored.RefreshToken)
	require.Equal(t, before.IsAuthenticated, restored.IsAuthenticated)
	require.Equal(t, before.User, restored.User)
	require.False(t, restored.IsLoading)
	require.Empty(t, restored.Error)
}

func TestPersist_TransientFieldsAreNotStored(t *testing.T) {
	s, fake, kv := newStore(t)
	fake.Respond(apifake.MethodLogin, nil, rejection(400, "Invalid email or password"))
	s.Login(context.Background(), testEmail, "wrong")
	require.NotEmpty(t, s.State().Error)

	restored := reload(t, kv).State()
	require.Equal(t, session.Session{}, restored)
}

func TestPersist_Format(t *testing.T) {
	t.Run("logged in", func(t *testing.T) {
		_, _, kv := loggedIn(t)

		raw, ok, err := kv.GetItem(config.DefaultStorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, `{
			"state": {
				"user": {"email": "a@b.com"},
				"accessToken": "A1",
				"refreshToken": "R1",
				"isAuthenticated": true
			},
			"version": 0
		}`, raw)
	})

	t.Run("logged out writes nulls", func(t *testing.T) {
		s, _, kv := loggedIn(t)
		s.Logout()

		raw, _, err := kv.GetItem(config.DefaultStorageKey)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"state": {"user": null, "accessToken": null, "refreshToken": null, "isAuthenticated": false},
			"version": 0
		}`, raw)
	})

	t.Run("custom key", func(t *testing.T) {
		s, fake, kv := newStore(t, session.WithStorageKey("other-key"))
		fake.Respond(apifake.MethodLogin, authData("A1", "R1", users.User{users.FieldEmail: testEmail}), nil)
		s.Login(context.Background(), testEmail, testPassword)

		_, ok, _ := kv.GetItem(config.DefaultStorageKey)
		require.False(t, ok)
		_, ok, _ = kv.GetItem("other-key")
		require.True(t, ok)
	})
}

func TestPersist_HydrateBrowserBlob(t *testing.T) {
	kv := storagefake.New()
	blob := map[string]any{
		"state": map[string]any{
			"user": map[string]any{
				"id":         7,
				"fullName":   "Ravi Kumar",
				"email":      "ravi@example.com",
				"role":       "SERVICE_PROVIDER",
				"providerId": 107,
			},
			"accessToken":     "eyJ.access",
			"refreshToken":    "3f1c-refresh",
			"isAuthenticated": true,
		},
		"version": 0,
	}
	data, err := json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, kv.SetItem(config.DefaultStorageKey, string(data)))

	st := reload(t, kv).State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "eyJ.access", st.AccessToken)
	require.Equal(t, "3f1c-refresh", st.RefreshToken)
	require.Equal(t, "ravi@example.com", st.User.Email())
	require.Equal(t, users.RoleServiceProvider, st.User.Role())

	providerID, ok := st.User.ProviderID()
	require.True(t, ok)
	require.Equal(t, int64(107), providerID)
}

func TestPersist_UnreadableBlobStartsEmpty(t *testing.T) {
	tests := map[string]string{
		"not json":      `{"state":`,
		"wrong version": `{"state":{"accessToken":"A1","isAuthenticated":true},"version":3}`,
		"wrong shape":   `["a","b"]`,
		"empty":         ``,
	}

	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			kv := storagefake.New()
			require.NoError(t, kv.SetItem(config.DefaultStorageKey, blob))

			require.Equal(t, session.Session{}, reload(t, kv).State())
		})
	}
}

func TestPersist_Backends(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := storage.NewFileStore(filepath.Join(dir, "session.json"))
	require.NoError(t, err)

	sqliteStore, err := storage.NewSQLiteStore(filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	backends := map[string]storage.KeyValue{
		"file":   fileStore,
		"sqlite": sqliteStore,
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			fake := apifake.New()
			fake.Respond(apifake.MethodLogin, authData("A1", "R1", users.User{users.FieldEmail: testEmail}), nil)

			s, err := session.New(fake, kv, session.WithLogger(zerolog.Nop()))
			require.NoError(t, err)
			require.True(t, s.Login(context.Background(), testEmail, testPassword).Success)

			restored := reload(t, kv).State()
			require.True(t, restored.IsAuthenticated)
			require.Equal(t, "A1", restored.AccessToken)
			require.Equal(t, testEmail, restored.User.Email())
		})
	}
}

func TestPersist_CorruptFileIsReplacedOnNextWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{trunc"), 0o600))

	kv, err := storage.NewFileStore(path)
	require.NoError(t, err)

	fake := apifake.New()
	fake.Respond(apifake.MethodLogin, authData("A1", "R1", users.User{users.FieldEmail: testEmail}), nil)
	s, err := session.New(fake, kv, session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, session.Session{}, s.State())
	require.True(t, s.Login(context.Background(), testEmail, testPassword).Success)

	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)
	restored := reload(t, reopened).State()
	require.True(t, restored.IsAuthenticated)
	require.Equal(t, "A1", restored.AccessToken)
}
