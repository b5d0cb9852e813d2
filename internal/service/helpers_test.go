package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/middleware"
	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage/sqlite"
	"github.com/mmynk/neondara/internal/validation"
	"github.com/mmynk/neondara/pkg/api"
	"github.com/mmynk/neondara/pkg/api/apiconnect"
)

// testUserHeader lets a test client pick which owner the server sees.
const testUserHeader = "X-Test-User"

// testAuthInterceptor stands in for RequireAuth: it trusts testUserHeader.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testUserHeader); id != "" {
				ctx = middleware.WithUser(ctx, id, id+"@example.com")
			}
			return next(ctx, req)
		}
	}
}

// asUser is the client half of testAuthInterceptor.
func asUser(userID string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(testUserHeader, userID)
			return next(ctx, req)
		}
	}))
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type clients struct {
	people apiconnect.PeopleServiceClient
	ledger apiconnect.LedgerServiceClient
	bills  apiconnect.BillServiceClient
}

type testEnv struct {
	store      *sqlite.SQLiteStore
	translator *i18n.Translator
	server     *httptest.Server
	alice      *models.User
	bob        *models.User
}

// setupTestServer serves every RPC service over a fresh SQLite file with two
// registered owners.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	translator, err := i18n.New("en")
	require.NoError(t, err)

	env := &testEnv{store: store, translator: translator}
	env.alice = models.NewUser("alice@example.com", "Alice", "hash")
	env.bob = models.NewUser("bob@example.com", "Bob", "hash")
	require.NoError(t, store.CreateUser(context.Background(), env.alice))
	require.NoError(t, store.CreateUser(context.Background(), env.bob))

	logger := newDiscardLogger()
	validate := validation.New()
	interceptors := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewPeopleServiceHandler(NewPeopleService(store, validate, translator, logger), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, validate, translator, logger), interceptors))
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, validate, logger), interceptors))

	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) clientsFor(userID string) clients {
	opt := asUser(userID)
	return clients{
		people: apiconnect.NewPeopleServiceClient(http.DefaultClient, e.server.URL, opt),
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, e.server.URL, opt),
		bills:  apiconnect.NewBillServiceClient(http.DefaultClient, e.server.URL, opt),
	}
}

func createPerson(t *testing.T, c clients, name string) *api.Person {
	t.Helper()
	resp, err := c.people.CreatePerson(context.Background(), connect.NewRequest(&api.CreatePersonRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.Person
}

func createMoneyEntry(t *testing.T, c clients, personID, direction string, amount float64, date string) *api.Entry {
	t.Helper()
	resp, err := c.ledger.CreateEntry(context.Background(), connect.NewRequest(&api.CreateEntryRequest{
		Entry: &api.EntryInput{
			PersonID:    personID,
			Direction:   direction,
			Date:        date,
			Event:       "Wedding",
			GiftType:    "Money",
			Amount:      &amount,
			Description: "PKR",
		},
	}))
	require.NoError(t, err)
	return resp.Msg.Entry
}

func ptr(v float64) *float64 { return &v }

// requireCode asserts err is a connect error with the given code.
func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}
