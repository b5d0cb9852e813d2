package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "neondara.v1.LedgerService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	// LedgerServiceCreateEntryProcedure is the fully-qualified name of the LedgerService's CreateEntry RPC.
	LedgerServiceCreateEntryProcedure = "/neondara.v1.LedgerService/CreateEntry"
	// LedgerServiceGetEntryProcedure is the fully-qualified name of the LedgerService's GetEntry RPC.
	LedgerServiceGetEntryProcedure = "/neondara.v1.LedgerService/GetEntry"
	// LedgerServiceListEntriesProcedure is the fully-qualified name of the LedgerService's ListEntries RPC.
	LedgerServiceListEntriesProcedure = "/neondara.v1.LedgerService/ListEntries"
	// LedgerServiceUpdateEntryProcedure is the fully-qualified name of the LedgerService's UpdateEntry RPC.
	LedgerServiceUpdateEntryProcedure = "/neondara.v1.LedgerService/UpdateEntry"
	// LedgerServiceDeleteEntryProcedure is the fully-qualified name of the LedgerService's DeleteEntry RPC.
	LedgerServiceDeleteEntryProcedure = "/neondara.v1.LedgerService/DeleteEntry"
	// LedgerServiceGetBalanceProcedure is the fully-qualified name of the LedgerService's GetBalance RPC.
	LedgerServiceGetBalanceProcedure = "/neondara.v1.LedgerService/GetBalance"
)

// LedgerServiceClient is a client for the neondara.v1.LedgerService service.
// Gift exchange entries and balances.
type LedgerServiceClient interface {
	CreateEntry(context.Context, *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error)
	GetEntry(context.Context, *connect.Request[api.GetEntryRequest]) (*connect.Response[api.GetEntryResponse], error)
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	UpdateEntry(context.Context, *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.UpdateEntryResponse], error)
	DeleteEntry(context.Context, *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
}

// NewLedgerServiceClient constructs a client for the neondara.v1.LedgerService service. Requests and
// responses are JSON encoded; further options are applied after the codec.
//
// The URL supplied here should be the base URL for the Connect or gRPC server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		createEntry: connect.NewClient[api.CreateEntryRequest, api.CreateEntryResponse](
			httpClient,
			baseURL+LedgerServiceCreateEntryProcedure,
			opts...,
		),
		getEntry: connect.NewClient[api.GetEntryRequest, api.GetEntryResponse](
			httpClient,
			baseURL+LedgerServiceGetEntryProcedure,
			opts...,
		),
		listEntries: connect.NewClient[api.ListEntriesRequest, api.ListEntriesResponse](
			httpClient,
			baseURL+LedgerServiceListEntriesProcedure,
			opts...,
		),
		updateEntry: connect.NewClient[api.UpdateEntryRequest, api.UpdateEntryResponse](
			httpClient,
			baseURL+LedgerServiceUpdateEntryProcedure,
			opts...,
		),
		deleteEntry: connect.NewClient[api.DeleteEntryRequest, api.DeleteEntryResponse](
			httpClient,
			baseURL+LedgerServiceDeleteEntryProcedure,
			opts...,
		),
		getBalance: connect.NewClient[api.GetBalanceRequest, api.GetBalanceResponse](
			httpClient,
			baseURL+LedgerServiceGetBalanceProcedure,
			opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createEntry *connect.Client[api.CreateEntryRequest, api.CreateEntryResponse]
	getEntry    *connect.Client[api.GetEntryRequest, api.GetEntryResponse]
	listEntries *connect.Client[api.ListEntriesRequest, api.ListEntriesResponse]
	updateEntry *connect.Client[api.UpdateEntryRequest, api.UpdateEntryResponse]
	deleteEntry *connect.Client[api.DeleteEntryRequest, api.DeleteEntryResponse]
	getBalance  *connect.Client[api.GetBalanceRequest, api.GetBalanceResponse]
}

// CreateEntry calls neondara.v1.LedgerService.CreateEntry.
func (c *ledgerServiceClient) CreateEntry(ctx context.Context, req *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error) {
	return c.createEntry.CallUnary(ctx, req)
}

// GetEntry calls neondara.v1.LedgerService.GetEntry.
func (c *ledgerServiceClient) GetEntry(ctx context.Context, req *connect.Request[api.GetEntryRequest]) (*connect.Response[api.GetEntryResponse], error) {
	return c.getEntry.CallUnary(ctx, req)
}

// ListEntries calls neondara.v1.LedgerService.ListEntries.
func (c *ledgerServiceClient) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

// UpdateEntry calls neondara.v1.LedgerService.UpdateEntry.
func (c *ledgerServiceClient) UpdateEntry(ctx context.Context, req *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.UpdateEntryResponse], error) {
	return c.updateEntry.CallUnary(ctx, req)
}

// DeleteEntry calls neondara.v1.LedgerService.DeleteEntry.
func (c *ledgerServiceClient) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error) {
	return c.deleteEntry.CallUnary(ctx, req)
}

// GetBalance calls neondara.v1.LedgerService.GetBalance.
func (c *ledgerServiceClient) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the neondara.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateEntry(context.Context, *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error)
	GetEntry(context.Context, *connect.Request[api.GetEntryRequest]) (*connect.Response[api.GetEntryResponse], error)
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	UpdateEntry(context.Context, *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.UpdateEntryResponse], error)
	DeleteEntry(context.Context, *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with the JSON codec.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	ledgerServiceCreateEntryHandler := connect.NewUnaryHandler(
		LedgerServiceCreateEntryProcedure,
		svc.CreateEntry,
		opts...,
	)
	ledgerServiceGetEntryHandler := connect.NewUnaryHandler(
		LedgerServiceGetEntryProcedure,
		svc.GetEntry,
		opts...,
	)
	ledgerServiceListEntriesHandler := connect.NewUnaryHandler(
		LedgerServiceListEntriesProcedure,
		svc.ListEntries,
		opts...,
	)
	ledgerServiceUpdateEntryHandler := connect.NewUnaryHandler(
		LedgerServiceUpdateEntryProcedure,
		svc.UpdateEntry,
		opts...,
	)
	ledgerServiceDeleteEntryHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteEntryProcedure,
		svc.DeleteEntry,
		opts...,
	)
	ledgerServiceGetBalanceHandler := connect.NewUnaryHandler(
		LedgerServiceGetBalanceProcedure,
		svc.GetBalance,
		opts...,
	)
	return "/neondara.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateEntryProcedure:
			ledgerServiceCreateEntryHandler.ServeHTTP(w, r)
		case LedgerServiceGetEntryProcedure:
			ledgerServiceGetEntryHandler.ServeHTTP(w, r)
		case LedgerServiceListEntriesProcedure:
			ledgerServiceListEntriesHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateEntryProcedure:
			ledgerServiceUpdateEntryHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteEntryProcedure:
			ledgerServiceDeleteEntryHandler.ServeHTTP(w, r)
		case LedgerServiceGetBalanceProcedure:
			ledgerServiceGetBalanceHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
