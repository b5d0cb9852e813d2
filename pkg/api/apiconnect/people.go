package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/pkg/api"
)

// PeopleServiceName is the fully-qualified name of the PeopleService service.
const PeopleServiceName = "neondara.v1.PeopleService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	// PeopleServiceCreatePersonProcedure is the fully-qualified name of the PeopleService's CreatePerson RPC.
	PeopleServiceCreatePersonProcedure = "/neondara.v1.PeopleService/CreatePerson"
	// PeopleServiceGetPersonProcedure is the fully-qualified name of the PeopleService's GetPerson RPC.
	PeopleServiceGetPersonProcedure = "/neondara.v1.PeopleService/GetPerson"
	// PeopleServiceListPeopleProcedure is the fully-qualified name of the PeopleService's ListPeople RPC.
	PeopleServiceListPeopleProcedure = "/neondara.v1.PeopleService/ListPeople"
	// PeopleServiceUpdatePersonProcedure is the fully-qualified name of the PeopleService's UpdatePerson RPC.
	PeopleServiceUpdatePersonProcedure = "/neondara.v1.PeopleService/UpdatePerson"
	// PeopleServiceDeletePersonProcedure is the fully-qualified name of the PeopleService's DeletePerson RPC.
	PeopleServiceDeletePersonProcedure = "/neondara.v1.PeopleService/DeletePerson"
)

// PeopleServiceClient is a client for the neondara.v1.PeopleService service.
// Contacts and their balances.
type PeopleServiceClient interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

// NewPeopleServiceClient constructs a client for the neondara.v1.PeopleService service. Requests and
// responses are JSON encoded; further options are applied after the codec.
//
// The URL supplied here should be the base URL for the Connect or gRPC server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PeopleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &peopleServiceClient{
		createPerson: connect.NewClient[api.CreatePersonRequest, api.CreatePersonResponse](
			httpClient,
			baseURL+PeopleServiceCreatePersonProcedure,
			opts...,
		),
		getPerson: connect.NewClient[api.GetPersonRequest, api.GetPersonResponse](
			httpClient,
			baseURL+PeopleServiceGetPersonProcedure,
			opts...,
		),
		listPeople: connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](
			httpClient,
			baseURL+PeopleServiceListPeopleProcedure,
			opts...,
		),
		updatePerson: connect.NewClient[api.UpdatePersonRequest, api.UpdatePersonResponse](
			httpClient,
			baseURL+PeopleServiceUpdatePersonProcedure,
			opts...,
		),
		deletePerson: connect.NewClient[api.DeletePersonRequest, api.DeletePersonResponse](
			httpClient,
			baseURL+PeopleServiceDeletePersonProcedure,
			opts...,
		),
	}
}

// peopleServiceClient implements PeopleServiceClient.
type peopleServiceClient struct {
	createPerson *connect.Client[api.CreatePersonRequest, api.CreatePersonResponse]
	getPerson    *connect.Client[api.GetPersonRequest, api.GetPersonResponse]
	listPeople   *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	updatePerson *connect.Client[api.UpdatePersonRequest, api.UpdatePersonResponse]
	deletePerson *connect.Client[api.DeletePersonRequest, api.DeletePersonResponse]
}

// CreatePerson calls neondara.v1.PeopleService.CreatePerson.
func (c *peopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

// GetPerson calls neondara.v1.PeopleService.GetPerson.
func (c *peopleServiceClient) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	return c.getPerson.CallUnary(ctx, req)
}

// ListPeople calls neondara.v1.PeopleService.ListPeople.
func (c *peopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

// UpdatePerson calls neondara.v1.PeopleService.UpdatePerson.
func (c *peopleServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	return c.updatePerson.CallUnary(ctx, req)
}

// DeletePerson calls neondara.v1.PeopleService.DeletePerson.
func (c *peopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

// PeopleServiceHandler is an implementation of the neondara.v1.PeopleService service.
type PeopleServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with the JSON codec.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	peopleServiceCreatePersonHandler := connect.NewUnaryHandler(
		PeopleServiceCreatePersonProcedure,
		svc.CreatePerson,
		opts...,
	)
	peopleServiceGetPersonHandler := connect.NewUnaryHandler(
		PeopleServiceGetPersonProcedure,
		svc.GetPerson,
		opts...,
	)
	peopleServiceListPeopleHandler := connect.NewUnaryHandler(
		PeopleServiceListPeopleProcedure,
		svc.ListPeople,
		opts...,
	)
	peopleServiceUpdatePersonHandler := connect.NewUnaryHandler(
		PeopleServiceUpdatePersonProcedure,
		svc.UpdatePerson,
		opts...,
	)
	peopleServiceDeletePersonHandler := connect.NewUnaryHandler(
		PeopleServiceDeletePersonProcedure,
		svc.DeletePerson,
		opts...,
	)
	return "/neondara.v1.PeopleService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PeopleServiceCreatePersonProcedure:
			peopleServiceCreatePersonHandler.ServeHTTP(w, r)
		case PeopleServiceGetPersonProcedure:
			peopleServiceGetPersonHandler.ServeHTTP(w, r)
		case PeopleServiceListPeopleProcedure:
			peopleServiceListPeopleHandler.ServeHTTP(w, r)
		case PeopleServiceUpdatePersonProcedure:
			peopleServiceUpdatePersonHandler.ServeHTTP(w, r)
		case PeopleServiceDeletePersonProcedure:
			peopleServiceDeletePersonHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
