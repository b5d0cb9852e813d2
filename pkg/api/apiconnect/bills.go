package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "neondara.v1.BillService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	// BillServiceCreateBillProcedure is the fully-qualified name of the BillService's CreateBill RPC.
	BillServiceCreateBillProcedure = "/neondara.v1.BillService/CreateBill"
	// BillServiceGetBillProcedure is the fully-qualified name of the BillService's GetBill RPC.
	BillServiceGetBillProcedure = "/neondara.v1.BillService/GetBill"
	// BillServiceListBillsProcedure is the fully-qualified name of the BillService's ListBills RPC.
	BillServiceListBillsProcedure = "/neondara.v1.BillService/ListBills"
	// BillServiceUpdateBillProcedure is the fully-qualified name of the BillService's UpdateBill RPC.
	BillServiceUpdateBillProcedure = "/neondara.v1.BillService/UpdateBill"
	// BillServiceDeleteBillProcedure is the fully-qualified name of the BillService's DeleteBill RPC.
	BillServiceDeleteBillProcedure = "/neondara.v1.BillService/DeleteBill"
	// BillServiceSetParticipantPaidProcedure is the fully-qualified name of the BillService's SetParticipantPaid RPC.
	BillServiceSetParticipantPaidProcedure = "/neondara.v1.BillService/SetParticipantPaid"
	// BillServiceSplitEquallyProcedure is the fully-qualified name of the BillService's SplitEqually RPC.
	BillServiceSplitEquallyProcedure = "/neondara.v1.BillService/SplitEqually"
)

// BillServiceClient is a client for the neondara.v1.BillService service.
// Shared bills and their settlement.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	SetParticipantPaid(context.Context, *connect.Request[api.SetParticipantPaidRequest]) (*connect.Response[api.SetParticipantPaidResponse], error)
	SplitEqually(context.Context, *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error)
}

// NewBillServiceClient constructs a client for the neondara.v1.BillService service. Requests and
// responses are JSON encoded; further options are applied after the codec.
//
// The URL supplied here should be the base URL for the Connect or gRPC server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &billServiceClient{
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](
			httpClient,
			baseURL+BillServiceCreateBillProcedure,
			opts...,
		),
		getBill: connect.NewClient[api.GetBillRequest, api.GetBillResponse](
			httpClient,
			baseURL+BillServiceGetBillProcedure,
			opts...,
		),
		listBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](
			httpClient,
			baseURL+BillServiceListBillsProcedure,
			opts...,
		),
		updateBill: connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](
			httpClient,
			baseURL+BillServiceUpdateBillProcedure,
			opts...,
		),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](
			httpClient,
			baseURL+BillServiceDeleteBillProcedure,
			opts...,
		),
		setParticipantPaid: connect.NewClient[api.SetParticipantPaidRequest, api.SetParticipantPaidResponse](
			httpClient,
			baseURL+BillServiceSetParticipantPaidProcedure,
			opts...,
		),
		splitEqually: connect.NewClient[api.SplitEquallyRequest, api.SplitEquallyResponse](
			httpClient,
			baseURL+BillServiceSplitEquallyProcedure,
			opts...,
		),
	}
}

// billServiceClient implements BillServiceClient.
type billServiceClient struct {
	createBill         *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill            *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills          *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	updateBill         *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	deleteBill         *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	setParticipantPaid *connect.Client[api.SetParticipantPaidRequest, api.SetParticipantPaidResponse]
	splitEqually       *connect.Client[api.SplitEquallyRequest, api.SplitEquallyResponse]
}

// CreateBill calls neondara.v1.BillService.CreateBill.
func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

// GetBill calls neondara.v1.BillService.GetBill.
func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

// ListBills calls neondara.v1.BillService.ListBills.
func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

// UpdateBill calls neondara.v1.BillService.UpdateBill.
func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

// DeleteBill calls neondara.v1.BillService.DeleteBill.
func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

// SetParticipantPaid calls neondara.v1.BillService.SetParticipantPaid.
func (c *billServiceClient) SetParticipantPaid(ctx context.Context, req *connect.Request[api.SetParticipantPaidRequest]) (*connect.Response[api.SetParticipantPaidResponse], error) {
	return c.setParticipantPaid.CallUnary(ctx, req)
}

// SplitEqually calls neondara.v1.BillService.SplitEqually.
func (c *billServiceClient) SplitEqually(ctx context.Context, req *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error) {
	return c.splitEqually.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the neondara.v1.BillService service.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	SetParticipantPaid(context.Context, *connect.Request[api.SetParticipantPaidRequest]) (*connect.Response[api.SetParticipantPaidResponse], error)
	SplitEqually(context.Context, *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with the JSON codec.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	billServiceCreateBillHandler := connect.NewUnaryHandler(
		BillServiceCreateBillProcedure,
		svc.CreateBill,
		opts...,
	)
	billServiceGetBillHandler := connect.NewUnaryHandler(
		BillServiceGetBillProcedure,
		svc.GetBill,
		opts...,
	)
	billServiceListBillsHandler := connect.NewUnaryHandler(
		BillServiceListBillsProcedure,
		svc.ListBills,
		opts...,
	)
	billServiceUpdateBillHandler := connect.NewUnaryHandler(
		BillServiceUpdateBillProcedure,
		svc.UpdateBill,
		opts...,
	)
	billServiceDeleteBillHandler := connect.NewUnaryHandler(
		BillServiceDeleteBillProcedure,
		svc.DeleteBill,
		opts...,
	)
	billServiceSetParticipantPaidHandler := connect.NewUnaryHandler(
		BillServiceSetParticipantPaidProcedure,
		svc.SetParticipantPaid,
		opts...,
	)
	billServiceSplitEquallyHandler := connect.NewUnaryHandler(
		BillServiceSplitEquallyProcedure,
		svc.SplitEqually,
		opts...,
	)
	return "/neondara.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceCreateBillProcedure:
			billServiceCreateBillHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			billServiceGetBillHandler.ServeHTTP(w, r)
		case BillServiceListBillsProcedure:
			billServiceListBillsHandler.ServeHTTP(w, r)
		case BillServiceUpdateBillProcedure:
			billServiceUpdateBillHandler.ServeHTTP(w, r)
		case BillServiceDeleteBillProcedure:
			billServiceDeleteBillHandler.ServeHTTP(w, r)
		case BillServiceSetParticipantPaidProcedure:
			billServiceSetParticipantPaidHandler.ServeHTTP(w, r)
		case BillServiceSplitEquallyProcedure:
			billServiceSplitEquallyHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
