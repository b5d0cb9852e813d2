package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/internal/calculator"
	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage"
	"github.com/mmynk/neondara/internal/validation"
	"github.com/mmynk/neondara/pkg/api"
)

// BillService implements the Connect BillService.
type BillService struct {
	store    storage.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewBillService creates a BillService with the given storage backend.
func NewBillService(store storage.Store, validate *validation.Validator, logger *slog.Logger) *BillService {
	return &BillService{store: store, validate: validate, logger: logger}
}

// CreateBill stores a shared bill with its participants.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.prepareBill(ctx, userID, req.Msg.Bill)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateBill", err)
	}

	if err := s.store.CreateBill(ctx, &bill); err != nil {
		return nil, toConnectError(s.logger, "CreateBill", err)
	}

	saved, err := s.store.GetBill(ctx, userID, bill.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateBill", err)
	}

	s.logger.Info("Bill created",
		"user_id", userID,
		"bill_id", saved.ID,
		"total", saved.TotalAmount,
		"participants", len(saved.Participants),
	)
	return connect.NewResponse(&api.CreateBillResponse{Bill: toAPIBill(saved)}), nil
}

// GetBill retrieves a bill by ID.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetBill", err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(bill)}), nil
}

// ListBills returns the owner's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListBills", err)
	}

	result := make([]*api.Bill, len(bills))
	for i := range bills {
		result[i] = toAPIBill(&bills[i])
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: result}), nil
}

// UpdateBill replaces a bill and its participant list.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetBill(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateBill", err)
	}

	bill, err := s.prepareBill(ctx, userID, req.Msg.Bill)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateBill", err)
	}
	bill.ID = existing.ID
	bill.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateBill(ctx, &bill); err != nil {
		return nil, toConnectError(s.logger, "UpdateBill", err)
	}

	saved, err := s.store.GetBill(ctx, userID, bill.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateBill", err)
	}

	s.logger.Info("Bill updated", "user_id", userID, "bill_id", saved.ID)
	return connect.NewResponse(&api.UpdateBillResponse{Bill: toAPIBill(saved)}), nil
}

// DeleteBill removes a bill by ID.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBill(ctx, userID, req.Msg.ID); err != nil {
		return nil, toConnectError(s.logger, "DeleteBill", err)
	}

	s.logger.Info("Bill deleted", "user_id", userID, "bill_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// SetParticipantPaid toggles one participant's paid flag. A person who is not
// on the bill leaves it unchanged.
func (s *BillService) SetParticipantPaid(ctx context.Context, req *connect.Request[api.SetParticipantPaidRequest]) (*connect.Response[api.SetParticipantPaidResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, userID, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(s.logger, "SetParticipantPaid", err)
	}

	if !bill.HasParticipant(req.Msg.PersonID) {
		return connect.NewResponse(&api.SetParticipantPaidResponse{Bill: toAPIBill(bill)}), nil
	}

	updated := calculator.SetParticipantPaidStatus(*bill, req.Msg.PersonID, req.Msg.IsPaid)
	if err := s.store.UpdateBill(ctx, &updated); err != nil {
		return nil, toConnectError(s.logger, "SetParticipantPaid", err)
	}

	saved, err := s.store.GetBill(ctx, userID, bill.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "SetParticipantPaid", err)
	}

	s.logger.Info("Participant paid status set",
		"user_id", userID,
		"bill_id", saved.ID,
		"person_id", req.Msg.PersonID,
		"is_paid", req.Msg.IsPaid,
		"settled", calculator.IsBillSettled(*saved),
	)
	return connect.NewResponse(&api.SetParticipantPaidResponse{Bill: toAPIBill(saved)}), nil
}

// SplitEqually previews the equal share for a total. Nothing is stored.
func (s *BillService) SplitEqually(ctx context.Context, req *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	share, err := calculator.SplitEqually(req.Msg.TotalAmount, req.Msg.ParticipantCount)
	if err != nil {
		return nil, toConnectError(s.logger, "SplitEqually", err)
	}
	return connect.NewResponse(&api.SplitEquallyResponse{ShareAmount: share}), nil
}

// prepareBill converts and validates an input, applies an equal split when
// asked, and checks that the payer and every participant belong to the owner.
func (s *BillService) prepareBill(ctx context.Context, ownerID string, in *api.BillInput) (models.Bill, error) {
	bill, err := billFromInput(in)
	if err != nil {
		return bill, err
	}
	bill.OwnerID = ownerID
	if bill.PayerID == "" {
		bill.PayerID = ownerID
	}
	bill.Normalize()

	if err := calculator.ValidateParticipants(bill); err != nil {
		return bill, err
	}
	if in.SplitEqually {
		if bill, err = calculator.ApplyEqualSplit(bill); err != nil {
			return bill, err
		}
	}
	if err := s.validate.Bill(&bill); err != nil {
		return bill, err
	}
	if _, err := calculator.ValidateShares(bill); err != nil {
		return bill, err
	}

	people, err := s.store.ListPeople(ctx, ownerID)
	if err != nil {
		return bill, err
	}
	known := make(map[string]struct{}, len(people))
	for _, p := range people {
		known[p.ID] = struct{}{}
	}
	if _, ok := known[bill.PayerID]; !ok && bill.PayerID != ownerID {
		return bill, invalidArgument("payerId: unknown person %q", bill.PayerID)
	}
	for _, p := range bill.Participants {
		if _, ok := known[p.PersonID]; !ok {
			return bill, invalidArgument("participants: unknown person %q", p.PersonID)
		}
	}
	return bill, nil
}
