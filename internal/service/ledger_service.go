package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/neondara/internal/calculator"
	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage"
	"github.com/mmynk/neondara/internal/validation"
	"github.com/mmynk/neondara/pkg/api"
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	store    storage.Store
	validate *validation.Validator
	i18n     *i18n.Translator
	logger   *slog.Logger
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, validate *validation.Validator, translator *i18n.Translator, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, validate: validate, i18n: translator, logger: logger}
}

// CreateEntry records a gift exchange with one of the owner's contacts.
func (s *LedgerService) CreateEntry(ctx context.Context, req *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.prepareEntry(ctx, userID, req.Msg.Entry)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateEntry", err)
	}

	if err := s.store.CreateEntry(ctx, &entry); err != nil {
		return nil, toConnectError(s.logger, "CreateEntry", err)
	}

	saved, err := s.store.GetEntry(ctx, userID, entry.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateEntry", err)
	}

	s.logger.Info("Entry created",
		"user_id", userID,
		"entry_id", saved.ID,
		"gift_type", saved.GiftType,
		"direction", saved.Direction,
	)
	return connect.NewResponse(&api.CreateEntryResponse{Entry: toAPIEntry(saved)}), nil
}

// GetEntry retrieves an entry by ID.
func (s *LedgerService) GetEntry(ctx context.Context, req *connect.Request[api.GetEntryRequest]) (*connect.Response[api.GetEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.GetEntry(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetEntry", err)
	}
	return connect.NewResponse(&api.GetEntryResponse{Entry: toAPIEntry(entry)}), nil
}

// ListEntries returns the owner's entries, newest first, narrowed by the request filters.
func (s *LedgerService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := entryFilter(req.Msg)
	if err != nil {
		return nil, toConnectError(s.logger, "ListEntries", err)
	}

	entries, err := s.store.ListEntries(ctx, userID, filter)
	if err != nil {
		return nil, toConnectError(s.logger, "ListEntries", err)
	}

	result := make([]*api.Entry, len(entries))
	for i := range entries {
		result[i] = toAPIEntry(&entries[i])
	}
	return connect.NewResponse(&api.ListEntriesResponse{Entries: result}), nil
}

// UpdateEntry replaces the editable fields of an entry.
func (s *LedgerService) UpdateEntry(ctx context.Context, req *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.UpdateEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetEntry(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateEntry", err)
	}

	entry, err := s.prepareEntry(ctx, userID, req.Msg.Entry)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateEntry", err)
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateEntry(ctx, &entry); err != nil {
		return nil, toConnectError(s.logger, "UpdateEntry", err)
	}

	saved, err := s.store.GetEntry(ctx, userID, entry.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateEntry", err)
	}

	s.logger.Info("Entry updated", "user_id", userID, "entry_id", saved.ID)
	return connect.NewResponse(&api.UpdateEntryResponse{Entry: toAPIEntry(saved)}), nil
}

// DeleteEntry removes an entry by ID.
func (s *LedgerService) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteEntry(ctx, userID, req.Msg.ID); err != nil {
		return nil, toConnectError(s.logger, "DeleteEntry", err)
	}

	s.logger.Info("Entry deleted", "user_id", userID, "entry_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteEntryResponse{}), nil
}

// GetBalance summarizes the owner's money balance and category totals,
// optionally for a single contact.
func (s *LedgerService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	personID := strings.TrimSpace(req.Msg.PersonID)

	var entries []models.Entry
	g, gctx := errgroup.WithContext(ctx)
	if personID != "" {
		g.Go(func() error {
			_, err := s.store.GetPerson(gctx, userID, personID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		entries, err = s.store.ListEntries(gctx, userID, storage.EntryFilter{PersonID: personID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, toConnectError(s.logger, "GetBalance", err)
	}

	loc := s.i18n.FromHeader(req.Header())
	return connect.NewResponse(&api.GetBalanceResponse{
		Balance:   toAPIBalance(calculator.ComputeBalance(entries), loc),
		Breakdown: toAPIBreakdown(calculator.ComputeCategoryBreakdown(entries)),
	}), nil
}

// prepareEntry converts, normalizes and validates an input and checks that
// the person belongs to the owner.
func (s *LedgerService) prepareEntry(ctx context.Context, ownerID string, in *api.EntryInput) (models.Entry, error) {
	entry, err := entryFromInput(in)
	if err != nil {
		return entry, err
	}
	entry.OwnerID = ownerID
	entry.Normalize()
	if err := s.validate.Entry(&entry); err != nil {
		return entry, err
	}
	if _, err := s.store.GetPerson(ctx, ownerID, entry.PersonID); err != nil {
		return entry, err
	}
	return entry, nil
}

func entryFilter(req *api.ListEntriesRequest) (storage.EntryFilter, error) {
	filter := storage.EntryFilter{
		PersonID:  strings.TrimSpace(req.PersonID),
		Event:     models.Event(strings.TrimSpace(req.Event)),
		Direction: models.Direction(strings.TrimSpace(req.Direction)),
		Search:    strings.TrimSpace(req.Search),
	}
	switch filter.Event {
	case "", models.EventWedding, models.EventBirth, models.EventHousewarming, models.EventOther:
	default:
		return filter, invalidArgument("event: unknown value %q", filter.Event)
	}
	switch filter.Direction {
	case "", models.DirectionGiven, models.DirectionReceived:
	default:
		return filter, invalidArgument("direction: unknown value %q", filter.Direction)
	}
	return filter, nil
}
