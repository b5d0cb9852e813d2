package service

import (
	"context"
	"fmt"
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

// PeopleService implements the Connect PeopleService.
type PeopleService struct {
	store    storage.Store
	validate *validation.Validator
	i18n     *i18n.Translator
	logger   *slog.Logger
}

// NewPeopleService creates a PeopleService with the given storage backend.
func NewPeopleService(store storage.Store, validate *validation.Validator, translator *i18n.Translator, logger *slog.Logger) *PeopleService {
	return &PeopleService{store: store, validate: validate, i18n: translator, logger: logger}
}

// CreatePerson adds a contact. Names are unique per owner, ignoring case.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		OwnerID:  userID,
		Name:     req.Msg.Name,
		Relation: models.Relation(req.Msg.Relation),
		Notes:    req.Msg.Notes,
	}
	person.Normalize()
	if err := s.validate.Person(person); err != nil {
		return nil, toConnectError(s.logger, "CreatePerson", err)
	}
	if err := s.checkNameFree(ctx, userID, person.Name, ""); err != nil {
		return nil, toConnectError(s.logger, "CreatePerson", err)
	}

	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, toConnectError(s.logger, "CreatePerson", err)
	}

	s.logger.Info("Person created", "user_id", userID, "person_id", person.ID)
	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(person)}), nil
}

// GetPerson returns a contact with their balance.
func (s *PeopleService) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var (
		person  *models.Person
		entries []models.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		person, err = s.store.GetPerson(gctx, userID, req.Msg.ID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.store.ListEntries(gctx, userID, storage.EntryFilter{PersonID: req.Msg.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, toConnectError(s.logger, "GetPerson", err)
	}

	loc := s.i18n.FromHeader(req.Header())
	return connect.NewResponse(&api.GetPersonResponse{
		Person:  toAPIPerson(person),
		Balance: toAPIBalance(calculator.ComputeBalance(entries), loc),
	}), nil
}

// ListPeople returns every contact with their balance, sorted by name.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	people, entries, err := s.loadPeopleAndEntries(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListPeople", err)
	}

	byID := make(map[string]*models.Person, len(people))
	for i := range people {
		byID[people[i].ID] = &people[i]
	}

	search := strings.ToLower(strings.TrimSpace(req.Msg.Search))
	loc := s.i18n.FromHeader(req.Header())

	result := make([]*api.PersonBalance, 0, len(people))
	for _, pb := range calculator.ComputePersonBalances(people, entries) {
		if search != "" && !strings.Contains(strings.ToLower(pb.PersonName), search) {
			continue
		}
		result = append(result, &api.PersonBalance{
			Person:     toAPIPerson(byID[pb.PersonID]),
			Balance:    toAPIBalance(pb.Balance, loc),
			EntryCount: pb.EntryCount,
		})
	}

	return connect.NewResponse(&api.ListPeopleResponse{People: result}), nil
}

// UpdatePerson edits a contact's name, relation and notes.
func (s *PeopleService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	person, err := s.store.GetPerson(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdatePerson", err)
	}

	person.Name = req.Msg.Name
	person.Relation = models.Relation(req.Msg.Relation)
	person.Notes = req.Msg.Notes
	person.Normalize()
	if err := s.validate.Person(person); err != nil {
		return nil, toConnectError(s.logger, "UpdatePerson", err)
	}
	if err := s.checkNameFree(ctx, userID, person.Name, person.ID); err != nil {
		return nil, toConnectError(s.logger, "UpdatePerson", err)
	}

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return nil, toConnectError(s.logger, "UpdatePerson", err)
	}

	updated, err := s.store.GetPerson(ctx, userID, person.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdatePerson", err)
	}

	s.logger.Info("Person updated", "user_id", userID, "person_id", person.ID)
	return connect.NewResponse(&api.UpdatePersonResponse{Person: toAPIPerson(updated)}), nil
}

// DeletePerson removes a contact with their entries and bill participations.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.store.DeletePerson(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "DeletePerson", err)
	}

	s.logger.Info("Person deleted",
		"user_id", userID,
		"person_id", req.Msg.ID,
		"entries_deleted", res.EntriesDeleted,
		"bills_updated", res.BillsUpdated,
		"bills_deleted", res.BillsDeleted,
	)
	return connect.NewResponse(&api.DeletePersonResponse{
		EntriesDeleted: res.EntriesDeleted,
		BillsUpdated:   res.BillsUpdated,
		BillsDeleted:   res.BillsDeleted,
	}), nil
}

// checkNameFree returns storage.ErrConflict when another contact of the
// owner already uses name. exceptID skips the contact being edited.
func (s *PeopleService) checkNameFree(ctx context.Context, ownerID, name, exceptID string) error {
	people, err := s.store.ListPeople(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, p := range people {
		if p.ID != exceptID && models.SameName(p.Name, name) {
			return fmt.Errorf("%w: a person named %q already exists", storage.ErrConflict, p.Name)
		}
	}
	return nil
}

func (s *PeopleService) loadPeopleAndEntries(ctx context.Context, ownerID string) ([]models.Person, []models.Entry, error) {
	var (
		people  []models.Person
		entries []models.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = s.store.ListPeople(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.store.ListEntries(gctx, ownerID, storage.EntryFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return people, entries, nil
}
