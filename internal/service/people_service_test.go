package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/neondara/pkg/api"
	"github.com/mmynk/neondara/pkg/api/apiconnect"
)

func TestCreatePerson(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	resp, err := c.people.CreatePerson(ctx, connect.NewRequest(&api.CreatePersonRequest{
		Name:     "  Ayesha Khan ",
		Relation: "Cousin",
		Notes:    "Lahore",
	}))
	require.NoError(t, err)

	person := resp.Msg.Person
	assert.NotEmpty(t, person.ID)
	assert.Equal(t, "Ayesha Khan", person.Name)
	assert.Equal(t, "Cousin", person.Relation)
	assert.NotZero(t, person.CreatedAt)

	tests := []struct {
		name string
		req  *api.CreatePersonRequest
		code connect.Code
	}{
		{name: "duplicate name ignoring case", req: &api.CreatePersonRequest{Name: "ayesha khan"}, code: connect.CodeAlreadyExists},
		{name: "empty name", req: &api.CreatePersonRequest{Name: "   "}, code: connect.CodeInvalidArgument},
		{name: "unknown relation", req: &api.CreatePersonRequest{Name: "Bilal", Relation: "Neighbour"}, code: connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.people.CreatePerson(ctx, connect.NewRequest(tt.req))
			requireCode(t, err, tt.code)
		})
	}
}

func TestCreatePerson_SameNameDifferentOwners(t *testing.T) {
	env := setupTestServer(t)

	createPerson(t, env.clientsFor(env.alice.ID), "Sana")
	person := createPerson(t, env.clientsFor(env.bob.ID), "Sana")
	assert.Equal(t, "Sana", person.Name)
}

func TestPeopleService_RequiresUser(t *testing.T) {
	env := setupTestServer(t)
	client := apiconnect.NewPeopleServiceClient(http.DefaultClient, env.server.URL)

	_, err := client.ListPeople(context.Background(), connect.NewRequest(&api.ListPeopleRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)
}

func TestGetPerson_Balance(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)

	person := createPerson(t, c, "Hamza")
	createMoneyEntry(t, c, person.ID, "given", 500, "2024-03-01")
	createMoneyEntry(t, c, person.ID, "received", 200, "2024-04-01")

	resp, err := c.people.GetPerson(context.Background(), connect.NewRequest(&api.GetPersonRequest{ID: person.ID}))
	require.NoError(t, err)

	assert.Equal(t, "Hamza", resp.Msg.Person.Name)
	balance := resp.Msg.Balance
	assert.Equal(t, 500.0, balance.Given)
	assert.Equal(t, 200.0, balance.Received)
	assert.Equal(t, 300.0, balance.Net)
	assert.Equal(t, "owed", balance.Status)
	assert.Equal(t, "You will receive 300.00", balance.StatusText)
}

func TestGetPerson_NotFound(t *testing.T) {
	env := setupTestServer(t)
	person := createPerson(t, env.clientsFor(env.alice.ID), "Hamza")

	_, err := env.clientsFor(env.alice.ID).people.GetPerson(context.Background(), connect.NewRequest(&api.GetPersonRequest{ID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)

	// Another owner's contact looks exactly like a missing one.
	_, err = env.clientsFor(env.bob.ID).people.GetPerson(context.Background(), connect.NewRequest(&api.GetPersonRequest{ID: person.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestListPeople(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	zara := createPerson(t, c, "zara")
	ali := createPerson(t, c, "Ali")
	createPerson(t, c, "Bushra")
	createPerson(t, env.clientsFor(env.bob.ID), "Not Alice's")

	createMoneyEntry(t, c, ali.ID, "given", 1000, "2024-01-10")
	createMoneyEntry(t, c, zara.ID, "received", 250, "2024-01-11")

	resp, err := c.people.ListPeople(ctx, connect.NewRequest(&api.ListPeopleRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.People, 3)

	var names []string
	for _, pb := range resp.Msg.People {
		names = append(names, pb.Person.Name)
	}
	assert.Equal(t, []string{"Ali", "Bushra", "zara"}, names)

	assert.Equal(t, 1000.0, resp.Msg.People[0].Balance.Net)
	assert.Equal(t, 1, resp.Msg.People[0].EntryCount)
	assert.Equal(t, "square", resp.Msg.People[1].Balance.Status)
	assert.Equal(t, "owing", resp.Msg.People[2].Balance.Status)
	assert.Equal(t, "You will give 250.00", resp.Msg.People[2].Balance.StatusText)

	resp, err = c.people.ListPeople(ctx, connect.NewRequest(&api.ListPeopleRequest{Search: "BUSH"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.People, 1)
	assert.Equal(t, "Bushra", resp.Msg.People[0].Person.Name)
}

func TestUpdatePerson(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	person := createPerson(t, c, "Imran")
	createPerson(t, c, "Farah")

	resp, err := c.people.UpdatePerson(ctx, connect.NewRequest(&api.UpdatePersonRequest{
		ID:       person.ID,
		Name:     "Imran Ahmed",
		Relation: "Uncle",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Imran Ahmed", resp.Msg.Person.Name)
	assert.Equal(t, "Uncle", resp.Msg.Person.Relation)
	assert.Equal(t, person.CreatedAt, resp.Msg.Person.CreatedAt)

	// Renaming to its own name in a different case is allowed.
	_, err = c.people.UpdatePerson(ctx, connect.NewRequest(&api.UpdatePersonRequest{ID: person.ID, Name: "IMRAN AHMED"}))
	require.NoError(t, err)

	_, err = c.people.UpdatePerson(ctx, connect.NewRequest(&api.UpdatePersonRequest{ID: person.ID, Name: "farah"}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = env.clientsFor(env.bob.ID).people.UpdatePerson(ctx, connect.NewRequest(&api.UpdatePersonRequest{ID: person.ID, Name: "Hijacked"}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestDeletePerson_Cascade(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	nadia := createPerson(t, c, "Nadia")
	omar := createPerson(t, c, "Omar")

	createMoneyEntry(t, c, nadia.ID, "given", 100, "2024-02-01")
	createMoneyEntry(t, c, nadia.ID, "received", 50, "2024-02-02")
	kept := createMoneyEntry(t, c, omar.ID, "given", 70, "2024-02-03")

	shared, err := c.bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{Bill: &api.BillInput{
		Description: "Dinner",
		TotalAmount: 90,
		Date:        "2024-02-05",
		PayerID:     nadia.ID,
		Participants: []*api.Participant{
			{PersonID: nadia.ID},
			{PersonID: omar.ID},
		},
		SplitEqually: true,
	}}))
	require.NoError(t, err)

	solo, err := c.bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{Bill: &api.BillInput{
		Description:  "Taxi",
		TotalAmount:  20,
		Date:         "2024-02-06",
		Participants: []*api.Participant{{PersonID: nadia.ID, ShareAmount: 20}},
	}}))
	require.NoError(t, err)

	resp, err := c.people.DeletePerson(ctx, connect.NewRequest(&api.DeletePersonRequest{ID: nadia.ID}))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Msg.EntriesDeleted)
	assert.Equal(t, 1, resp.Msg.BillsUpdated)
	assert.Equal(t, 1, resp.Msg.BillsDeleted)

	entries, err := c.ledger.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{}))
	require.NoError(t, err)
	require.Len(t, entries.Msg.Entries, 1)
	assert.Equal(t, kept.ID, entries.Msg.Entries[0].ID)

	bill, err := c.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{ID: shared.Msg.Bill.ID}))
	require.NoError(t, err)
	require.Len(t, bill.Msg.Bill.Participants, 1)
	assert.Equal(t, omar.ID, bill.Msg.Bill.Participants[0].PersonID)
	assert.Equal(t, env.alice.ID, bill.Msg.Bill.PayerID, "payer falls back to the owner")

	_, err = c.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{ID: solo.Msg.Bill.ID}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = c.people.DeletePerson(ctx, connect.NewRequest(&api.DeletePersonRequest{ID: nadia.ID}))
	requireCode(t, err, connect.CodeNotFound)
}
