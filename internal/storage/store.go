// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/neondara/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to another owner.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness rule.
	ErrConflict = errors.New("conflict")
)

// EntryFilter narrows ListEntries. Zero values match everything.
type EntryFilter struct {
	PersonID  string
	Event     models.Event
	Direction models.Direction

	// Search matches description, notes or person name, case-insensitively.
	// Image payloads are never matched.
	Search string
}

// CascadeResult reports what a person deletion removed or rewrote.
type CascadeResult struct {
	EntriesDeleted int
	BillsUpdated   int
	BillsDeleted   int
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return nil, nil when the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PeopleStore persists contacts. Every method is scoped to an owner.
type PeopleStore interface {
	// CreatePerson assigns ID and CreatedAt. Returns ErrConflict on a duplicate name.
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, ownerID, id string) (*models.Person, error)
	ListPeople(ctx context.Context, ownerID string) ([]models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes the person, their entries and their bill
	// participations in one transaction. Bills left without participants
	// are deleted; surviving bills they paid fall back to the owner.
	DeletePerson(ctx context.Context, ownerID, id string) (CascadeResult, error)
}

// EntryStore persists ledger entries.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, ownerID, id string) (*models.Entry, error)

	// ListEntries returns entries newest first, with PersonName filled in.
	ListEntries(ctx context.Context, ownerID string, filter EntryFilter) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) error
	DeleteEntry(ctx context.Context, ownerID, id string) error
}

// BillStore persists shared bills with their participants.
type BillStore interface {
	CreateBill(ctx context.Context, bill *models.Bill) error
	GetBill(ctx context.Context, ownerID, id string) (*models.Bill, error)

	// ListBills returns bills newest first.
	ListBills(ctx context.Context, ownerID string) ([]models.Bill, error)

	// UpdateBill replaces the bill row and its participant list.
	UpdateBill(ctx context.Context, bill *models.Bill) error
	DeleteBill(ctx context.Context, ownerID, id string) error
}

// Store defines the full persistence surface used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	PeopleStore
	EntryStore
	BillStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
