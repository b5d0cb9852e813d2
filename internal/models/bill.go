package models

import (
	"strings"
	"time"
)

// Participant is one person's share of a bill.
type Participant struct {
	PersonID    string  `validate:"required"`
	ShareAmount float64 `validate:"gte=0"`
	IsPaid      bool

	// PersonName is filled in by the store on reads; it is not persisted.
	PersonName string
}

// Bill is an expense paid by one party and apportioned across participants.
type Bill struct {
	ID          string
	OwnerID     string
	Description string    `validate:"min=2,max=200"`
	TotalAmount float64   `validate:"gt=0"`
	Date        time.Time `validate:"required"`

	// PayerID is a person ID of the owner or the owner's own user ID.
	PayerID string `validate:"required"`

	// Participants keeps insertion order.
	Participants []Participant `validate:"min=1,unique=PersonID,dive"`

	CreatedAt int64
}

// Clone returns a deep copy so callers can derive new bills without
// touching the original.
func (b Bill) Clone() Bill {
	out := b
	if b.Participants != nil {
		out.Participants = make([]Participant, len(b.Participants))
		copy(out.Participants, b.Participants)
	}
	return out
}

// PaidByOwner reports whether the owner themselves paid the bill.
func (b *Bill) PaidByOwner() bool {
	return b.PayerID == b.OwnerID
}

// HasParticipant reports whether personID is among the participants.
func (b *Bill) HasParticipant(personID string) bool {
	for _, p := range b.Participants {
		if p.PersonID == personID {
			return true
		}
	}
	return false
}

// Normalize trims text and truncates the date to a calendar day.
func (b *Bill) Normalize() {
	b.Description = strings.TrimSpace(b.Description)
	if !b.Date.IsZero() {
		b.Date = CalendarDay(b.Date)
	}
}
